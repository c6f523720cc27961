package user

import "context"

// Repository defines persistence operations for users. Save and Update
// fail with a conflict error when the email is already taken.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, u *User) (int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}
