package user

// User is a registered marketplace participant. Users own items and book
// items owned by others.
type User struct {
	id    int64
	name  string
	email string
}

// New creates a user that has not been persisted yet; the store assigns
// the id on save.
func New(name, email string) *User {
	return &User{name: name, email: email}
}

// Reconstruct rebuilds a User from persistence data.
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

func (u *User) ID() int64     { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }

// Update applies the non-nil fields of a partial update.
func (u *User) Update(name, email *string) {
	if name != nil {
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
}
