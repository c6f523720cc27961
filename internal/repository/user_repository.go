package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/DmitryMisevra/shareit/internal/domain"
	userDomain "github.com/DmitryMisevra/shareit/internal/domain/user"
	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID    int64  `gorm:"column:user_id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:user_name;not null;size:255"`
	Email string `gorm:"column:email;uniqueIndex;not null;size:512"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of user.Repository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by id.
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindAll retrieves all users ordered by id.
func (r *GormUserRepository) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*userDomain.User, len(models))
	for i, m := range models {
		users[i] = toDomainUser(&m)
	}
	return users, nil
}

// Save persists a new user and returns the assigned id.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) (int64, error) {
	model := UserModel{Name: u.Name(), Email: u.Email()}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, domain.NewConflictError("user with email " + u.Email() + " already exists")
		}
		return 0, fmt.Errorf("failed to save user: %w", err)
	}
	return model.ID, nil
}

// Update persists changes to an existing user.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("user_id = ?", u.ID()).
		Updates(map[string]interface{}{
			"user_name": u.Name(),
			"email":     u.Email(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("user with email " + u.Email() + " already exists")
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", u.ID())
	}
	return nil
}

// Delete removes a user by id.
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", id)
	}
	return nil
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(m.ID, m.Name, m.Email)
}
