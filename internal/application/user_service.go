package application

import (
	"context"

	userDomain "github.com/DmitryMisevra/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest is the request DTO for a partial user update; nil
// fields stay untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserService manages user accounts.
type UserService struct {
	users  userDomain.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser registers a new user; a taken email is a conflict.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	id, err := s.users.Save(ctx, userDomain.New(req.Name, req.Email))
	if err != nil {
		return nil, err
	}

	created, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", id))
	result := toUserDTO(created)
	return &result, nil
}

// UpdateUser applies a partial update to an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Update(req.Name, req.Email)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(updated)
	return &result, nil
}

// GetUserByID retrieves a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// GetUsers lists all users.
func (s *UserService) GetUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", userID))
	return nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}
