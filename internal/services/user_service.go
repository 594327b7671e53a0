package services

import (
	"errors"
	"fmt"

	"github.com/taskbridge/task-marketplace-api/internal/models"
	"github.com/taskbridge/task-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

// UserService exposes the fixed set of identities the mock app lets a
// visitor act as. There is no signup and no credentials: switching users
// is a pure selection.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns every selectable identity
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
