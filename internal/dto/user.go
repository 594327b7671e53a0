package dto

import "github.com/taskbridge/task-marketplace-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID     uint64          `json:"id"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	Avatar string          `json:"avatar"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Name:   user.Name,
		Role:   user.Role,
		Avatar: user.Avatar,
	}
}
