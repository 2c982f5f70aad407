package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                  uint64          `json:"id"`
	FullName            string          `json:"fullName"`
	Email               string          `json:"email"`
	UserType            models.UserType `json:"userType"`
	UserTypeDescription string          `json:"userTypeDescription"`
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	Token      string    `json:"token"`
	User       UserDTO   `json:"user"`
	Expiration time.Time `json:"expiration"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                  user.ID,
		FullName:            user.FullName,
		Email:               user.Email,
		UserType:            user.UserType,
		UserTypeDescription: user.UserType.Description(),
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}
