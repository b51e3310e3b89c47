package dto

import (
	"time"

	"github.com/yukikurage/feedback-management-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	ManagerID *uint64     `json:"manager_id"`
	CreatedAt time.Time   `json:"created_at"`
}

// TokenDTO is returned by a successful login
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		ManagerID: user.ManagerID,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}

// nameOf returns the display name of a preloaded relation, or "" when it was not loaded.
func nameOf(user models.User) string {
	if user.ID == 0 {
		return ""
	}
	return user.Name
}
