package dto

import (
	"time"

	"github.com/sabajiqurashvili/loan-api/internal/domain"
)

// RegisterRequest payload for new users.
type RegisterRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	Username     string  `json:"username" validate:"required"`
	Age          int     `json:"age" validate:"gte=18"`
	Salary       float64 `json:"salary" validate:"required"`
	Password     string  `json:"password" validate:"required,min=8"`
	AccountantID *int64  `json:"accountant_id"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string      `json:"token"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID           int64       `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Username     string      `json:"username"`
	Age          int         `json:"age"`
	Salary       float64     `json:"salary"`
	Blocked      bool        `json:"blocked"`
	Role         domain.Role `json:"role"`
	AccountantID *int64      `json:"accountant_id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Username:     user.Username,
		Age:          user.Age,
		Salary:       user.Salary,
		Blocked:      user.Blocked,
		Role:         user.Role,
		AccountantID: user.AccountantID,
		CreatedAt:    user.CreatedAt,
	}
}
