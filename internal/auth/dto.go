package auth

import (
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/users"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to a login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token that the controller turns into a cookie.
type LoginResponse struct {
	Token     string         `json:"-"`
	SessionID string         `json:"-"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *users.UserDTO `json:"user"`
}

// RegisterRequest contains the sign-up form fields.
type RegisterRequest struct {
	Username        string     `json:"username" validate:"required,max=150"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required"`
	PasswordConfirm string     `json:"password_confirm" validate:"required"`
	Phone           *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address         *string    `json:"address,omitempty" validate:"omitempty,max=255"`
	City            *string    `json:"city,omitempty" validate:"omitempty,max=100"`
	Role            enums.Role `json:"-"`
}
