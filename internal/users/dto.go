package users

import (
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	IsActive    bool        `json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Profile     *ProfileDTO `json:"profile,omitempty"`
}

type ProfileDTO struct {
	ID            uuid.UUID  `json:"id"`
	Role          enums.Role `json:"role"`
	Phone         *string    `json:"phone,omitempty"`
	Address       *string    `json:"address,omitempty"`
	City          *string    `json:"city,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	PhoneVerified bool       `json:"phone_verified"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

// CreateProfileDTO holds the profile fields captured at sign-up.
type CreateProfileDTO struct {
	UserID  uuid.UUID
	Role    enums.Role
	Phone   *string
	Address *string
	City    *string
}

func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     true,
	}
}

func (d CreateProfileDTO) ToModel() *models.Profile {
	return &models.Profile{
		UserID:  d.UserID,
		Role:    d.Role,
		Phone:   d.Phone,
		Address: d.Address,
		City:    d.City,
	}
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.Profile != nil {
		dto.Profile = &ProfileDTO{
			ID:            u.Profile.ID,
			Role:          u.Profile.Role,
			Phone:         u.Profile.Phone,
			Address:       u.Profile.Address,
			City:          u.Profile.City,
			EmailVerified: u.Profile.EmailVerified,
			PhoneVerified: u.Profile.PhoneVerified,
		}
	}
	return dto
}
