package models

import (
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the marketplace role and contact data of a user.
type Profile struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:profiles_user_id_key"`
	Role          enums.Role `gorm:"column:role;not null"`
	Phone         *string    `gorm:"column:phone"`
	Address       *string    `gorm:"column:address"`
	City          *string    `gorm:"column:city"`
	EmailVerified bool       `gorm:"column:email_verified;not null"`
	PhoneVerified bool       `gorm:"column:phone_verified;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
