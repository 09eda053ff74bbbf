package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the single shop an artisan profile may own.
type Store struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ArtisanProfileID uuid.UUID `gorm:"column:artisan_profile_id;type:uuid;not null;uniqueIndex:stores_artisan_profile_id_key"`
	Name             string    `gorm:"column:name;not null"`
	Description      string    `gorm:"column:description;not null"`
	Location         string    `gorm:"column:location;not null"`
	Active           bool      `gorm:"column:active;not null"`
	Approved         bool      `gorm:"column:approved;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`

	ArtisanProfile *Profile `gorm:"foreignKey:ArtisanProfileID"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
