package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a buyer's rating of a product plus the optional artisan reply.
type Review struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index:reviews_product_id_idx"`
	AuthorID          uuid.UUID  `gorm:"column:author_id;type:uuid;not null"`
	Rating            int        `gorm:"column:rating;not null"`
	Comment           string     `gorm:"column:comment;not null"`
	Active            bool       `gorm:"column:active;not null"`
	ArtisanResponse   string     `gorm:"column:artisan_response;not null"`
	ResponseCreatedAt *time.Time `gorm:"column:response_created_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
