package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item. Price is a whole amount in the local currency.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID `gorm:"column:store_id;type:uuid;not null;index:products_store_id_idx"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;not null"`
	Price       int64     `gorm:"column:price;not null"`
	Category    string    `gorm:"column:category;not null"`
	ImagePath   *string   `gorm:"column:image_path"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index:products_created_at_idx"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Store *Store `gorm:"foreignKey:StoreID"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
