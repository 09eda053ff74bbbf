package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is a simulated purchase whose owner notification is sent later by the sweep job.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:sales_product_id_idx"`
	BuyerID   uuid.UUID `gorm:"column:buyer_id;type:uuid;not null"`
	Notified  bool      `gorm:"column:notified;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Buyer   *User    `gorm:"foreignKey:BuyerID"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
