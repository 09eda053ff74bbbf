package models

import (
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a buyer's purchase request for a single product.
type Order struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerID   uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null;index:orders_buyer_id_idx"`
	ProductID uuid.UUID         `gorm:"column:product_id;type:uuid;not null;index:orders_product_id_idx"`
	Quantity  int               `gorm:"column:quantity;not null"`
	Status    enums.OrderStatus `gorm:"column:status;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	DecidedAt *time.Time        `gorm:"column:decided_at"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Buyer   *User    `gorm:"foreignKey:BuyerID"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
