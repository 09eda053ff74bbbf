package orders

import (
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/google/uuid"
)

// OrderDTO is the API view of an order with the names a listing needs.
type OrderDTO struct {
	ID            uuid.UUID         `json:"id"`
	ProductID     uuid.UUID         `json:"product_id"`
	ProductName   string            `json:"product_name"`
	BuyerID       uuid.UUID         `json:"buyer_id"`
	BuyerUsername string            `json:"buyer_username"`
	Quantity      int               `json:"quantity"`
	Status        enums.OrderStatus `json:"status"`
	StatusLabel   string            `json:"status_label"`
	CreatedAt     time.Time         `json:"created_at"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
}

// OrderList is a cursor page of orders.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// DecisionInput is the seller's verdict on a pending order.
type DecisionInput struct {
	Decision enums.OrderDecision `json:"decision" validate:"required,oneof=complete reject"`
}

// OrderResult is returned by order mutations.
type OrderResult struct {
	Order      *OrderDTO `json:"order"`
	Message    string    `json:"message"`
	RedirectTo string    `json:"redirect_to"`
}

type orderRecord struct {
	ID            uuid.UUID         `gorm:"column:id"`
	ProductID     uuid.UUID         `gorm:"column:product_id"`
	ProductName   string            `gorm:"column:product_name"`
	BuyerID       uuid.UUID         `gorm:"column:buyer_id"`
	BuyerUsername string            `gorm:"column:buyer_username"`
	Quantity      int               `gorm:"column:quantity"`
	Status        enums.OrderStatus `gorm:"column:status"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
	DecidedAt     *time.Time        `gorm:"column:decided_at"`
}

func (r orderRecord) toDTO() OrderDTO {
	return OrderDTO{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		BuyerID:       r.BuyerID,
		BuyerUsername: r.BuyerUsername,
		Quantity:      r.Quantity,
		Status:        r.Status,
		StatusLabel:   r.Status.Label(),
		CreatedAt:     r.CreatedAt,
		DecidedAt:     r.DecidedAt,
	}
}
