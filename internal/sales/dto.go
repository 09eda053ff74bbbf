package sales

import (
	"time"

	"github.com/google/uuid"
)

// SaleDTO is the seller-facing view of a simulated sale.
type SaleDTO struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	BuyerID       uuid.UUID `json:"buyer_id"`
	BuyerUsername string    `json:"buyer_username"`
	Notified      bool      `json:"notified"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaleResult is returned after simulating a sale.
type SaleResult struct {
	Sale       *SaleDTO `json:"sale"`
	Message    string   `json:"message"`
	RedirectTo string   `json:"redirect_to"`
}

// PendingSale is an un-notified sale together with the user to notify.
type PendingSale struct {
	SaleDTO
	OwnerUserID uuid.UUID `json:"owner_user_id"`
}

type saleRecord struct {
	ID            uuid.UUID `gorm:"column:id"`
	ProductID     uuid.UUID `gorm:"column:product_id"`
	ProductName   string    `gorm:"column:product_name"`
	BuyerID       uuid.UUID `gorm:"column:buyer_id"`
	BuyerUsername string    `gorm:"column:buyer_username"`
	Notified      bool      `gorm:"column:notified"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	OwnerUserID   uuid.UUID `gorm:"column:owner_user_id"`
}

func (r saleRecord) toDTO() SaleDTO {
	return SaleDTO{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		BuyerID:       r.BuyerID,
		BuyerUsername: r.BuyerUsername,
		Notified:      r.Notified,
		CreatedAt:     r.CreatedAt,
	}
}
