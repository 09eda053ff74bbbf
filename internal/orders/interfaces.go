package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/angelmondragon/artesanos-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindDetail(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	FindForSeller(ctx context.Context, orderID, sellerUserID uuid.UUID) (*OrderDTO, error)
	TransitionStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, at time.Time) (bool, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListBySeller(ctx context.Context, sellerUserID uuid.UUID, params pagination.Params) (*OrderList, error)
}
