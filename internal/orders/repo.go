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

const orderColumns = "o.id, o.product_id, p.name AS product_name, o.buyer_id, u.username AS buyer_username, o.quantity, o.status, o.created_at, o.decided_at"

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders o").
		Select(orderColumns).
		Joins("JOIN products p ON p.id = o.product_id").
		Joins("JOIN users u ON u.id = o.buyer_id")
}

func (r *repository) FindDetail(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	return r.first(r.base(ctx).Where("o.id = ?", orderID))
}

// FindForSeller returns the order only when its product belongs to the seller.
func (r *repository) FindForSeller(ctx context.Context, orderID, sellerUserID uuid.UUID) (*OrderDTO, error) {
	return r.first(r.base(ctx).
		Joins("JOIN stores s ON s.id = p.store_id").
		Joins("JOIN profiles pr ON pr.id = s.artisan_profile_id").
		Where("o.id = ? AND pr.user_id = ?", orderID, sellerUserID))
}

func (r *repository) first(query *gorm.DB) (*OrderDTO, error) {
	var record orderRecord
	result := query.Limit(1).Scan(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	dto := record.toDTO()
	return &dto, nil
}

// TransitionStatus moves the order only while it still holds the from status,
// so two concurrent decisions cannot both apply.
func (r *repository) TransitionStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		UpdateColumns(map[string]any{"status": to, "decided_at": at})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return r.list(r.base(ctx).Where("o.buyer_id = ?", buyerID), params)
}

func (r *repository) ListBySeller(ctx context.Context, sellerUserID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return r.list(r.base(ctx).
		Joins("JOIN stores s ON s.id = p.store_id").
		Joins("JOIN profiles pr ON pr.id = s.artisan_profile_id").
		Where("pr.user_id = ?", sellerUserID), params)
}

func (r *repository) list(query *gorm.DB, params pagination.Params) (*OrderList, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("((o.created_at < ?) OR (o.created_at = ? AND o.id < ?))", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var records []orderRecord
	if err := query.Order("o.created_at DESC").Order("o.id DESC").Limit(limit + 1).Scan(&records).Error; err != nil {
		return nil, err
	}

	list := &OrderList{Orders: make([]OrderDTO, 0, len(records))}
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	for _, record := range records {
		list.Orders = append(list.Orders, record.toDTO())
	}
	return list, nil
}
