package sales

import (
	"context"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const saleColumns = "sa.id, sa.product_id, p.name AS product_name, sa.buyer_id, u.username AS buyer_username, sa.notified, sa.created_at, pr.user_id AS owner_user_id"

// Repository handles sale persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to sale operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a sale row.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *Repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("sales sa").
		Select(saleColumns).
		Joins("JOIN products p ON p.id = sa.product_id").
		Joins("JOIN users u ON u.id = sa.buyer_id").
		Joins("JOIN stores s ON s.id = p.store_id").
		Joins("JOIN profiles pr ON pr.id = s.artisan_profile_id")
}

// FindDetail loads one sale.
func (r *Repository) FindDetail(ctx context.Context, saleID uuid.UUID) (*SaleDTO, error) {
	var record saleRecord
	result := r.base(ctx).Where("sa.id = ?", saleID).Limit(1).Scan(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	dto := record.toDTO()
	return &dto, nil
}

// ListByStore returns the store's sales newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]SaleDTO, error) {
	var records []saleRecord
	if err := r.base(ctx).
		Where("s.id = ?", storeID).
		Order("sa.created_at DESC").Order("sa.id DESC").
		Scan(&records).Error; err != nil {
		return nil, err
	}
	out := make([]SaleDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out, nil
}

// CountUnnotifiedByStore counts the store's sales still waiting for a notification.
func (r *Repository) CountUnnotifiedByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Joins("JOIN products p ON p.id = sales.product_id").
		Where("p.store_id = ? AND sales.notified = ?", storeID, false).
		Count(&count).Error
	return count, err
}

// ListPending returns the oldest un-notified sales.
func (r *Repository) ListPending(ctx context.Context, limit int) ([]PendingSale, error) {
	var records []saleRecord
	if err := r.base(ctx).
		Where("sa.notified = ?", false).
		Order("sa.created_at ASC").Order("sa.id ASC").
		Limit(limit).
		Scan(&records).Error; err != nil {
		return nil, err
	}
	out := make([]PendingSale, 0, len(records))
	for _, record := range records {
		out = append(out, PendingSale{SaleDTO: record.toDTO(), OwnerUserID: record.OwnerUserID})
	}
	return out, nil
}

// MarkNotified flags the sales as notified and returns how many changed.
func (r *Repository) MarkNotified(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id IN ? AND notified = ?", ids, false).
		UpdateColumn("notified", true)
	return result.RowsAffected, result.Error
}
