package catalog

import (
	"context"
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const cardColumns = "p.id, p.store_id, p.name, p.description, p.price, p.category, p.image_path, p.created_at, p.updated_at, s.name AS store_name, s.location AS store_location"

// Repository runs catalog read queries.
type Repository struct {
	db                 *gorm.DB
	hideInactiveStores bool
}

// NewRepository binds a GORM DB to catalog queries.
func NewRepository(db *gorm.DB, hideInactiveStores bool) *Repository {
	return &Repository{db: db, hideInactiveStores: hideInactiveStores}
}

func (r *Repository) filtered(ctx context.Context, filters Filters) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("products p").
		Joins("JOIN stores s ON s.id = p.store_id")
	if r.hideInactiveStores {
		query = query.Where("s.active = ?", true)
	}
	if filters.Category != "" {
		query = query.Where(`LOWER(p.category) LIKE ? ESCAPE '\'`, containsPattern(filters.Category))
	}
	if filters.Location != "" {
		query = query.Where(`LOWER(s.location) LIKE ? ESCAPE '\'`, containsPattern(filters.Location))
	}
	if filters.MinPrice != nil {
		query = query.Where("p.price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("p.price <= ?", *filters.MaxPrice)
	}
	return query
}

// Count returns how many products match the filters.
func (r *Repository) Count(ctx context.Context, filters Filters) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filters).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// List returns one window of matching products, newest first.
func (r *Repository) List(ctx context.Context, filters Filters, offset, limit int) ([]ProductCard, error) {
	var records []cardRecord
	if err := r.filtered(ctx, filters).
		Select(cardColumns).
		Order("p.created_at DESC").Order("p.id DESC").
		Offset(offset).Limit(limit).
		Scan(&records).Error; err != nil {
		return nil, err
	}
	out := make([]ProductCard, 0, len(records))
	for _, record := range records {
		out = append(out, record.toCard())
	}
	return out, nil
}

// Find loads a single product card regardless of filters.
func (r *Repository) Find(ctx context.Context, productID uuid.UUID) (*ProductCard, error) {
	var record cardRecord
	result := r.db.WithContext(ctx).
		Table("products p").
		Select(cardColumns).
		Joins("JOIN stores s ON s.id = p.store_id").
		Where("p.id = ?", productID).
		Limit(1).
		Scan(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	card := record.toCard()
	return &card, nil
}

type cardRecord struct {
	ID            uuid.UUID `gorm:"column:id"`
	StoreID       uuid.UUID `gorm:"column:store_id"`
	Name          string    `gorm:"column:name"`
	Description   string    `gorm:"column:description"`
	Price         int64     `gorm:"column:price"`
	Category      string    `gorm:"column:category"`
	ImagePath     *string   `gorm:"column:image_path"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
	StoreName     string    `gorm:"column:store_name"`
	StoreLocation string    `gorm:"column:store_location"`
}

func (r cardRecord) toCard() ProductCard {
	return ProductCard{
		ProductDTO: products.ProductDTO{
			ID:          r.ID,
			StoreID:     r.StoreID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Category:    r.Category,
			ImagePath:   r.ImagePath,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		StoreName:     r.StoreName,
		StoreLocation: r.StoreLocation,
	}
}
