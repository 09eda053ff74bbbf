package favorites

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates favorite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a favorite and reports whether a row was written. A duplicate
// leaves the existing row alone and returns false.
func (r *Repository) Add(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || productID == uuid.Nil {
		return false, gorm.ErrInvalidValue
	}
	result := r.db.WithContext(ctx).
		Exec(`INSERT INTO favorites (id, user_id, product_id, created_at) VALUES (?, ?, ?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`,
			uuid.New(), userID, productID, time.Now().UTC())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the favorite if it exists and reports whether a row went away.
func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the user has favorited the product.
func (r *Repository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FavoritedAmong returns the subset of productIDs the user has favorited, in
// one membership query.
func (r *Repository) FavoritedAmong(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(productIDs))
	if userID == uuid.Nil || len(productIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// List returns a page of the user's favorites, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, cursor string, limit int) (FavoritesPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return FavoritesPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("favorites f").
		Select(strings.Join([]string{
			"f.id AS favorite_id",
			"f.created_at AS favorite_created_at",
			"p.id AS product_id",
			"p.store_id",
			"p.name",
			"p.description",
			"p.price",
			"p.category",
			"p.image_path",
			"p.created_at AS product_created_at",
			"p.updated_at AS product_updated_at",
		}, ", ")).
		Joins("JOIN products p ON p.id = f.product_id").
		Where("f.user_id = ?", userID)
	if decodedCursor != nil {
		query = query.Where("((f.created_at < ?) OR (f.created_at = ? AND f.id < ?))", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []favoriteRecord
	if err := query.Order("f.created_at DESC").Order("f.id DESC").Limit(normalizedLimit + 1).Scan(&records).Error; err != nil {
		return FavoritesPageDTO{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.FavoriteCreatedAt, ID: last.FavoriteID})
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return FavoritesPageDTO{}, err
	}

	items := make([]FavoriteItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDTO())
	}
	return FavoritesPageDTO{Items: items, Total: total, NextCursor: nextCursor}, nil
}

type favoriteRecord struct {
	FavoriteID        uuid.UUID `gorm:"column:favorite_id"`
	FavoriteCreatedAt time.Time `gorm:"column:favorite_created_at"`
	ProductID         uuid.UUID `gorm:"column:product_id"`
	StoreID           uuid.UUID `gorm:"column:store_id"`
	Name              string    `gorm:"column:name"`
	Description       string    `gorm:"column:description"`
	Price             int64     `gorm:"column:price"`
	Category          string    `gorm:"column:category"`
	ImagePath         *string   `gorm:"column:image_path"`
	CreatedAt         time.Time `gorm:"column:product_created_at"`
	UpdatedAt         time.Time `gorm:"column:product_updated_at"`
}

func (r favoriteRecord) toDTO() FavoriteItemDTO {
	return FavoriteItemDTO{
		Product: products.ProductDTO{
			ID:          r.ProductID,
			StoreID:     r.StoreID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Category:    r.Category,
			ImagePath:   r.ImagePath,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		CreatedAt: r.FavoriteCreatedAt,
	}
}
