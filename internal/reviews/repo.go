package reviews

import (
	"context"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const reviewColumns = "r.id, r.product_id, r.author_id, u.username AS author_username, r.rating, r.comment, r.artisan_response, r.response_created_at, r.created_at"

// Repository handles review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to review operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the review.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *Repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reviews r").
		Select(reviewColumns).
		Joins("JOIN users u ON u.id = r.author_id")
}

// FindDetail loads one review with its author name.
func (r *Repository) FindDetail(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error) {
	return first(r.base(ctx).Where("r.id = ?", reviewID))
}

// FindForSeller loads the review only when it is about a product of the seller's store.
func (r *Repository) FindForSeller(ctx context.Context, reviewID, sellerUserID uuid.UUID) (*ReviewDTO, error) {
	return first(r.base(ctx).
		Joins("JOIN products p ON p.id = r.product_id").
		Joins("JOIN stores s ON s.id = p.store_id").
		Joins("JOIN profiles pr ON pr.id = s.artisan_profile_id").
		Where("r.id = ? AND pr.user_id = ?", reviewID, sellerUserID))
}

// SetResponse stores the artisan reply, replacing any earlier one.
func (r *Repository) SetResponse(ctx context.Context, reviewID uuid.UUID, response string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumns(map[string]any{"artisan_response": response, "response_created_at": at}).
		Error
}

// ListActiveByProduct returns visible reviews newest first.
func (r *Repository) ListActiveByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	var records []reviewRecord
	if err := r.base(ctx).
		Where("r.product_id = ? AND r.active = ?", productID, true).
		Order("r.created_at DESC").Order("r.id DESC").
		Scan(&records).Error; err != nil {
		return nil, err
	}
	out := make([]ReviewDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out, nil
}

func first(query *gorm.DB) (*ReviewDTO, error) {
	var record reviewRecord
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
