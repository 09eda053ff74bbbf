package products

import (
	"context"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ownerJoin narrows products to those whose store belongs to a user.
const ownerJoin = "JOIN stores s ON s.id = products.store_id JOIN profiles pr ON pr.id = s.artisan_profile_id"

// Repository wires product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindOwned loads the product only when its store belongs to userID.
func (r *Repository) FindOwned(ctx context.Context, productID, userID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Joins(ownerJoin).
		Where("products.id = ? AND pr.user_id = ?", productID, userID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindOwner resolves the product together with the user owning its store.
func (r *Repository) FindOwner(ctx context.Context, productID uuid.UUID) (*ProductOwner, error) {
	var owner ProductOwner
	result := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name AS product_name, s.id AS store_id, pr.user_id AS owner_user_id").
		Joins(ownerJoin).
		Where("products.id = ?", productID).
		Limit(1).
		Scan(&owner)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &owner, nil
}

// Update persists every column of the product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product. Reviews, favorites and sales cascade; orders block it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ListByStore returns the store's products newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var items []models.Product
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
