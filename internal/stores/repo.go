package stores

import (
	"context"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UniqueArtisanConstraint guards the one-store-per-artisan rule.
const UniqueArtisanConstraint = "stores_artisan_profile_id_key"

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
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

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByArtisanProfile returns the store owned by the profile.
func (r *Repository) FindByArtisanProfile(ctx context.Context, profileID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("artisan_profile_id = ?", profileID).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByArtisanUser resolves the store through the owner's profile.
func (r *Repository) FindByArtisanUser(ctx context.Context, userID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Joins("JOIN profiles ON profiles.id = stores.artisan_profile_id").
		Where("profiles.user_id = ?", userID).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}
