package favorites

import (
	"context"

	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/pagination"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	addedMessage   = "Agregado a favoritos."
	removedMessage = "Eliminado de favoritos."
)

// Service exposes favorite toggling and listing for buyers.
type Service interface {
	Toggle(ctx context.Context, actor types.Actor, productID uuid.UUID) (*ToggleResult, error)
	List(ctx context.Context, actor types.Actor, cursor string, limit int) (FavoritesPageDTO, error)
}

type service struct {
	db *db.Client
}

// NewService builds a favorites service with the required dependencies.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{db: dbClient}, nil
}

// Toggle removes the favorite when present, otherwise adds it. When a
// concurrent toggle inserts the same pair first, the row it wrote is removed
// so every call still flips the state.
func (s *service) Toggle(ctx context.Context, actor types.Actor, productID uuid.UUID) (*ToggleResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var result *ToggleResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := products.LookupOwner(ctx, tx, productID); err != nil {
			return err
		}
		repo := NewRepository(tx)
		removed, err := repo.Remove(ctx, actor.UserID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
		}
		if removed {
			result = removedResult()
			return nil
		}
		inserted, err := repo.Add(ctx, actor.UserID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
		}
		if inserted {
			result = &ToggleResult{Status: ToggleAdded, IsFavorite: true, Message: addedMessage}
			return nil
		}

		// lost the insert race; retry the toggle once against the winner's row
		removed, err = repo.Remove(ctx, actor.UserID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
		}
		if !removed {
			return pkgerrors.New(pkgerrors.CodeConflict, "favorite changed concurrently; try again")
		}
		result = removedResult()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func removedResult() *ToggleResult {
	return &ToggleResult{Status: ToggleRemoved, IsFavorite: false, Message: removedMessage}
}

func (s *service) List(ctx context.Context, actor types.Actor, cursor string, limit int) (FavoritesPageDTO, error) {
	if actor.UserID == uuid.Nil {
		return FavoritesPageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if _, err := pagination.ParseCursor(cursor); err != nil {
		return FavoritesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	page, err := NewRepository(s.db.DB()).List(ctx, actor.UserID, cursor, limit)
	if err != nil {
		return FavoritesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	return page, nil
}
