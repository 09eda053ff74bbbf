package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	storeCreatedMessage = "Tienda creada correctamente."
	storeExistsMessage  = "Ya tienes una tienda creada."
)

// Service exposes store operations for sellers.
type Service interface {
	Create(ctx context.Context, actor types.Actor, input CreateStoreInput) (*CreateStoreResult, error)
	Mine(ctx context.Context, actor types.Actor) (*StoreDTO, error)
}

type storeRepository interface {
	FindByArtisanProfile(ctx context.Context, profileID uuid.UUID) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
}

type service struct {
	db      *db.Client
	repoFor func(tx *gorm.DB) storeRepository
}

// NewService builds a store service backed by the database client.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		db:      dbClient,
		repoFor: func(tx *gorm.DB) storeRepository { return NewRepository(tx) },
	}, nil
}

// Create opens the actor's store. It is a no-op when the artisan already owns
// one, including when a concurrent request wins the insert.
func (s *service) Create(ctx context.Context, actor types.Actor, input CreateStoreInput) (*CreateStoreResult, error) {
	if err := RequireArtisan(actor); err != nil {
		return nil, err
	}

	var result *CreateStoreResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFor(tx)
		existing, err := repo.FindByArtisanProfile(ctx, actor.ProfileID)
		if err == nil {
			result = existingResult(existing)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
		}

		store := input.toModel(actor.ProfileID)
		if err := repo.Create(ctx, store); err != nil {
			return err
		}
		result = &CreateStoreResult{
			Created:    true,
			Store:      FromModel(store),
			Message:    storeCreatedMessage,
			RedirectTo: DashboardPath,
		}
		return nil
	})
	if err == nil {
		return result, nil
	}
	if db.IsUniqueViolation(err, UniqueArtisanConstraint) {
		existing, loadErr := s.repoFor(s.db.DB()).FindByArtisanProfile(ctx, actor.ProfileID)
		if loadErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, loadErr, "load store")
		}
		return existingResult(existing), nil
	}
	if pkgerrors.As(err) != nil {
		return nil, err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
}

// Mine returns the actor's store or StoreRequired when there is none.
func (s *service) Mine(ctx context.Context, actor types.Actor) (*StoreDTO, error) {
	if err := RequireArtisan(actor); err != nil {
		return nil, err
	}
	store, err := s.repoFor(s.db.DB()).FindByArtisanProfile(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreRequired("Aún no tienes una tienda. ¡Crea una ahora!")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

// ErrStoreRequired is returned to sellers that act before opening a store.
func ErrStoreRequired(message string) error {
	return pkgerrors.New(pkgerrors.CodeStoreRequired, message).WithRedirect(CreateStorePath)
}

// RequireArtisan rejects anonymous and buyer actors.
func RequireArtisan(actor types.Actor) error {
	if actor.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsArtisan() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only artisans manage stores")
	}
	return nil
}

func existingResult(store *models.Store) *CreateStoreResult {
	return &CreateStoreResult{
		Created:    false,
		Store:      FromModel(store),
		Message:    storeExistsMessage,
		RedirectTo: DashboardPath,
	}
}
