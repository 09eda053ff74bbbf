package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/artesanos-backend/internal/stores"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	productCreatedMessage = "Producto agregado correctamente."
	productUpdatedMessage = "Producto actualizado correctamente."
	productDeletedMessage = "Producto eliminado correctamente."
	StoreRequiredMessage  = "Primero debes crear tu tienda antes de agregar productos."

	productNotFoundMessage = "El producto no existe o ya no está disponible."
	// CatalogPath is the buyer listing a missing product sends the client back to.
	CatalogPath = "/compradores/"
)

// Service exposes seller product management. Every lookup is scoped to the
// acting seller, so products owned by someone else are reported as missing.
type Service interface {
	Create(ctx context.Context, actor types.Actor, input ProductInput) (*MutationResult, error)
	GetOwned(ctx context.Context, actor types.Actor, productID uuid.UUID) (*ProductDTO, error)
	Update(ctx context.Context, actor types.Actor, productID uuid.UUID, input ProductInput) (*MutationResult, error)
	Delete(ctx context.Context, actor types.Actor, productID uuid.UUID) (*MutationResult, error)
}

type service struct {
	db *db.Client
}

// NewService constructs a product service instance.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{db: dbClient}, nil
}

func (s *service) Create(ctx context.Context, actor types.Actor, input ProductInput) (*MutationResult, error) {
	if err := stores.RequireArtisan(actor); err != nil {
		return nil, err
	}
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created *models.Product
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		store, err := stores.NewRepository(tx).FindByArtisanProfile(ctx, actor.ProfileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stores.ErrStoreRequired(StoreRequiredMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
		}

		product := &models.Product{StoreID: store.ID}
		input.apply(product)
		if err := NewRepository(tx).Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &MutationResult{
		Product:    FromModel(created),
		Message:    productCreatedMessage,
		RedirectTo: stores.DashboardPath,
	}, nil
}

func (s *service) GetOwned(ctx context.Context, actor types.Actor, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, NewRepository(s.db.DB()), actor, productID)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) Update(ctx context.Context, actor types.Actor, productID uuid.UUID, input ProductInput) (*MutationResult, error) {
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		product, err := s.loadOwned(ctx, repo, actor, productID)
		if err != nil {
			return err
		}
		input.apply(product)
		if err := repo.Update(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &MutationResult{
		Product:    FromModel(updated),
		Message:    productUpdatedMessage,
		RedirectTo: stores.DashboardPath,
	}, nil
}

func (s *service) Delete(ctx context.Context, actor types.Actor, productID uuid.UUID) (*MutationResult, error) {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		product, err := s.loadOwned(ctx, repo, actor, productID)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, product.ID)
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product has orders")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return &MutationResult{
		Message:    productDeletedMessage,
		RedirectTo: stores.DashboardPath,
	}, nil
}

func (s *service) loadOwned(ctx context.Context, repo *Repository, actor types.Actor, productID uuid.UUID) (*models.Product, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	product, err := repo.FindOwned(ctx, productID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productNotFoundMessage).WithRedirect(stores.DashboardPath)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func validateInput(input ProductInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Category == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Price == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	if *input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be zero or greater")
	}
	return nil
}

// LookupOwner resolves the product's store owner, mapping a missing product
// to NotFound. Mutation services call it with their transaction handle.
func LookupOwner(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*ProductOwner, error) {
	owner, err := NewRepository(tx).FindOwner(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return owner, nil
}

// ErrProductNotFound reports a missing product and redirects to the catalog.
func ErrProductNotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, productNotFoundMessage).WithRedirect(CatalogPath)
}
