// Package dashboard assembles the seller's store overview.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/internal/sales"
	"github.com/angelmondragon/artesanos-backend/internal/stores"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"gorm.io/gorm"
)

const noStoreMessage = "Aún no tienes una tienda. ¡Crea una ahora!"

// Dashboard is the seller's store with its products and sales.
type Dashboard struct {
	Store           *stores.StoreDTO      `json:"store"`
	Products        []products.ProductDTO `json:"products"`
	Sales           []sales.SaleDTO       `json:"sales"`
	UnnotifiedSales int64                 `json:"unnotified_sales"`
}

// Service builds dashboards.
type Service interface {
	Get(ctx context.Context, actor types.Actor) (*Dashboard, error)
}

type service struct {
	db *db.Client
}

// NewService builds the dashboard service.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{db: dbClient}, nil
}

func (s *service) Get(ctx context.Context, actor types.Actor) (*Dashboard, error) {
	if err := stores.RequireArtisan(actor); err != nil {
		return nil, err
	}
	conn := s.db.DB()

	store, err := stores.NewRepository(conn).FindByArtisanProfile(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stores.ErrStoreRequired(noStoreMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	items, err := products.NewRepository(conn).ListByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	salesRepo := sales.NewRepository(conn)
	storeSales, err := salesRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	unnotified, err := salesRepo.CountUnnotifiedByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count sales")
	}

	return &Dashboard{
		Store:           stores.FromModel(store),
		Products:        products.FromModels(items),
		Sales:           storeSales,
		UnnotifiedSales: unnotified,
	}, nil
}
