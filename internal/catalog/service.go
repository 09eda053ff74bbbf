package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/artesanos-backend/internal/favorites"
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/internal/reviews"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/pagination"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultPageSize = 12

// Service answers buyer-facing catalog reads. A zero Actor is an anonymous
// viewer; anonymous viewers never see favorites.
type Service interface {
	List(ctx context.Context, viewer types.Actor, filters Filters, rawPage string) (*Page, error)
	Detail(ctx context.Context, viewer types.Actor, productID uuid.UUID) (*ProductDetail, error)
}

type service struct {
	db       *db.Client
	cfg      config.CatalogConfig
	pageSize int
}

// NewService builds the catalog service.
func NewService(dbClient *db.Client, cfg config.CatalogConfig) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &service{db: dbClient, cfg: cfg, pageSize: pageSize}, nil
}

func (s *service) repo() *Repository {
	return NewRepository(s.db.DB(), s.cfg.HideInactiveStores)
}

func (s *service) List(ctx context.Context, viewer types.Actor, filters Filters, rawPage string) (*Page, error) {
	repo := s.repo()
	total, err := repo.Count(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count catalog")
	}
	page := pagination.ResolvePage(rawPage, s.pageSize, total)

	cards, err := repo.List(ctx, filters, page.Offset(), page.Size)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	if err := s.annotate(ctx, viewer, cards); err != nil {
		return nil, err
	}
	return &Page{Products: cards, Page: page, Filters: filters}, nil
}

func (s *service) Detail(ctx context.Context, viewer types.Actor, productID uuid.UUID) (*ProductDetail, error) {
	card, err := s.repo().Find(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, products.ErrProductNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	visible, err := reviews.NewRepository(s.db.DB()).ListActiveByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	cards := []ProductCard{*card}
	if err := s.annotate(ctx, viewer, cards); err != nil {
		return nil, err
	}
	return &ProductDetail{Product: cards[0], Reviews: visible}, nil
}

// annotate sets IsFavorite on every card with a single membership query.
func (s *service) annotate(ctx context.Context, viewer types.Actor, cards []ProductCard) error {
	if viewer.UserID == uuid.Nil || len(cards) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}
	favorited, err := favorites.NewRepository(s.db.DB()).FavoritedAmong(ctx, viewer.UserID, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorites")
	}
	for i := range cards {
		cards[i].IsFavorite = favorited[cards[i].ID]
	}
	return nil
}
