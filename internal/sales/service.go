package sales

import (
	"context"
	"fmt"

	"github.com/angelmondragon/artesanos-backend/internal/notifications"
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dashboardPath = "/mi_tienda/"

// Service exposes simulated sales.
type Service interface {
	Simulate(ctx context.Context, actor types.Actor, productID uuid.UUID) (*SaleResult, error)
	NotifyPending(ctx context.Context, batch int) (int, error)
}

type service struct {
	db *db.Client
}

// NewService builds the sale service.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{db: dbClient}, nil
}

// Simulate records a sale of the product to the actor. The store owner hears
// about it later through NotifyPending.
func (s *service) Simulate(ctx context.Context, actor types.Actor, productID uuid.UUID) (*SaleResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var created *SaleDTO
	var productName string
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		owner, err := products.LookupOwner(ctx, tx, productID)
		if err != nil {
			return err
		}
		productName = owner.ProductName

		repo := NewRepository(tx)
		sale := &models.Sale{ProductID: owner.ProductID, BuyerID: actor.UserID, Notified: false}
		if err := repo.Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}
		created, err = repo.FindDetail(ctx, sale.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SaleResult{
		Sale:       created,
		Message:    fmt.Sprintf("Simulaste la venta de %s.", productName),
		RedirectTo: dashboardPath,
	}, nil
}

// NotifyPending sends one notification per un-notified sale, up to batch
// sales, and marks them notified in the same transaction.
func (s *service) NotifyPending(ctx context.Context, batch int) (int, error) {
	if batch <= 0 {
		batch = 100
	}
	sent := 0
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		pending, err := repo.ListPending(ctx, batch)
		if err != nil {
			return fmt.Errorf("list pending sales: %w", err)
		}
		if len(pending) == 0 {
			return nil
		}

		notifier := notifications.NewRepository(tx)
		ids := make([]uuid.UUID, 0, len(pending))
		for _, sale := range pending {
			message := notifications.SaleMessage(sale.ProductName, sale.BuyerUsername)
			if _, err := notifications.Notify(ctx, notifier, sale.OwnerUserID, message); err != nil {
				return fmt.Errorf("notify sale %s: %w", sale.ID, err)
			}
			ids = append(ids, sale.ID)
		}
		if _, err := repo.MarkNotified(ctx, ids); err != nil {
			return fmt.Errorf("mark sales notified: %w", err)
		}
		sent = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}
