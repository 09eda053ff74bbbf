package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/notifications"
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/pagination"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	orderPlacedMessage   = "Compra realizada con éxito."
	orderNotFoundMessage = "El pedido no existe."
	sellerOrdersPath     = "/mi_tienda/orders/"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order operations for buyers and sellers.
type Service interface {
	Create(ctx context.Context, actor types.Actor, productID uuid.UUID) (*OrderResult, error)
	Decide(ctx context.Context, actor types.Actor, orderID uuid.UUID, input DecisionInput) (*OrderResult, error)
	ListMine(ctx context.Context, actor types.Actor, params pagination.Params) (*OrderList, error)
	ListForSeller(ctx context.Context, actor types.Actor, params pagination.Params) (*OrderList, error)
}

type service struct {
	repo          Repository
	notifications notifications.Repository
	tx            txRunner
	now           func() time.Time
}

// NewService builds the order service.
func NewService(repo Repository, notificationRepo notifications.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if notificationRepo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:          repo,
		notifications: notificationRepo,
		tx:            tx,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create places a single-unit pending order and notifies the store owner in
// the same transaction. Stock is not checked.
func (s *service) Create(ctx context.Context, actor types.Actor, productID uuid.UUID) (*OrderResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var created *OrderDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		owner, err := products.LookupOwner(ctx, tx, productID)
		if err != nil {
			return err
		}

		repo := s.repo.WithTx(tx)
		order := &models.Order{
			BuyerID:   actor.UserID,
			ProductID: owner.ProductID,
			Quantity:  1,
			Status:    enums.OrderStatusPending,
		}
		if err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		message := notifications.OrderMessage(owner.ProductName, actor.Username)
		if _, err := notifications.Notify(ctx, s.notifications.WithTx(tx), owner.OwnerUserID, message); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify store owner")
		}

		created, err = repo.FindDetail(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &OrderResult{
		Order:      created,
		Message:    orderPlacedMessage,
		RedirectTo: fmt.Sprintf("/compradores/product/%s/", productID),
	}, nil
}

// Decide completes or rejects a pending order of the seller's store and
// notifies the buyer. Orders of other stores are reported as missing.
func (s *service) Decide(ctx context.Context, actor types.Actor, orderID uuid.UUID, input DecisionInput) (*OrderResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	target, err := input.Decision.Status()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid decision")
	}

	var decided *OrderDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindForSeller(ctx, orderID, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, orderNotFoundMessage).WithRedirect(sellerOrdersPath)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already decided")
		}

		moved, err := repo.TransitionStatus(ctx, order.ID, enums.OrderStatusPending, target, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already decided")
		}

		message := notifications.OrderDecisionMessage(order.ProductName, target)
		if _, err := notifications.Notify(ctx, s.notifications.WithTx(tx), order.BuyerID, message); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify buyer")
		}

		decided, err = repo.FindDetail(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &OrderResult{
		Order:      decided,
		Message:    fmt.Sprintf("Pedido marcado como %s.", strings.ToLower(target.Label())),
		RedirectTo: sellerOrdersPath,
	}, nil
}

func (s *service) ListMine(ctx context.Context, actor types.Actor, params pagination.Params) (*OrderList, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return s.list(func() (*OrderList, error) { return s.repo.ListByBuyer(ctx, actor.UserID, params) }, params)
}

func (s *service) ListForSeller(ctx context.Context, actor types.Actor, params pagination.Params) (*OrderList, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsArtisan() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only artisans see store orders")
	}
	return s.list(func() (*OrderList, error) { return s.repo.ListBySeller(ctx, actor.UserID, params) }, params)
}

func (s *service) list(fetch func() (*OrderList, error), params pagination.Params) (*OrderList, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	list, err := fetch()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}
