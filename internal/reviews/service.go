package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/notifications"
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	reviewAddedMessage     = "Reseña agregada exitosamente."
	responseSavedMessage   = "Respuesta publicada."
	reviewNotFoundMessage  = "La reseña no existe."
	sellerDashboardPath    = "/mi_tienda/"
	productDetailPathShape = "/compradores/product/%s/"
)

// Service exposes review operations.
type Service interface {
	Add(ctx context.Context, actor types.Actor, productID uuid.UUID, input ReviewInput) (*ReviewResult, error)
	Respond(ctx context.Context, actor types.Actor, reviewID uuid.UUID, input RespondInput) (*ReviewResult, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
}

// ServiceParams bundles the review service dependencies.
type ServiceParams struct {
	DB    *db.Client
	Rules config.ReviewConfig
}

type service struct {
	db    *db.Client
	rules Rules
	now   func() time.Time
}

// NewService builds the review service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		db:    params.DB,
		rules: NewRules(params.Rules),
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

// Add stores an active review and notifies the store owner once, in one
// transaction. Authors may review the same product more than once.
func (s *service) Add(ctx context.Context, actor types.Actor, productID uuid.UUID, input ReviewInput) (*ReviewResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var created *ReviewDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		owner, err := products.LookupOwner(ctx, tx, productID)
		if err != nil {
			return err
		}
		if err := s.rules.Check(input); err != nil {
			return err
		}

		repo := NewRepository(tx)
		review := &models.Review{
			ProductID: owner.ProductID,
			AuthorID:  actor.UserID,
			Rating:    input.Rating,
			Comment:   strings.TrimSpace(input.Comment),
			Active:    true,
		}
		if err := repo.Create(ctx, review); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert review")
		}

		message := notifications.ReviewMessage(owner.ProductName)
		if _, err := notifications.Notify(ctx, notifications.NewRepository(tx), owner.OwnerUserID, message); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify store owner")
		}

		created, err = repo.FindDetail(ctx, review.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ReviewResult{
		Review:     created,
		Message:    reviewAddedMessage,
		RedirectTo: fmt.Sprintf(productDetailPathShape, productID),
	}, nil
}

// Respond sets the artisan reply on a review of one of the seller's products.
func (s *service) Respond(ctx context.Context, actor types.Actor, reviewID uuid.UUID, input RespondInput) (*ReviewResult, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	response := strings.TrimSpace(input.Response)
	if response == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "response is required").
			WithDetails(map[string]string{"response": "La respuesta no puede estar vacía."})
	}

	var updated *ReviewDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		review, err := repo.FindForSeller(ctx, reviewID, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, reviewNotFoundMessage).WithRedirect(sellerDashboardPath)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
		}
		if err := repo.SetResponse(ctx, review.ID, response, s.now()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update review")
		}
		updated, err = repo.FindDetail(ctx, review.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ReviewResult{
		Review:     updated,
		Message:    responseSavedMessage,
		RedirectTo: sellerDashboardPath,
	}, nil
}

func (s *service) ListForProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	items, err := NewRepository(s.db.DB()).ListActiveByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return items, nil
}
