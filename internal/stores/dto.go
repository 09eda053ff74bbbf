package stores

import (
	"strings"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/google/uuid"
)

const (
	// DashboardPath is where sellers land after store actions.
	DashboardPath = "/mi_tienda/"
	// CreateStorePath is where sellers without a store are sent.
	CreateStorePath = "/crear_tienda/"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID               uuid.UUID `json:"id"`
	ArtisanProfileID uuid.UUID `json:"artisan_profile_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Active           bool      `json:"active"`
	Approved         bool      `json:"approved"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateStoreInput holds the store form fields.
type CreateStoreInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Location    string `json:"location" validate:"required,max=100"`
}

// CreateStoreResult reports whether a store was created. A seller who already
// owns a store gets Created=false and the existing store.
type CreateStoreResult struct {
	Created    bool      `json:"created"`
	Store      *StoreDTO `json:"store"`
	Message    string    `json:"message"`
	RedirectTo string    `json:"redirect_to"`
}

func (in CreateStoreInput) toModel(profileID uuid.UUID) *models.Store {
	return &models.Store{
		ArtisanProfileID: profileID,
		Name:             strings.TrimSpace(in.Name),
		Description:      strings.TrimSpace(in.Description),
		Location:         strings.TrimSpace(in.Location),
		Active:           true,
	}
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:               m.ID,
		ArtisanProfileID: m.ArtisanProfileID,
		Name:             m.Name,
		Description:      m.Description,
		Location:         m.Location,
		Active:           m.Active,
		Approved:         m.Approved,
		CreatedAt:        m.CreatedAt,
	}
}
