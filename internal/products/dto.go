package products

import (
	"strings"
	"time"

	"github.com/angelmondragon/artesanos-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ProductDTO is the API shape for a product.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	ImagePath   *string   `json:"image_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductInput holds the product form fields. Edits replace every field.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=2000"`
	Price       *int64  `json:"price" validate:"required,min=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	ImagePath   *string `json:"image_path,omitempty" validate:"omitempty,max=255"`
}

// MutationResult is returned by seller product actions.
type MutationResult struct {
	Product    *ProductDTO `json:"product,omitempty"`
	Message    string      `json:"message"`
	RedirectTo string      `json:"redirect_to"`
}

// ProductOwner links a product to the user who owns its store. Notifications
// about the product go to OwnerUserID.
type ProductOwner struct {
	ProductID   uuid.UUID
	ProductName string
	StoreID     uuid.UUID
	OwnerUserID uuid.UUID
}

func (in ProductInput) normalized() ProductInput {
	out := ProductInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
	}
	if in.ImagePath != nil {
		if path := strings.TrimSpace(*in.ImagePath); path != "" {
			out.ImagePath = &path
		}
	}
	return out
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	if in.Price != nil {
		p.Price = *in.Price
	}
	p.Category = in.Category
	if in.ImagePath != nil {
		p.ImagePath = in.ImagePath
	}
}

// FromModel maps a persisted product into a DTO.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImagePath:   p.ImagePath,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromModels maps a slice of products.
func FromModels(items []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
