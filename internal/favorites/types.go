package favorites

import (
	"time"

	"github.com/angelmondragon/artesanos-backend/internal/products"
)

// ToggleStatus reports what a toggle did.
type ToggleStatus string

const (
	ToggleAdded   ToggleStatus = "added"
	ToggleRemoved ToggleStatus = "removed"
)

// ToggleResult is the outcome of flipping a favorite.
type ToggleResult struct {
	Status     ToggleStatus `json:"status"`
	IsFavorite bool         `json:"is_favorite"`
	Message    string       `json:"message"`
}

// FavoriteItemDTO wraps the product included in a favorites row.
type FavoriteItemDTO struct {
	Product   products.ProductDTO `json:"product"`
	CreatedAt time.Time           `json:"created_at"`
}

// FavoritesPageDTO returns a cursor-paginated favorites view.
type FavoritesPageDTO struct {
	Items      []FavoriteItemDTO `json:"items"`
	Total      int64             `json:"total"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
