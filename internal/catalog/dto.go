package catalog

import (
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/internal/reviews"
	"github.com/angelmondragon/artesanos-backend/pkg/pagination"
)

// ProductCard is one catalog entry.
type ProductCard struct {
	products.ProductDTO
	StoreName     string `json:"store_name"`
	StoreLocation string `json:"store_location"`
	IsFavorite    bool   `json:"is_favorite"`
}

// Page is one page of catalog results.
type Page struct {
	Products []ProductCard   `json:"products"`
	Page     pagination.Page `json:"page"`
	Filters  Filters         `json:"filters"`
}

// ProductDetail is the product page: the product, its visible reviews and the
// viewer's favorite state.
type ProductDetail struct {
	Product ProductCard         `json:"product"`
	Reviews []reviews.ReviewDTO `json:"reviews"`
}
