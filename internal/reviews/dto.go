package reviews

import (
	"time"

	"github.com/google/uuid"
)

// ReviewInput is the review form.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RespondInput carries the artisan's reply to a review.
type RespondInput struct {
	Response string `json:"response" validate:"required,max=2000"`
}

// ReviewDTO is the API view of a review.
type ReviewDTO struct {
	ID                uuid.UUID  `json:"id"`
	ProductID         uuid.UUID  `json:"product_id"`
	AuthorID          uuid.UUID  `json:"author_id"`
	AuthorUsername    string     `json:"author_username"`
	Rating            int        `json:"rating"`
	Comment           string     `json:"comment"`
	ArtisanResponse   string     `json:"artisan_response,omitempty"`
	ResponseCreatedAt *time.Time `json:"response_created_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ReviewResult is returned by review mutations.
type ReviewResult struct {
	Review     *ReviewDTO `json:"review"`
	Message    string     `json:"message"`
	RedirectTo string     `json:"redirect_to"`
}

type reviewRecord struct {
	ID                uuid.UUID  `gorm:"column:id"`
	ProductID         uuid.UUID  `gorm:"column:product_id"`
	AuthorID          uuid.UUID  `gorm:"column:author_id"`
	AuthorUsername    string     `gorm:"column:author_username"`
	Rating            int        `gorm:"column:rating"`
	Comment           string     `gorm:"column:comment"`
	ArtisanResponse   string     `gorm:"column:artisan_response"`
	ResponseCreatedAt *time.Time `gorm:"column:response_created_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
}

func (r reviewRecord) toDTO() ReviewDTO {
	return ReviewDTO(r)
}
