package dto

import (
	"time"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
)

// ProductResponse is the wire shape for a listing.
type ProductResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Price         float64              `json:"price"`
	Category      domain.Category      `json:"category"`
	CategoryLabel string               `json:"categoryLabel"`
	Condition     domain.Condition     `json:"condition"`
	Images        []string             `json:"images"`
	Location      domain.Location      `json:"location"`
	Seller        *domain.PublicUser   `json:"seller,omitempty"`
	Status        domain.ListingStatus `json:"status"`
	StatusLabel   string               `json:"statusLabel"`
	Views         int64                `json:"views"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// NewProductResponse maps a domain listing to its wire shape.
func NewProductResponse(listing *domain.Listing) ProductResponse {
	return ProductResponse{
		ID:            listing.ID,
		Title:         listing.Title,
		Description:   listing.Description,
		Price:         listing.Price,
		Category:      listing.Category,
		CategoryLabel: listing.Category.Label(),
		Condition:     listing.Condition,
		Images:        listing.Images,
		Location:      listing.Location,
		Seller:        listing.Seller,
		Status:        listing.Status,
		StatusLabel:   listing.Status.Label(),
		Views:         listing.Views,
		CreatedAt:     listing.CreatedAt,
	}
}

// NewProductResponses maps a slice of listings.
func NewProductResponses(listings []domain.Listing) []ProductResponse {
	out := make([]ProductResponse, 0, len(listings))
	for i := range listings {
		out = append(out, NewProductResponse(&listings[i]))
	}
	return out
}
