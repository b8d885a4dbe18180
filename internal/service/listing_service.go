package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/repository"
	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

const defaultPageSize = 12

// ListingCreateInput carries the fields for a new listing. Price is a
// pointer so an explicit 0 passes the required check.
type ListingCreateInput struct {
	Title       string           `json:"title" validate:"required,min=1,max=100"`
	Description string           `json:"description" validate:"required,min=1,max=1000"`
	Price       *float64         `json:"price" validate:"required,gte=0"`
	Category    domain.Category  `json:"category" validate:"required"`
	Condition   domain.Condition `json:"condition" validate:"required"`
	Location    string           `json:"location" validate:"required"`
	Images      []string         `json:"images"`
}

// ListingQuery captures browse filters and pagination.
type ListingQuery struct {
	Category  *domain.Category
	Condition *domain.Condition
	MinPrice  *float64
	MaxPrice  *float64
	Page      int
	Limit     int
}

// ListingPage is a paginated browse result.
type ListingPage struct {
	Items []domain.Listing
	Total int64
	Page  int
	Pages int
}

// ListingService implements the listing lifecycle.
type ListingService struct {
	listings repository.ListingRepository
	users    repository.UserRepository
	validate *validator.Validate
}

// NewListingService builds the service.
func NewListingService(listings repository.ListingRepository, users repository.UserRepository) *ListingService {
	return &ListingService{
		listings: listings,
		users:    users,
		validate: newValidator(),
	}
}

// Create persists a new listing owned by sellerID, available with zero
// views, and returns it with the seller projection attached.
func (s *ListingService) Create(ctx context.Context, sellerID string, input ListingCreateInput) (*domain.Listing, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category")
	}
	if !input.Condition.Valid() {
		return nil, apperrors.NewValidationError("unknown condition")
	}

	seller, err := s.users.GetByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("seller account no longer exists")
		}
		return nil, apperrors.MapError(err)
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	listing := &domain.Listing{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       *input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Images:      images,
		Location:    domain.ParseLocation(input.Location),
		SellerID:    seller.ID,
		Status:      domain.StatusAvailable,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, apperrors.MapError(err)
	}

	public := seller.Public()
	listing.Seller = &public
	return listing, nil
}

// List returns available listings matching the query, newest first.
func (s *ListingService) List(ctx context.Context, query ListingQuery) (*ListingPage, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	status := domain.StatusAvailable
	filter := repository.ListingFilter{
		Status:    &status,
		Category:  query.Category,
		Condition: query.Condition,
		MinPrice:  query.MinPrice,
		MaxPrice:  query.MaxPrice,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	items, err := s.listings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	total, err := s.listings.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ListingPage{Items: items, Total: total, Page: page, Pages: pages}, nil
}

// Get increments the view counter and returns the listing with seller
// details. The increment happens on every fetch, with no per-viewer
// deduplication.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	if _, err := s.listings.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, apperrors.MapError(err)
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, apperrors.MapError(err)
	}
	return listing, nil
}

// ListByOwner returns every listing of the seller regardless of status,
// newest first.
func (s *ListingService) ListByOwner(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	items, err := s.listings.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// Delete permanently removes a listing. Only the owning seller may
// delete; any other identity gets a 403 and the listing is untouched.
func (s *ListingService) Delete(ctx context.Context, callerID, id string) error {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("listing")
		}
		return apperrors.MapError(err)
	}
	if listing.SellerID != callerID {
		return apperrors.NewForbidden("you do not have permission to delete this listing")
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
