package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/api/dto"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/auth"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/service"
	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

// ListingsHandler manages product endpoints.
type ListingsHandler struct {
	service *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listingService *service.ListingService) *ListingsHandler {
	return &ListingsHandler{service: listingService}
}

// Create handles POST /products.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var input service.ListingCreateInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	listing, err := h.service.Create(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "product created successfully",
		"product": dto.NewProductResponse(listing),
	})
}

// List handles GET /products.
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	query := parseListingQuery(c)

	page, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return err
	}

	products := dto.NewProductResponses(page.Items)
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(products),
		"total":    page.Total,
		"page":     page.Page,
		"pages":    page.Pages,
		"products": products,
	})
}

// Get handles GET /products/:id. Every fetch counts as a view.
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"product": dto.NewProductResponse(listing),
	})
}

// ListMine handles GET /products/user/products.
func (h *ListingsHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	listings, err := h.service.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"products": dto.NewProductResponses(listings),
	})
}

// Delete handles DELETE /products/:id.
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deleted successfully",
	})
}

func parseListingQuery(c *fiber.Ctx) service.ListingQuery {
	query := service.ListingQuery{
		Page:  parseInt(c.Query("page"), 1),
		Limit: parseInt(c.Query("limit"), 0),
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		query.Category = &category
	}
	if raw := c.Query("condition"); raw != "" {
		condition := domain.Condition(raw)
		query.Condition = &condition
	}
	if min := parseFloat(c.Query("minPrice")); min != nil {
		query.MinPrice = min
	}
	if max := parseFloat(c.Query("maxPrice")); max != nil {
		query.MaxPrice = max
	}
	return query
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseFloat(val string) *float64 {
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
