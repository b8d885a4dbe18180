package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/api/http/handlers"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/auth"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/config"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/observability"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/repository/memory"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}

	users := memory.NewUserRepository()
	listings := memory.NewListingRepository(users)
	authService := service.NewAuthService(cfg, users, nil)
	listingService := service.NewListingService(listings, users)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("marketlocal-test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Listings:       handlers.NewListingsHandler(listingService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name":     "Ana",
		"email":    email,
		"password": "password123",
		"location": "Guadalajara, Jalisco",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, body["success"])
	return body["token"].(string)
}

func TestRegisterLoginAndProfileFlow(t *testing.T) {
	app := newTestApp(t)

	token := registerUser(t, app, "ana@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	status, body = doJSON(t, app, http.MethodGet, "/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	_, hasHash := user["passwordHash"]
	assert.False(t, hasHash)
}

func TestProtectedRoutesRejectMissingOrInvalidToken(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])

	status, body = doJSON(t, app, http.MethodGet, "/auth/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, _ = doJSON(t, app, http.MethodPost, "/products", "", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)

	sellerToken := registerUser(t, app, "ana@example.com")
	otherToken := registerUser(t, app, "carlos@example.com")

	status, body := doJSON(t, app, http.MethodPost, "/products", sellerToken, map[string]any{
		"title":       "Bike",
		"description": "Good condition",
		"price":       50,
		"category":    "vehiculos",
		"condition":   "usado",
		"location":    "City, State",
	})
	require.Equal(t, http.StatusCreated, status)
	product := body["product"].(map[string]any)
	productID := product["id"].(string)
	assert.Equal(t, "disponible", product["status"])
	assert.EqualValues(t, 0, product["views"])
	assert.NotNil(t, product["seller"])

	// browse without auth
	status, body = doJSON(t, app, http.MethodGet, "/products?category=vehiculos", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 1, body["pages"])

	// single fetch increments views
	status, body = doJSON(t, app, http.MethodGet, "/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["product"].(map[string]any)["views"])

	// owner listing route is not captured by /products/:id
	status, body = doJSON(t, app, http.MethodGet, "/products/user/products", sellerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["products"].([]any), 1)

	// non-owner cannot delete
	status, body = doJSON(t, app, http.MethodDelete, "/products/"+productID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])

	// owner can
	status, _ = doJSON(t, app, http.MethodDelete, "/products/"+productID, sellerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/products/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	// no postgres/redis wired in tests, readiness must fail
	status, body = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["success"])
}

func TestValidationAndConflictEnvelopes(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name": "Ana",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	registerUser(t, app, "ana@example.com")
	status, body = doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name":     "Ana",
		"email":    "ANA@example.com",
		"password": "password123",
		"location": "CDMX",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
}
