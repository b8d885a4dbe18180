package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/api/http/handlers"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Listings       *handlers.ListingsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.Profile)

	products := app.Group("/products")
	products.Get("/", cfg.Listings.List)
	products.Post("/", cfg.AuthMiddleware.Handle, cfg.Listings.Create)
	// registered before /:id so the path segment is not captured as an id
	products.Get("/user/products", cfg.AuthMiddleware.Handle, cfg.Listings.ListMine)
	products.Get("/:id", cfg.Listings.Get)
	products.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Listings.Delete)
}
