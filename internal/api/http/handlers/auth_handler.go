package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/auth"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/service"
	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	session, err := h.auth.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "account registered successfully",
		"token":   session.Token,
		"user":    session.User,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	session, err := h.auth.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.auth.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
