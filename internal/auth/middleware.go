package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

const identityKey = "auth_user_id"

// Middleware validates bearer tokens and binds the caller's identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. An invalid or
// expired token is surfaced as 401, never treated as anonymous.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(identityKey, claims.UserID)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated user id.
func IdentityFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
