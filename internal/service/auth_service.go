package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/auth"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/config"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/repository"
	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

// RegisterInput carries registration fields. Location is the free-text
// form input, split into address/city/state on creation.
type RegisterInput struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Location string          `json:"location" validate:"required"`
	Role     domain.UserRole `json:"userType" validate:"omitempty,oneof=buyer seller"`
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful register or login.
type Session struct {
	User      domain.PublicUser
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and profile retrieval.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	limiter    *auth.LoginLimiter
	validate   *validator.Validate
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, limiter *auth.LoginLimiter) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		limiter:    limiter,
		validate:   newValidator(),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account and returns a signed session.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("an account with this email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Location:     domain.ParseLocation(input.Location),
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	return s.newSession(user)
}

// Login authenticates an account. Failures never reveal whether the
// email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if ok, _ := s.limiter.Allow(ctx, email); !ok {
		return nil, apperrors.NewRateLimited("too many login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("incorrect email or password")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		return nil, apperrors.NewUnauthorized("incorrect email or password")
	}

	s.limiter.Reset(ctx, email)
	return s.newSession(user)
}

// GetProfile returns the public projection for an authenticated id.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}
	public := user.Public()
	return &public, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) newSession(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user.Public(), Token: token, ExpiresAt: exp}, nil
}
