package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebHubMltiplataforma/MarketLocal/internal/auth"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/config"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/domain"
	"github.com/WebHubMltiplataforma/MarketLocal/internal/repository/memory"
	apperrors "github.com/WebHubMltiplataforma/MarketLocal/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
}

func newTestAuthService() (*AuthService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	limiter := auth.NewLoginLimiter(nil, 0, 0)
	return NewAuthService(testConfig(), users, limiter), users
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{
		Name:     "Ana García",
		Email:    "Ana@Example.com",
		Password: "password123",
		Location: "Guadalajara, Jalisco",
		Role:     domain.UserRoleSeller,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, "Guadalajara", session.User.Location.City)
	assert.Equal(t, "Jalisco", session.User.Location.State)
	assert.Equal(t, domain.UserRoleSeller, session.User.Role)

	login, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmailDiffersOnlyByCase(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "password123", Location: "CDMX",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Name: "Otra Ana", Email: "ANA@EXAMPLE.COM", Password: "password456", Location: "CDMX",
	})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "a@b.com", Password: "x", Location: "CDMX"},
		{Name: "Ana", Password: "x", Location: "CDMX"},
		{Name: "Ana", Email: "a@b.com", Location: "CDMX"},
		{Name: "Ana", Email: "a@b.com", Password: "x"},
	}
	for _, input := range cases {
		_, err := svc.Register(ctx, input)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "password123", Location: "CDMX",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "not-it"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestLoginMissingCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Login(ctx, LoginInput{Password: "password123"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestGetProfile(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	session, err := svc.Register(ctx, RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "password123", Location: "CDMX",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	users.Delete(session.User.ID)
	_, err = svc.GetProfile(ctx, session.User.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
