package middlewares

import (
	"context"
	"net/http/httptest"
	"testing"

	"etkinlik.link/models"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService ValidateToken'ı deterministik cevaplayan sahte servistir.
type stubAuthService struct {
	claims *services.TokenClaims
	err    error
}

func (s *stubAuthService) Register(_ context.Context, _ services.RegisterInput) (*models.User, error) {
	return nil, services.ErrAuthRegisterFailed
}

func (s *stubAuthService) Login(_ context.Context, _ services.LoginInput) (*services.AuthTokenDTO, error) {
	return nil, services.ErrAuthInvalidCredentials
}

func (s *stubAuthService) ValidateToken(_ string) (*services.TokenClaims, error) {
	return s.claims, s.err
}

func newTestApp(authService services.IAuthService) *fiber.App {
	app := fiber.New()
	app.Get("/korumali", AuthMiddleware(authService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": CurrentUserID(c)})
	})
	return app
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := newTestApp(&stubAuthService{err: services.ErrAuthInvalidToken})
	resp, err := app.Test(httptest.NewRequest("GET", "/korumali", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app := newTestApp(&stubAuthService{err: services.ErrAuthInvalidToken})
	req := httptest.NewRequest("GET", "/korumali", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer bozuk-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	app := newTestApp(&stubAuthService{claims: &services.TokenClaims{UserID: 42}})
	req := httptest.NewRequest("GET", "/korumali", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer gecerli-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
