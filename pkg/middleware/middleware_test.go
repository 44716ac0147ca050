package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func newApp(t *testing.T) (*fiber.App, jwt.Manager) {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	manager := jwt.NewJwtManager(config.AuthConfig{SecretKey: secret})

	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(logger).Middleware())
	app.Use(middleware.NewDeviceMiddleware().Middleware())
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
	app.Get("/device", func(c *fiber.Ctx) error { return c.SendString(middleware.Device(c)) })

	authed := app.Group("/api", middleware.NewAuthMiddleware(logger, manager).Middleware())
	authed.Get("/me", func(c *fiber.Ctx) error { return c.SendString(middleware.UserID(c)) })
	admin := authed.Group("/admin", middleware.NewAdminAuthMiddleware(logger).Middleware())
	admin.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app, manager
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAuthMiddleware(t *testing.T) {
	app, manager := newApp(t)
	token, err := manager.CreateToken("user-1", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		path   string
		status int
	}{
		{name: "no credentials", path: "/api/me", status: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", path: "/api/me", status: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", path: "/api/me", status: fiber.StatusUnauthorized},
		{name: "valid header", header: "Bearer " + token, path: "/api/me", status: fiber.StatusOK},
		{name: "valid query token", path: "/api/me?token=" + token, status: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusOK {
				assert.Equal(t, "user-1", body(t, resp))
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app, _ := newApp(t)
	claims := &jwt.Claims{UserID: "u", RegisteredClaims: jwtlib.RegisteredClaims{
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Token expired")
}

func TestAdminAuthMiddleware(t *testing.T) {
	app, manager := newApp(t)
	userToken, err := manager.CreateToken("user-1", "user")
	require.NoError(t, err)
	adminToken, err := manager.CreateToken("admin-1", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPanicRecoverMiddleware(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestDeviceMiddleware(t *testing.T) {
	app, _ := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/device", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, "phone", body(t, resp))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewCORSMiddleware([]string{"https://app.example.com"}).Middleware())
	app.Post("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
