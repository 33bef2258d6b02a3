package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt"
	jwtMocks "github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt/mocks"
	infraWs "github.com/NeuralTrust/BotTracker/pkg/infra/websocket"
	"github.com/NeuralTrust/BotTracker/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(jwtManager jwt.Manager) *fiber.App {
	logger := logrus.New()
	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(logger).Middleware())
	app.Use(middleware.NewAuthMiddleware(logger, jwtManager).Middleware())
	app.Get("/me", func(c *fiber.Ctx) error {
		id, err := middleware.CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id.String(), "admin": middleware.IsAdmin(c)})
	})
	app.Get("/admin", middleware.NewAdminAuthMiddleware(logger).Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	return app
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	app := newApp(jwt.NewJwtManager("secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BadFormatAndToken(t *testing.T) {
	app := newApp(jwt.NewJwtManager("secret", time.Hour))

	for _, header := range []string{"Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddleware_ForeignSecretRejected(t *testing.T) {
	app := newApp(jwt.NewJwtManager("secret", time.Hour))
	token, err := jwt.NewJwtManager("other", time.Hour).CreateToken(uuid.New(), "a@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := jwt.NewJwtManager("secret", time.Hour)
	app := newApp(manager)
	id := uuid.New()
	token, err := manager.CreateToken(id, "a@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, id.String(), out["id"])
	assert.Equal(t, false, out["admin"])
}

func TestAdminAuthMiddleware(t *testing.T) {
	manager := jwt.NewJwtManager("secret", time.Hour)
	app := newApp(manager)

	user, _ := manager.CreateToken(uuid.New(), "u@example.com", false)
	admin, _ := manager.CreateToken(uuid.New(), "a@example.com", true)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+user)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPanicRecoverMiddleware(t *testing.T) {
	manager := jwt.NewJwtManager("secret", time.Hour)
	app := newApp(manager)
	token, _ := manager.CreateToken(uuid.New(), "u@example.com", false)

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSecurityMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewSecurityMiddleware(middleware.DefaultSecurityConfig()).Middleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("OK") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", resp.Header.Get("Referrer-Policy"))
	assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
}

func TestWebsocketMiddleware(t *testing.T) {
	sem := infraWs.NewSemaphore(1)
	app := fiber.New()
	app.Use(middleware.NewWebsocketMiddleware(logrus.New(), sem).Middleware())
	app.Get("/ws", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	upgrade := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		return req
	}
	resp, err = app.Test(upgrade())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, sem.InUse())

	resp, err = app.Test(upgrade())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredAndBadSubject(t *testing.T) {
	manager := new(jwtMocks.MockManager)
	manager.On("DecodeToken", "expired").Return(nil, jwt.ErrExpiredToken)
	manager.On("DecodeToken", "no-subject").Return(&jwt.Claims{Email: "a@example.com"}, nil)
	app := newApp(manager)

	cases := map[string]string{"expired": "Token expired", "no-subject": "Invalid token"}
	for token, msg := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, token)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, msg, body["error"], token)
	}
	manager.AssertExpectations(t)
}
