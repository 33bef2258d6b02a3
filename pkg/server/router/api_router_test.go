package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/config"
	handlers "github.com/NeuralTrust/BotTracker/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/BotTracker/pkg/handlers/websocket"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt"
	infraWs "github.com/NeuralTrust/BotTracker/pkg/infra/websocket"
	"github.com/NeuralTrust/BotTracker/pkg/middleware"
	"github.com/NeuralTrust/BotTracker/pkg/server/router"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namedHandler answers with its own name so tests can tell which route matched.
type namedHandler string

func (h namedHandler) Handle(c *fiber.Ctx) error {
	return c.SendString(string(h))
}

type noopWsHandler struct{}

func (noopWsHandler) Handle(*websocket.Conn) {}

func stubTransport() *handlers.HandlerTransport {
	t := &handlers.HandlerTransport{}
	v := reflect.ValueOf(t).Elem()
	for i := 0; i < v.NumField(); i++ {
		v.Field(i).Set(reflect.ValueOf(namedHandler(v.Type().Field(i).Name)))
	}
	return t
}

func buildApp(t *testing.T, jwtManager jwt.Manager) *fiber.App {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := &middleware.Transport{
		RecoverMiddleware:   middleware.NewPanicRecoverMiddleware(logger),
		SecurityMiddleware:  middleware.NewSecurityMiddleware(middleware.DefaultSecurityConfig()),
		AuthMiddleware:      middleware.NewAuthMiddleware(logger, jwtManager),
		AdminMiddleware:     middleware.NewAdminAuthMiddleware(logger),
		WebsocketMiddleware: middleware.NewWebsocketMiddleware(logger, infraWs.NewSemaphore(1)),
	}
	ws := &wsHandlers.HandlerTransportDTO{LiveTrafficHandler: noopWsHandler{}}

	app := fiber.New()
	r := router.NewAPIRouter(mw, stubTransport(), ws, &config.Config{})
	require.NoError(t, r.BuildRoutes(app))
	return app
}

func call(t *testing.T, app *fiber.App, method, target, token string) (int, string, http.Header) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func tokens(t *testing.T, m jwt.Manager) (string, string) {
	t.Helper()
	user, err := m.CreateToken(uuid.New(), "user@example.com", false)
	require.NoError(t, err)
	admin, err := m.CreateToken(uuid.New(), "admin@example.com", true)
	require.NoError(t, err)
	return user, admin
}

func TestAPIRouter_PublicRoutes(t *testing.T) {
	app := buildApp(t, jwt.NewJwtManager("secret", time.Hour))

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/health", "HealthHandler"},
		{http.MethodGet, "/api/health", "HealthHandler"},
		{http.MethodPost, "/api/auth/register", "RegisterHandler"},
		{http.MethodPost, "/api/auth/login", "LoginHandler"},
		{http.MethodPost, "/api/traffic/log", "LogTrafficHandler"},
		{http.MethodGet, "/api/signatures", "SignaturesHandler"},
		{http.MethodGet, "/api/blogs", "ListBlogsHandler"},
		{http.MethodGet, "/api/blogs/hello-world", "GetBlogHandler"},
	}
	for _, tc := range cases {
		status, body, _ := call(t, app, tc.method, tc.path, "")
		assert.Equal(t, http.StatusOK, status, tc.path)
		assert.Equal(t, tc.want, body, tc.path)
	}
}

func TestAPIRouter_TenantRoutesRequireToken(t *testing.T) {
	m := jwt.NewJwtManager("secret", time.Hour)
	app := buildApp(t, m)
	user, _ := tokens(t, m)
	id := uuid.NewString()

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/auth/me", "MeHandler"},
		{http.MethodPost, "/api/domains", "CreateDomainHandler"},
		{http.MethodGet, "/api/domains", "ListDomainsHandler"},
		{http.MethodPost, "/api/domains/" + id + "/verify", "VerifyDomainHandler"},
		{http.MethodDelete, "/api/domains/" + id, "DeleteDomainHandler"},
		{http.MethodPost, "/api/api-keys", "CreateAPIKeyHandler"},
		{http.MethodGet, "/api/api-keys", "ListAPIKeysHandler"},
		{http.MethodDelete, "/api/api-keys/" + id, "DeleteAPIKeyHandler"},
		{http.MethodGet, "/api/traffic/logs", "ListTrafficHandler"},
		{http.MethodGet, "/api/traffic/stats", "TrafficStatsHandler"},
		{http.MethodGet, "/api/traffic/export", "ExportTrafficHandler"},
		{http.MethodPost, "/api/alerts", "CreateAlertHandler"},
		{http.MethodGet, "/api/alerts", "ListAlertsHandler"},
		{http.MethodDelete, "/api/alerts/" + id, "DeleteAlertHandler"},
		{http.MethodGet, "/api/policies", "ListPoliciesHandler"},
		{http.MethodPut, "/api/policies", "UpsertPolicyHandler"},
		{http.MethodDelete, "/api/policies/" + id, "DeletePolicyHandler"},
	}
	for _, tc := range cases {
		status, _, _ := call(t, app, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, status, tc.path)

		status, body, _ := call(t, app, tc.method, tc.path, user)
		assert.Equal(t, http.StatusOK, status, tc.path)
		assert.Equal(t, tc.want, body, tc.path)
	}
}

func TestAPIRouter_AdminRoutes(t *testing.T) {
	m := jwt.NewJwtManager("secret", time.Hour)
	app := buildApp(t, m)
	user, admin := tokens(t, m)
	id := uuid.NewString()

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/admin/users", "AdminListUsersHandler"},
		{http.MethodGet, "/api/admin/stats", "AdminStatsHandler"},
		{http.MethodGet, "/api/admin/domains", "AdminListDomainsHandler"},
		{http.MethodGet, "/api/admin/user/" + id + "/activity", "AdminUserActivityHandler"},
		{http.MethodPut, "/api/admin/policies", "UpsertGlobalPolicyHandler"},
		{http.MethodDelete, "/api/admin/policies/" + id, "DeleteGlobalPolicyHandler"},
		{http.MethodPost, "/api/admin/blogs", "CreateBlogHandler"},
		{http.MethodPut, "/api/admin/blogs/" + id, "UpdateBlogHandler"},
		{http.MethodDelete, "/api/admin/blogs/" + id, "DeleteBlogHandler"},
	}
	for _, tc := range cases {
		status, _, _ := call(t, app, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, status, tc.path)

		status, _, _ = call(t, app, tc.method, tc.path, user)
		assert.Equal(t, http.StatusForbidden, status, tc.path)

		status, body, _ := call(t, app, tc.method, tc.path, admin)
		assert.Equal(t, http.StatusOK, status, tc.path)
		assert.Equal(t, tc.want, body, tc.path)
	}
}

func TestAPIRouter_SecurityHeadersOnAPI(t *testing.T) {
	app := buildApp(t, jwt.NewJwtManager("secret", time.Hour))

	_, _, headers := call(t, app, http.MethodGet, "/api/signatures", "")
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
}

func TestAPIRouter_LiveTrafficRequiresUpgrade(t *testing.T) {
	m := jwt.NewJwtManager("secret", time.Hour)
	app := buildApp(t, m)
	user, _ := tokens(t, m)

	status, _, _ := call(t, app, http.MethodGet, "/api/ws/traffic", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = call(t, app, http.MethodGet, "/api/ws/traffic", user)
	assert.Equal(t, http.StatusUpgradeRequired, status)
}

func TestAPIRouter_MissingTransport(t *testing.T) {
	r := router.NewAPIRouter(nil, nil, nil, &config.Config{})
	assert.ErrorIs(t, r.BuildRoutes(fiber.New()), router.ErrInvalidHandlerTransport)
}
