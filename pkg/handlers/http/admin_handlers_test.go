package http

import (
	"testing"

	"github.com/NeuralTrust/BotTracker/pkg/app/stats"
	statsMocks "github.com/NeuralTrust/BotTracker/pkg/app/stats/mocks"
	"github.com/NeuralTrust/BotTracker/pkg/detection"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	siteMocks "github.com/NeuralTrust/BotTracker/pkg/domain/site/mocks"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	userMocks "github.com/NeuralTrust/BotTracker/pkg/domain/user/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsersHandler(t *testing.T) {
	users := new(userMocks.MockRepository)
	users.On("List", mock.Anything).Return([]user.User{{ID: uuid.New(), Email: "a@example.com", PasswordHash: "hash"}}, nil)

	app := newTestApp(fiber.MethodGet, "/admin/users", NewAdminListUsersHandler(logrus.New(), users), nil)
	status, body := doRequest(t, app, fiber.MethodGet, "/admin/users", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "a@example.com")
	assert.NotContains(t, string(body), "hash")
}

func TestAdminStatsHandler(t *testing.T) {
	svc := new(statsMocks.MockService)
	svc.On("AdminStats", mock.Anything).Return(&stats.AdminStats{TotalUsers: 3, VerifiedDomains: 1}, nil)

	app := newTestApp(fiber.MethodGet, "/admin/stats", NewAdminStatsHandler(logrus.New(), svc), nil)
	status, body := doRequest(t, app, fiber.MethodGet, "/admin/stats", nil)

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(3), decode(t, body)["total_users"])
}

func TestAdminListDomainsHandler(t *testing.T) {
	repo := new(siteMocks.MockRepository)
	repo.On("ListWithOwners", mock.Anything).Return([]site.WithOwner{{
		Domain:    site.Domain{ID: uuid.New(), Name: "example.com"},
		UserEmail: "owner@example.com",
	}}, nil)

	app := newTestApp(fiber.MethodGet, "/admin/domains", NewAdminListDomainsHandler(logrus.New(), repo), nil)
	status, body := doRequest(t, app, fiber.MethodGet, "/admin/domains", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"user_email":"owner@example.com"`)
	assert.Contains(t, string(body), `"domain":"example.com"`)
}

func TestAdminUserActivityHandler(t *testing.T) {
	known := uuid.New()
	unknown := uuid.New()
	svc := new(statsMocks.MockService)
	svc.On("UserActivity", mock.Anything, known).Return(&stats.UserActivity{User: &user.User{ID: known}}, nil)
	svc.On("UserActivity", mock.Anything, unknown).Return(nil, domainErrors.NewNotFoundError("user", unknown))

	app := newTestApp(fiber.MethodGet, "/admin/user/:user_id/activity", NewAdminUserActivityHandler(logrus.New(), svc), nil)

	status, _ := doRequest(t, app, fiber.MethodGet, "/admin/user/"+known.String()+"/activity", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := doRequest(t, app, fiber.MethodGet, "/admin/user/"+unknown.String()+"/activity", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User not found", decode(t, body)["error"])
}

func TestSignaturesAndHealthHandlers(t *testing.T) {
	classifier := detection.NewClassifier(detection.DefaultSignatureTable())
	app := newTestApp(fiber.MethodGet, "/signatures", NewSignaturesHandler(classifier), nil)
	status, body := doRequest(t, app, fiber.MethodGet, "/signatures", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "GPTBot")

	app = newTestApp(fiber.MethodGet, "/health", NewHealthHandler(), nil)
	status, body = doRequest(t, app, fiber.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", decode(t, body)["status"])
}
