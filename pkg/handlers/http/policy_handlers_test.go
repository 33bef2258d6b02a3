package http

import (
	"testing"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	alertMocks "github.com/NeuralTrust/BotTracker/pkg/domain/alert/mocks"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	policyMocks "github.com/NeuralTrust/BotTracker/pkg/domain/policy/mocks"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	cacheMocks "github.com/NeuralTrust/BotTracker/pkg/infra/cache/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpsertPolicyHandler_Tenant(t *testing.T) {
	owner := uuid.New()
	repo := new(policyMocks.MockRepository)
	publisher := new(cacheMocks.MockEventPublisher)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *policy.BotPolicy) bool {
		return p.UserID != nil && *p.UserID == owner && p.BotName == "GPTBot" && p.Action == policy.ActionBlock
	})).Return(nil)
	publisher.On("Publish", mock.Anything, event.DeleteBotPoliciesCacheEvent{UserID: owner.String()}).Return(nil)

	app := newTestApp(fiber.MethodPut, "/policies", NewUpsertPolicyHandler(logrus.New(), repo, publisher, nil), &owner)
	status, body := doRequest(t, app, fiber.MethodPut, "/policies", request.UpsertPolicyRequest{BotName: "GPTBot", Action: "BLOCK"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "block", decode(t, body)["action"])
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpsertPolicyHandler_Global(t *testing.T) {
	admin := uuid.New()
	repo := new(policyMocks.MockRepository)
	publisher := new(cacheMocks.MockEventPublisher)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *policy.BotPolicy) bool {
		return p.IsGlobal() && p.BotName == "CCBot"
	})).Return(nil)
	publisher.On("Publish", mock.Anything, event.DeleteBotPoliciesCacheEvent{}).Return(nil)

	app := newTestApp(fiber.MethodPut, "/admin/policies", NewUpsertGlobalPolicyHandler(logrus.New(), repo, publisher, nil), &admin)
	status, body := doRequest(t, app, fiber.MethodPut, "/admin/policies", request.UpsertPolicyRequest{BotName: "CCBot", Action: "allow"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, decode(t, body), "user_id")
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpsertPolicyHandler_InvalidAction(t *testing.T) {
	owner := uuid.New()
	repo := new(policyMocks.MockRepository)
	app := newTestApp(fiber.MethodPut, "/policies", NewUpsertPolicyHandler(logrus.New(), repo, new(cacheMocks.MockEventPublisher), nil), &owner)

	status, body := doRequest(t, app, fiber.MethodPut, "/policies", request.UpsertPolicyRequest{BotName: "GPTBot", Action: "throttle"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, policy.ErrInvalidAction.Error(), decode(t, body)["error"])
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestDeletePolicyHandler(t *testing.T) {
	owner := uuid.New()
	policyID := uuid.New()
	repo := new(policyMocks.MockRepository)
	publisher := new(cacheMocks.MockEventPublisher)
	repo.On("Delete", mock.Anything, policyID, &owner).Return(nil)
	publisher.On("Publish", mock.Anything, event.DeleteBotPoliciesCacheEvent{UserID: owner.String()}).Return(nil)

	app := newTestApp(fiber.MethodDelete, "/policies/:policy_id", NewDeletePolicyHandler(logrus.New(), repo, publisher, nil), &owner)
	status, _ := doRequest(t, app, fiber.MethodDelete, "/policies/"+policyID.String(), nil)

	assert.Equal(t, fiber.StatusOK, status)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeletePolicyHandler_Global(t *testing.T) {
	admin := uuid.New()
	policyID := uuid.New()
	repo := new(policyMocks.MockRepository)
	publisher := new(cacheMocks.MockEventPublisher)
	repo.On("Delete", mock.Anything, policyID, (*uuid.UUID)(nil)).Return(nil)
	publisher.On("Publish", mock.Anything, event.DeleteBotPoliciesCacheEvent{}).Return(nil)

	app := newTestApp(fiber.MethodDelete, "/admin/policies/:policy_id", NewDeleteGlobalPolicyHandler(logrus.New(), repo, publisher, nil), &admin)
	status, _ := doRequest(t, app, fiber.MethodDelete, "/admin/policies/"+policyID.String(), nil)

	assert.Equal(t, fiber.StatusOK, status)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeletePolicyHandler_GlobalNotFound(t *testing.T) {
	admin := uuid.New()
	policyID := uuid.New()
	repo := new(policyMocks.MockRepository)
	publisher := new(cacheMocks.MockEventPublisher)
	repo.On("Delete", mock.Anything, policyID, (*uuid.UUID)(nil)).
		Return(domainErrors.NewNotFoundError("bot policy", policyID))

	app := newTestApp(fiber.MethodDelete, "/admin/policies/:policy_id", NewDeleteGlobalPolicyHandler(logrus.New(), repo, publisher, nil), &admin)
	status, _ := doRequest(t, app, fiber.MethodDelete, "/admin/policies/"+policyID.String(), nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateAlertHandler(t *testing.T) {
	owner := uuid.New()
	repo := new(alertMocks.MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *alert.Rule) bool {
		return r.UserID == owner && r.AlertType == alert.TypeWebhook && r.Threshold == alert.DefaultThreshold
	})).Return(nil)

	app := newTestApp(fiber.MethodPost, "/alerts", NewCreateAlertHandler(logrus.New(), repo, nil), &owner)

	status, _ := doRequest(t, app, fiber.MethodPost, "/alerts",
		request.CreateAlertRequest{AlertType: "webhook", Destination: "https://hooks.example.com/x"})
	assert.Equal(t, fiber.StatusCreated, status)

	status, body := doRequest(t, app, fiber.MethodPost, "/alerts",
		request.CreateAlertRequest{AlertType: "sms", Destination: "+34600000000"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, alert.ErrInvalidType.Error(), decode(t, body)["error"])
	repo.AssertNumberOfCalls(t, "Create", 1)
}
