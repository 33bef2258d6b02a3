package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	infraCache "github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type upsertPolicyHandler struct {
	logger       *logrus.Logger
	repo         policy.Repository
	publisher    infraCache.EventPublisher
	auditService auditlogs.Service
	global       bool
}

// NewUpsertPolicyHandler sets a policy for the calling tenant.
func NewUpsertPolicyHandler(
	logger *logrus.Logger,
	repo policy.Repository,
	publisher infraCache.EventPublisher,
	auditService auditlogs.Service,
) Handler {
	return &upsertPolicyHandler{
		logger:       logger,
		repo:         repo,
		publisher:    publisher,
		auditService: auditService,
	}
}

// NewUpsertGlobalPolicyHandler sets a policy that applies to every tenant
// without one of its own. Mounted behind the admin middleware.
func NewUpsertGlobalPolicyHandler(
	logger *logrus.Logger,
	repo policy.Repository,
	publisher infraCache.EventPublisher,
	auditService auditlogs.Service,
) Handler {
	return &upsertPolicyHandler{
		logger:       logger,
		repo:         repo,
		publisher:    publisher,
		auditService: auditService,
		global:       true,
	}
}

// Handle @Summary Set a bot policy
// @Description Inserts or replaces the action for a bot name. /api/admin/policies sets global policies.
// @Tags Bot Policies
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param policy body request.UpsertPolicyRequest true "Policy"
// @Success 200 {object} policy.BotPolicy
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/policies [put]
// @Router /api/admin/policies [put]
func (h *upsertPolicyHandler) Handle(c *fiber.Ctx) error {
	var owner *uuid.UUID
	if !h.global {
		userID, err := currentUser(c)
		if err != nil {
			return fail(c, err)
		}
		owner = &userID
	}

	var req request.UpsertPolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	action, err := policy.ParseAction(req.Action)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	p, err := policy.New(owner, req.BotName, action)
	if err != nil {
		if errors.Is(err, policy.ErrInvalidBotName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to build bot policy")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if err := h.repo.Upsert(c.Context(), p); err != nil {
		h.logger.WithError(err).Error("failed to save bot policy")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save bot policy"})
	}

	invalidate := event.DeleteBotPoliciesCacheEvent{}
	if owner != nil {
		invalidate.UserID = owner.String()
	}
	if err := h.publisher.Publish(c.Context(), invalidate); err != nil {
		h.logger.WithError(err).Error("failed to publish bot policy cache invalidation")
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypePolicyUpserted,
				Category:    auditlogs.CategoryConfiguration,
				Description: string(p.Action) + " " + p.BotName,
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypePolicy, ID: p.ID.String(), Name: p.BotName},
		})
	}
	return c.JSON(p)
}
