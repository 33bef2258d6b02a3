package http

import (
	"errors"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	infraCache "github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type deletePolicyHandler struct {
	logger       *logrus.Logger
	repo         policy.Repository
	publisher    infraCache.EventPublisher
	auditService auditlogs.Service
	global       bool
}

func NewDeletePolicyHandler(
	logger *logrus.Logger,
	repo policy.Repository,
	publisher infraCache.EventPublisher,
	auditService auditlogs.Service,
) Handler {
	return &deletePolicyHandler{
		logger:       logger,
		repo:         repo,
		publisher:    publisher,
		auditService: auditService,
	}
}

// NewDeleteGlobalPolicyHandler removes a policy that has no owner. Mounted
// behind the admin middleware.
func NewDeleteGlobalPolicyHandler(
	logger *logrus.Logger,
	repo policy.Repository,
	publisher infraCache.EventPublisher,
	auditService auditlogs.Service,
) Handler {
	return &deletePolicyHandler{
		logger:       logger,
		repo:         repo,
		publisher:    publisher,
		auditService: auditService,
		global:       true,
	}
}

// Handle @Summary Delete a bot policy
// @Tags Bot Policies
// @Param Authorization header string true "Bearer token"
// @Param policy_id path string true "Policy ID"
// @Success 200 {object} map[string]interface{} "Policy deleted"
// @Failure 404 {object} map[string]interface{} "Policy not found"
// @Router /api/policies/{policy_id} [delete]
// @Router /api/admin/policies/{policy_id} [delete]
func (h *deletePolicyHandler) Handle(c *fiber.Ctx) error {
	var owner *uuid.UUID
	if !h.global {
		userID, err := currentUser(c)
		if err != nil {
			return fail(c, err)
		}
		owner = &userID
	}
	policyID, err := pathUUID(c, "policy_id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.repo.Delete(c.Context(), policyID, owner); err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Policy not found"})
		}
		h.logger.WithError(err).Error("failed to delete bot policy")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
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
				Type:        auditlogs.EventTypePolicyDeleted,
				Category:    auditlogs.CategoryConfiguration,
				Description: "bot policy deleted",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypePolicy, ID: policyID.String()},
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
