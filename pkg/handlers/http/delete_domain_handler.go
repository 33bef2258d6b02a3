package http

import (
	"errors"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deleteDomainHandler struct {
	logger       *logrus.Logger
	repo         site.Repository
	auditService auditlogs.Service
}

func NewDeleteDomainHandler(logger *logrus.Logger, repo site.Repository, auditService auditlogs.Service) Handler {
	return &deleteDomainHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Delete a domain
// @Tags Domains
// @Param Authorization header string true "Bearer token"
// @Param domain_id path string true "Domain ID"
// @Success 200 {object} map[string]interface{} "Domain deleted"
// @Failure 404 {object} map[string]interface{} "Domain not found"
// @Router /api/domains/{domain_id} [delete]
func (h *deleteDomainHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	domainID, err := pathUUID(c, "domain_id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.repo.Delete(c.Context(), domainID, userID); err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Domain not found"})
		}
		h.logger.WithError(err).Error("failed to delete domain")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeDomainDeleted,
				Category:    auditlogs.CategoryConfiguration,
				Description: "domain deleted",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeDomain, ID: domainID.String()},
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
