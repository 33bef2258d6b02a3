package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deleteAlertHandler struct {
	logger       *logrus.Logger
	repo         alert.Repository
	auditService auditlogs.Service
}

func NewDeleteAlertHandler(logger *logrus.Logger, repo alert.Repository, auditService auditlogs.Service) Handler {
	return &deleteAlertHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Delete an alert rule
// @Tags Alerts
// @Param Authorization header string true "Bearer token"
// @Param alert_id path string true "Alert ID"
// @Success 200 {object} map[string]interface{} "Alert deleted"
// @Failure 404 {object} map[string]interface{} "Alert not found"
// @Router /api/alerts/{alert_id} [delete]
func (h *deleteAlertHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	alertID, err := pathUUID(c, "alert_id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.repo.Delete(c.Context(), alertID, userID); err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Alert not found"})
		}
		h.logger.WithError(err).Error("failed to delete alert rule")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeAlertDeleted,
				Category:    auditlogs.CategoryConfiguration,
				Description: "alert rule deleted",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeAlert, ID: alertID.String()},
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
