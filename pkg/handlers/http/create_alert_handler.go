package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createAlertHandler struct {
	logger       *logrus.Logger
	repo         alert.Repository
	auditService auditlogs.Service
}

func NewCreateAlertHandler(logger *logrus.Logger, repo alert.Repository, auditService auditlogs.Service) Handler {
	return &createAlertHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Create an alert rule
// @Description Notifies the destination when hourly bot detections reach the threshold
// @Tags Alerts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param alert body request.CreateAlertRequest true "Alert rule"
// @Success 201 {object} alert.Rule
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/alerts [post]
func (h *createAlertHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	var req request.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rule, err := alert.New(userID, req.AlertType, req.Destination, req.Threshold)
	if err != nil {
		if errors.Is(err, alert.ErrInvalidType) ||
			errors.Is(err, alert.ErrInvalidDestination) ||
			errors.Is(err, alert.ErrInvalidThreshold) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to build alert rule")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if err := h.repo.Create(c.Context(), rule); err != nil {
		h.logger.WithError(err).Error("failed to create alert rule")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create alert"})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeAlertCreated,
				Category:    auditlogs.CategoryConfiguration,
				Description: "alert rule created",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeAlert, ID: rule.ID.String(), Name: string(rule.AlertType)},
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}
