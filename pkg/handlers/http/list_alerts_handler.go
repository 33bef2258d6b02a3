package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listAlertsHandler struct {
	logger *logrus.Logger
	repo   alert.Repository
}

func NewListAlertsHandler(logger *logrus.Logger, repo alert.Repository) Handler {
	return &listAlertsHandler{logger: logger, repo: repo}
}

// Handle @Summary List alert rules
// @Tags Alerts
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} alert.Rule
// @Router /api/alerts [get]
func (h *listAlertsHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	rules, err := h.repo.ListByUser(c.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list alert rules")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if rules == nil {
		rules = []alert.Rule{}
	}
	return c.JSON(rules)
}
