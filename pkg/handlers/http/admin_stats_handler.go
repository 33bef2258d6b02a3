package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/app/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminStatsHandler struct {
	logger  *logrus.Logger
	service stats.Service
}

func NewAdminStatsHandler(logger *logrus.Logger, service stats.Service) Handler {
	return &adminStatsHandler{logger: logger, service: service}
}

// Handle @Summary Platform statistics
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} stats.AdminStats
// @Failure 403 {object} map[string]interface{} "Super admin access required"
// @Router /api/admin/stats [get]
func (h *adminStatsHandler) Handle(c *fiber.Ctx) error {
	out, err := h.service.AdminStats(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to compute admin stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	return c.JSON(out)
}
