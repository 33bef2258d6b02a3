package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/app/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type trafficStatsHandler struct {
	logger  *logrus.Logger
	service stats.Service
}

func NewTrafficStatsHandler(logger *logrus.Logger, service stats.Service) Handler {
	return &trafficStatsHandler{logger: logger, service: service}
}

// Handle @Summary Traffic statistics
// @Description Totals, top bots, risk and behavior distributions over the last N days
// @Tags Traffic
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param domain_id query string false "Domain ID"
// @Param days query int false "Window in days (default 7)"
// @Success 200 {object} stats.TenantStats
// @Router /api/traffic/stats [get]
func (h *trafficStatsHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	domainID, err := queryUUID(c, "domain_id")
	if err != nil {
		return fail(c, err)
	}

	out, err := h.service.TenantStats(c.Context(), userID, domainID, c.QueryInt("days", stats.DefaultDays))
	if err != nil {
		h.logger.WithError(err).Error("failed to compute traffic stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	return c.JSON(out)
}
