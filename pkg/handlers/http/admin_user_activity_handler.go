package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/app/stats"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminUserActivityHandler struct {
	logger  *logrus.Logger
	service stats.Service
}

func NewAdminUserActivityHandler(logger *logrus.Logger, service stats.Service) Handler {
	return &adminUserActivityHandler{logger: logger, service: service}
}

// Handle @Summary Activity of one user
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user_id path string true "User ID"
// @Success 200 {object} stats.UserActivity
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/admin/user/{user_id}/activity [get]
func (h *adminUserActivityHandler) Handle(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "user_id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.service.UserActivity(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.logger.WithError(err).Error("failed to load user activity")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	return c.JSON(out)
}
