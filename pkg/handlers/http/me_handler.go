package http

import (
	"errors"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type meHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewMeHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &meHandler{
		logger: logger,
		users:  users,
	}
}

// Handle @Summary Current user
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} user.User
// @Failure 401 {object} map[string]interface{} "User not found"
// @Router /api/auth/me [get]
func (h *meHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	u, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
		}
		h.logger.WithError(err).Error("failed to load user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	return c.JSON(u)
}
