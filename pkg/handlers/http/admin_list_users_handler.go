package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminListUsersHandler struct {
	logger *logrus.Logger
	users  user.Repository
}

func NewAdminListUsersHandler(logger *logrus.Logger, users user.Repository) Handler {
	return &adminListUsersHandler{logger: logger, users: users}
}

// Handle @Summary List all users
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} user.User
// @Failure 403 {object} map[string]interface{} "Super admin access required"
// @Router /api/admin/users [get]
func (h *adminListUsersHandler) Handle(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if users == nil {
		users = []user.User{}
	}
	return c.JSON(users)
}
