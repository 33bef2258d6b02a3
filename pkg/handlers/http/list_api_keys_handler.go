package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listAPIKeysHandler struct {
	logger *logrus.Logger
	repo   apikey.Repository
}

func NewListAPIKeysHandler(logger *logrus.Logger, repo apikey.Repository) Handler {
	return &listAPIKeysHandler{logger: logger, repo: repo}
}

// Handle @Summary List API Keys
// @Tags API Keys
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} apikey.APIKey
// @Router /api/api-keys [get]
func (h *listAPIKeysHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	keys, err := h.repo.ListByUser(c.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list API keys")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if keys == nil {
		keys = []apikey.APIKey{}
	}
	return c.JSON(keys)
}
