package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listPoliciesHandler struct {
	logger *logrus.Logger
	repo   policy.Repository
}

func NewListPoliciesHandler(logger *logrus.Logger, repo policy.Repository) Handler {
	return &listPoliciesHandler{logger: logger, repo: repo}
}

// Handle @Summary List bot policies
// @Description The caller's policies followed by the global ones
// @Tags Bot Policies
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} policy.BotPolicy
// @Router /api/policies [get]
func (h *listPoliciesHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	policies, err := h.repo.ListApplicable(c.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list bot policies")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if policies == nil {
		policies = []policy.BotPolicy{}
	}
	return c.JSON(policies)
}
