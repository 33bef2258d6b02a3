package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listDomainsHandler struct {
	logger *logrus.Logger
	repo   site.Repository
}

func NewListDomainsHandler(logger *logrus.Logger, repo site.Repository) Handler {
	return &listDomainsHandler{logger: logger, repo: repo}
}

// Handle @Summary List domains
// @Tags Domains
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} site.Domain
// @Router /api/domains [get]
func (h *listDomainsHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	domains, err := h.repo.ListByUser(c.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("failed to list domains")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if domains == nil {
		domains = []site.Domain{}
	}
	return c.JSON(domains)
}
