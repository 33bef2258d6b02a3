package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminListDomainsHandler struct {
	logger *logrus.Logger
	repo   site.Repository
}

func NewAdminListDomainsHandler(logger *logrus.Logger, repo site.Repository) Handler {
	return &adminListDomainsHandler{logger: logger, repo: repo}
}

// Handle @Summary List all domains with their owners
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} site.WithOwner
// @Failure 403 {object} map[string]interface{} "Super admin access required"
// @Router /api/admin/domains [get]
func (h *adminListDomainsHandler) Handle(c *fiber.Ctx) error {
	domains, err := h.repo.ListWithOwners(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list domains")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if domains == nil {
		domains = []site.WithOwner{}
	}
	return c.JSON(domains)
}
