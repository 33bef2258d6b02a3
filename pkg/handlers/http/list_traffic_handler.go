package http

import (
	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogsLimit = 100
	maxLogsLimit     = 1000
)

type listTrafficHandler struct {
	logger *logrus.Logger
	repo   traffic.Repository
}

func NewListTrafficHandler(logger *logrus.Logger, repo traffic.Repository) Handler {
	return &listTrafficHandler{logger: logger, repo: repo}
}

// Handle @Summary List traffic logs
// @Description Newest first, optionally scoped to one domain
// @Tags Traffic
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param domain_id query string false "Domain ID"
// @Param limit query int false "Maximum rows (default 100)"
// @Success 200 {array} traffic.Log
// @Router /api/traffic/logs [get]
func (h *listTrafficHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	domainID, err := queryUUID(c, "domain_id")
	if err != nil {
		return fail(c, err)
	}

	limit := c.QueryInt("limit", defaultLogsLimit)
	if limit <= 0 {
		limit = defaultLogsLimit
	}
	if limit > maxLogsLimit {
		limit = maxLogsLimit
	}

	logs, err := h.repo.List(c.Context(), traffic.Filter{
		UserID:   &userID,
		DomainID: domainID,
		Limit:    limit,
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to list traffic logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if logs == nil {
		logs = []traffic.Log{}
	}
	return c.JSON(logs)
}
