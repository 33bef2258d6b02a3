package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/app/ingest"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type logTrafficHandler struct {
	logger   *logrus.Logger
	ingestor ingest.Ingestor
}

func NewLogTrafficHandler(logger *logrus.Logger, ingestor ingest.Ingestor) Handler {
	return &logTrafficHandler{
		logger:   logger,
		ingestor: ingestor,
	}
}

// Handle @Summary Report a traffic event
// @Description Classifies one request served by a verified domain. Authenticated with the API key in the body.
// @Tags Traffic
// @Accept json
// @Produce json
// @Param event body request.TrafficLogRequest true "Traffic event"
// @Success 200 {object} ingest.Result "Event accepted"
// @Failure 401 {object} map[string]interface{} "Invalid API key"
// @Failure 403 {object} ingest.Result "Blocked by bot policy"
// @Failure 404 {object} map[string]interface{} "Domain not found or not verified"
// @Failure 500 {object} map[string]interface{} "Failed to store traffic log"
// @Router /api/traffic/log [post]
func (h *logTrafficHandler) Handle(c *fiber.Ctx) error {
	var req request.TrafficLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.ingestor.Ingest(c.Context(), ingest.Event{
		Domain:    req.Domain,
		APIKey:    req.APIKey,
		IP:        req.IPAddress,
		UserAgent: req.UserAgent,
		Path:      req.RequestPath,
		Method:    req.RequestMethod,
		Headers:   req.Headers,
		RemoteIP:  utils.ClientIP(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API key"})
		case errors.Is(err, ingest.ErrUnknownDomain):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Domain not found or not verified"})
		case errors.Is(err, ingest.ErrBlocked) && result != nil:
			return c.Status(fiber.StatusForbidden).JSON(result)
		case errors.Is(err, ingest.ErrStoreFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ingest.ErrStoreFailed.Error()})
		}
		h.logger.WithError(err).Error("failed to ingest traffic event")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	return c.JSON(result)
}
