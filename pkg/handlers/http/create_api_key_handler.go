package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createAPIKeyHandler struct {
	logger       *logrus.Logger
	repo         apikey.Repository
	auditService auditlogs.Service
}

func NewCreateAPIKeyHandler(logger *logrus.Logger, repo apikey.Repository, auditService auditlogs.Service) Handler {
	return &createAPIKeyHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Create a new API Key
// @Description Generates an ingestion key for the caller
// @Tags API Keys
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param api_key body request.CreateAPIKeyRequest true "API Key request body"
// @Success 201 {object} apikey.APIKey "API Key created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/api-keys [post]
func (h *createAPIKeyHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	var req request.CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	key, err := apikey.New(userID, req.Name, req.ExpiresAt)
	if err != nil {
		if errors.Is(err, apikey.ErrInvalidName) ||
			errors.Is(err, apikey.ErrNameTooLong) ||
			errors.Is(err, apikey.ErrExpiresAtInPast) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to generate API key")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create API key"})
	}

	if err := h.repo.Create(c.Context(), key); err != nil {
		h.logger.WithError(err).Error("failed to create API key")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create API key"})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeAPIKeyCreated,
				Category:    auditlogs.CategoryConfiguration,
				Description: "api key created",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeAPIKey, ID: key.ID.String(), Name: key.Name},
		})
	}
	return c.Status(fiber.StatusCreated).JSON(key)
}
