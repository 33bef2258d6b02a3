package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	infraCache "github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type deleteAPIKeyHandler struct {
	logger       *logrus.Logger
	repo         apikey.Repository
	publisher    infraCache.EventPublisher
	auditService auditlogs.Service
}

func NewDeleteAPIKeyHandler(
	logger *logrus.Logger,
	repo apikey.Repository,
	publisher infraCache.EventPublisher,
	auditService auditlogs.Service,
) Handler {
	return &deleteAPIKeyHandler{
		logger:       logger,
		repo:         repo,
		publisher:    publisher,
		auditService: auditService,
	}
}

// Handle @Summary Delete an API Key
// @Description Removes the key and invalidates it in every instance's cache
// @Tags API Keys
// @Param Authorization header string true "Bearer token"
// @Param key_id path string true "API Key ID"
// @Success 200 {object} map[string]interface{} "API Key deleted"
// @Failure 404 {object} map[string]interface{} "API key not found"
// @Router /api/api-keys/{key_id} [delete]
func (h *deleteAPIKeyHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	keyID, err := pathUUID(c, "key_id")
	if err != nil {
		return fail(c, err)
	}

	key, err := h.repo.GetOwned(c.Context(), keyID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "API key not found"})
		}
		h.logger.WithError(err).Error("failed to load API key")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if err := h.repo.Delete(c.Context(), keyID, userID); err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "API key not found"})
		}
		h.logger.WithError(err).Error("failed to delete API key")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	err = h.publisher.Publish(c.Context(), event.DeleteApiKeyCacheEvent{
		ApiKeyID: key.ID.String(),
		ApiKey:   key.Key,
	})
	if err != nil {
		h.logger.WithError(err).Error("failed to publish api key cache invalidation")
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeAPIKeyDeleted,
				Category:    auditlogs.CategoryConfiguration,
				Description: "api key deleted",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeAPIKey, ID: key.ID.String(), Name: key.Name},
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
