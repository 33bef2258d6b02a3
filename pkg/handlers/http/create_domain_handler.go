package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createDomainHandler struct {
	logger       *logrus.Logger
	repo         site.Repository
	auditService auditlogs.Service
}

func NewCreateDomainHandler(logger *logrus.Logger, repo site.Repository, auditService auditlogs.Service) Handler {
	return &createDomainHandler{
		logger:       logger,
		repo:         repo,
		auditService: auditService,
	}
}

// Handle @Summary Register a domain
// @Description Adds a domain for the caller and returns its verification token
// @Tags Domains
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param domain body request.CreateDomainRequest true "Domain"
// @Success 201 {object} site.Domain "Domain created"
// @Failure 400 {object} map[string]interface{} "Invalid or duplicate domain"
// @Router /api/domains [post]
func (h *createDomainHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	var req request.CreateDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := site.New(userID, req.Domain)
	if err != nil {
		if errors.Is(err, site.ErrInvalidName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to build domain")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	exists, err := h.repo.ExistsForUser(c.Context(), userID, d.Name)
	if err != nil {
		h.logger.WithError(err).Error("failed to check domain")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Domain already added"})
	}

	if err := h.repo.Create(c.Context(), d); err != nil {
		if errors.Is(err, site.ErrAlreadyAdded) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Domain already added"})
		}
		h.logger.WithError(err).Error("failed to create domain")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create domain"})
	}

	if h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeDomainCreated,
				Category:    auditlogs.CategoryConfiguration,
				Description: "domain registered",
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeDomain, ID: d.ID.String(), Name: d.Name},
		})
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}
