package http

import (
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/app/verification"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type verifyDomainHandler struct {
	logger       *logrus.Logger
	service      verification.Service
	auditService auditlogs.Service
}

func NewVerifyDomainHandler(
	logger *logrus.Logger,
	service verification.Service,
	auditService auditlogs.Service,
) Handler {
	return &verifyDomainHandler{
		logger:       logger,
		service:      service,
		auditService: auditService,
	}
}

// Handle @Summary Verify domain ownership
// @Description Checks the DNS TXT record, then the well-known file, for the domain's token
// @Tags Domains
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param domain_id path string true "Domain ID"
// @Success 200 {object} verification.Outcome
// @Failure 404 {object} map[string]interface{} "Domain not found"
// @Router /api/domains/{domain_id}/verify [post]
func (h *verifyDomainHandler) Handle(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}
	domainID, err := pathUUID(c, "domain_id")
	if err != nil {
		return fail(c, err)
	}

	outcome, err := h.service.VerifyDomain(c.Context(), domainID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEntityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Domain not found"})
		}
		h.logger.WithError(err).WithField("domain_id", domainID).Error("failed to verify domain")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}

	if outcome.Verified && outcome.Method != "" && h.auditService != nil {
		h.auditService.Emit(c, auditlogs.Event{
			Event: auditlogs.EventInfo{
				Type:        auditlogs.EventTypeDomainVerified,
				Category:    auditlogs.CategoryConfiguration,
				Description: "domain verified via " + outcome.Method,
			},
			Target: auditlogs.Target{Type: auditlogs.TargetTypeDomain, ID: domainID.String()},
		})
	}
	return c.JSON(outcome)
}
