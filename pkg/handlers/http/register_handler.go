package http

import (
	"errors"

	appAuth "github.com/NeuralTrust/BotTracker/pkg/app/auth"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/password"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type registerHandler struct {
	logger       *logrus.Logger
	authService  appAuth.Service
	auditService auditlogs.Service
}

func NewRegisterHandler(logger *logrus.Logger, authService appAuth.Service, auditService auditlogs.Service) Handler {
	return &registerHandler{
		logger:       logger,
		authService:  authService,
		auditService: auditService,
	}
}

// Handle @Summary Register a new account
// @Description Creates a tenant account and returns an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body request.RegisterRequest true "Registration data"
// @Success 201 {object} auth.Session "Account created"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 403 {object} map[string]interface{} "Sign ups disabled"
// @Router /api/auth/register [post]
func (h *registerHandler) Handle(c *fiber.Ctx) error {
	var req request.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.authService.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, appAuth.ErrSignUpsDisabled):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, user.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, password.ErrTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to register user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
	}

	h.emitAuditLog(c, session.User)
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *registerHandler) emitAuditLog(c *fiber.Ctx, u *user.User) {
	if h.auditService == nil {
		return
	}
	h.auditService.Emit(c, auditlogs.Event{
		Event: auditlogs.EventInfo{
			Type:        auditlogs.EventTypeUserRegistered,
			Category:    auditlogs.CategoryAccount,
			Description: "account registered",
		},
		Target: auditlogs.Target{
			Type: auditlogs.TargetTypeUser,
			ID:   u.ID.String(),
			Name: u.Email,
		},
	})
}
