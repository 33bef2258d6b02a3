package http

import (
	"errors"

	appAuth "github.com/NeuralTrust/BotTracker/pkg/app/auth"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type loginHandler struct {
	logger      *logrus.Logger
	authService appAuth.Service
}

func NewLoginHandler(logger *logrus.Logger, authService appAuth.Service) Handler {
	return &loginHandler{
		logger:      logger,
		authService: authService,
	}
}

// Handle @Summary Log in
// @Description Exchanges email and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body request.LoginRequest true "Credentials"
// @Success 200 {object} auth.Session "Access token"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/auth/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req request.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.authService.Login(c.Context(), user.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		h.logger.WithError(err).Error("failed to log in")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternal})
	}
	return c.JSON(session)
}
