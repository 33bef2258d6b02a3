package middleware

import (
	"github.com/NeuralTrust/BotTracker/pkg/common"
	infra "github.com/NeuralTrust/BotTracker/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type websocketMiddleware struct {
	logger    *logrus.Logger
	semaphore *infra.Semaphore
}

// NewWebsocketMiddleware rejects non-upgrade requests and caps concurrent
// connections. The handler releases the slot stored in locals.
func NewWebsocketMiddleware(logger *logrus.Logger, semaphore *infra.Semaphore) Middleware {
	return &websocketMiddleware{
		logger:    logger,
		semaphore: semaphore,
	}
}

func (m *websocketMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !m.semaphore.Acquire() {
			m.logger.WithField("max", m.semaphore.Capacity()).
				Warn("maximum websocket connections reached, rejecting connection")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many live connections"})
		}
		c.Locals(string(common.WsSemaphoreContextKey), m.semaphore)
		return c.Next()
	}
}
