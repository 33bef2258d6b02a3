package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminAuthMiddleware struct {
	logger *logrus.Logger
}

// NewAdminAuthMiddleware must run after the auth middleware.
func NewAdminAuthMiddleware(logger *logrus.Logger) Middleware {
	return &adminAuthMiddleware{logger: logger}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !IsAdmin(ctx) {
			userID, _ := CurrentUserID(ctx)
			m.logger.WithFields(logrus.Fields{
				"user_id": userID,
				"path":    ctx.Path(),
			}).Warn("non admin user rejected from admin route")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Super admin access required"})
		}
		return ctx.Next()
	}
}
