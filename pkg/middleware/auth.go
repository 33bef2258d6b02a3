package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	tokenQueryParam     = "token"
)

var ErrNoUser = errors.New("no authenticated user in context")

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewAuthMiddleware requires a valid bearer token. Websocket upgrades may pass
// the token as ?token= instead, since browsers cannot set headers on them.
func NewAuthMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenString, problem := m.token(ctx)
		if problem != "" {
			m.logger.WithField("reason", problem).Debug("missing credentials")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": problem})
		}

		claims, err := m.jwtManager.DecodeToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Token expired"
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}
		userID, err := claims.UserID()
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		ctx.Locals(string(common.UserIDContextKey), userID.String())
		ctx.Locals(string(common.UserEmailContextKey), claims.Email)
		ctx.Locals(string(common.IsAdminContextKey), claims.Admin)

		c := context.WithValue(ctx.UserContext(), common.UserIDContextKey, userID.String())
		c = context.WithValue(c, common.IsAdminContextKey, claims.Admin)
		ctx.SetUserContext(c)

		return ctx.Next()
	}
}

// token returns the raw token, or a client-facing reason when there is none.
func (m *authMiddleware) token(ctx *fiber.Ctx) (string, string) {
	authHeader := ctx.Get(authorizationHeader)
	if authHeader == "" {
		if websocket.IsWebSocketUpgrade(ctx) {
			if t := ctx.Query(tokenQueryParam); t != "" {
				return t, ""
			}
		}
		return "", "Authorization required"
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", "Invalid authorization format"
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return "", "Empty token provided"
	}
	return tokenString, ""
}

// CurrentUserID returns the user set by the auth middleware.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(string(common.UserIDContextKey)).(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUser
	}
	return uuid.Parse(raw)
}

func IsAdmin(c *fiber.Ctx) bool {
	admin, _ := c.Locals(string(common.IsAdminContextKey)).(bool)
	return admin
}
