package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SecurityConfig struct {
	FrameDeny          bool
	ContentTypeNosniff bool
	ReferrerPolicy     string
	// STSSeconds sets Strict-Transport-Security on https requests when > 0.
	STSSeconds int
}

func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "no-referrer",
	}
}

type securityMiddleware struct {
	cfg SecurityConfig
}

func NewSecurityMiddleware(cfg SecurityConfig) Middleware {
	return &securityMiddleware{cfg: cfg}
}

func (m *securityMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.cfg.FrameDeny {
			c.Set("X-Frame-Options", "DENY")
		}
		if m.cfg.ContentTypeNosniff {
			c.Set("X-Content-Type-Options", "nosniff")
		}
		if m.cfg.ReferrerPolicy != "" {
			c.Set("Referrer-Policy", m.cfg.ReferrerPolicy)
		}
		if m.cfg.STSSeconds > 0 && c.Protocol() == "https" {
			c.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(m.cfg.STSSeconds))
		}
		return c.Next()
	}
}
