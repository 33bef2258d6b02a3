package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	RecoverMiddleware   Middleware
	SecurityMiddleware  Middleware
	AuthMiddleware      Middleware
	AdminMiddleware     Middleware
	WebsocketMiddleware Middleware
}

// GetMiddlewares returns the ones applied to every API route.
func (t *Transport) GetMiddlewares() []fiber.Handler {
	var handlers []fiber.Handler
	for _, m := range []Middleware{t.RecoverMiddleware, t.SecurityMiddleware} {
		if m != nil {
			handlers = append(handlers, m.Middleware())
		}
	}
	return handlers
}
