package router

import (
	"time"

	"github.com/NeuralTrust/BotTracker/docs"
	"github.com/NeuralTrust/BotTracker/pkg/config"
	handlers "github.com/NeuralTrust/BotTracker/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/BotTracker/pkg/handlers/websocket"
	"github.com/NeuralTrust/BotTracker/pkg/middleware"
	"github.com/NeuralTrust/BotTracker/pkg/version"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	HealthPath      = "/health"
	APIPrefix       = "/api"
	LiveTrafficPath = "/ws/traffic"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
	wsHandlerTransport  wsHandlers.HandlerTransport
	config              *config.Config
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
	wsHandlerTransport wsHandlers.HandlerTransport,
	cfg *config.Config,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		wsHandlerTransport:  wsHandlerTransport,
		config:              cfg,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	docs.SwaggerInfo.Version = version.Version
	h := r.handlerTransport
	if h == nil || r.middlewareTransport == nil {
		return ErrInvalidHandlerTransport
	}
	var wsTransport *wsHandlers.HandlerTransportDTO
	if r.wsHandlerTransport != nil {
		dto, ok := r.wsHandlerTransport.GetTransport().(*wsHandlers.HandlerTransportDTO)
		if !ok {
			return ErrInvalidHandlerTransport
		}
		wsTransport = dto
	}

	swaggerURL := "doc.json"
	if r.config != nil && r.config.Server.SwaggerURL != "" {
		swaggerURL = r.config.Server.SwaggerURL
	}
	router.Get("/docs/*", swagger.New(swagger.Config{URL: swaggerURL}))

	router.Get(HealthPath, h.HealthHandler.Handle)

	api := router.Group(APIPrefix, r.middlewareTransport.GetMiddlewares()...)
	api.Get(HealthPath, h.HealthHandler.Handle)

	auth := r.middlewareTransport.AuthMiddleware.Middleware()
	admin := r.middlewareTransport.AdminMiddleware.Middleware()

	// Public
	api.Post("/auth/register", h.RegisterHandler.Handle)
	api.Post("/auth/login", h.LoginHandler.Handle)
	api.Post("/traffic/log", h.LogTrafficHandler.Handle)
	api.Get("/signatures", h.SignaturesHandler.Handle)
	api.Get("/blogs", h.ListBlogsHandler.Handle)
	api.Get("/blogs/:slug", h.GetBlogHandler.Handle)

	// Tenant
	api.Get("/auth/me", auth, h.MeHandler.Handle)

	domains := api.Group("/domains", auth)
	domains.Post("", h.CreateDomainHandler.Handle)
	domains.Get("", h.ListDomainsHandler.Handle)
	domains.Post("/:domain_id/verify", h.VerifyDomainHandler.Handle)
	domains.Delete("/:domain_id", h.DeleteDomainHandler.Handle)

	keys := api.Group("/api-keys", auth)
	keys.Post("", h.CreateAPIKeyHandler.Handle)
	keys.Get("", h.ListAPIKeysHandler.Handle)
	keys.Delete("/:key_id", h.DeleteAPIKeyHandler.Handle)

	traffic := api.Group("/traffic", auth)
	traffic.Get("/logs", h.ListTrafficHandler.Handle)
	traffic.Get("/stats", h.TrafficStatsHandler.Handle)
	traffic.Get("/export", h.ExportTrafficHandler.Handle)

	alerts := api.Group("/alerts", auth)
	alerts.Post("", h.CreateAlertHandler.Handle)
	alerts.Get("", h.ListAlertsHandler.Handle)
	alerts.Delete("/:alert_id", h.DeleteAlertHandler.Handle)

	policies := api.Group("/policies", auth)
	policies.Get("", h.ListPoliciesHandler.Handle)
	policies.Put("", h.UpsertPolicyHandler.Handle)
	policies.Delete("/:policy_id", h.DeletePolicyHandler.Handle)

	// Admin
	adm := api.Group("/admin", auth, admin)
	adm.Get("/users", h.AdminListUsersHandler.Handle)
	adm.Get("/stats", h.AdminStatsHandler.Handle)
	adm.Get("/domains", h.AdminListDomainsHandler.Handle)
	adm.Get("/user/:user_id/activity", h.AdminUserActivityHandler.Handle)
	adm.Put("/policies", h.UpsertGlobalPolicyHandler.Handle)
	adm.Delete("/policies/:policy_id", h.DeleteGlobalPolicyHandler.Handle)
	adm.Post("/blogs", h.CreateBlogHandler.Handle)
	adm.Put("/blogs/:post_id", h.UpdateBlogHandler.Handle)
	adm.Delete("/blogs/:post_id", h.DeleteBlogHandler.Handle)

	if wsTransport != nil && wsTransport.LiveTrafficHandler != nil {
		wsChain := []fiber.Handler{auth}
		if r.middlewareTransport.WebsocketMiddleware != nil {
			wsChain = append(wsChain, r.middlewareTransport.WebsocketMiddleware.Middleware())
		}
		wsChain = append(wsChain, websocket.New(wsTransport.LiveTrafficHandler.Handle, websocket.Config{
			HandshakeTimeout: 15 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		}))
		api.Get(LiveTrafficPath, wsChain...)
	}

	return nil
}
