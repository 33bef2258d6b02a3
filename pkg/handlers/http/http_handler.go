package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Ops
	HealthHandler     Handler
	SignaturesHandler Handler

	// Auth
	RegisterHandler Handler
	LoginHandler    Handler
	MeHandler       Handler

	// Domain
	CreateDomainHandler Handler
	ListDomainsHandler  Handler
	VerifyDomainHandler Handler
	DeleteDomainHandler Handler

	// APIKey
	CreateAPIKeyHandler Handler
	ListAPIKeysHandler  Handler
	DeleteAPIKeyHandler Handler

	// Traffic
	LogTrafficHandler    Handler
	ListTrafficHandler   Handler
	TrafficStatsHandler  Handler
	ExportTrafficHandler Handler

	// Alert
	CreateAlertHandler Handler
	ListAlertsHandler  Handler
	DeleteAlertHandler Handler

	// Bot policy
	ListPoliciesHandler       Handler
	UpsertPolicyHandler       Handler
	DeletePolicyHandler       Handler
	UpsertGlobalPolicyHandler Handler
	DeleteGlobalPolicyHandler Handler

	// Admin
	AdminListUsersHandler    Handler
	AdminStatsHandler        Handler
	AdminListDomainsHandler  Handler
	AdminUserActivityHandler Handler

	// Blog
	ListBlogsHandler  Handler
	GetBlogHandler    Handler
	CreateBlogHandler Handler
	UpdateBlogHandler Handler
	DeleteBlogHandler Handler
}
