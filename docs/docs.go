// Package docs holds the swagger document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Service health",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/signatures": {
            "get": {
                "tags": ["Ops"],
                "summary": "Known AI bot signatures",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/domains": {
            "post": {
                "tags": ["Domains"],
                "summary": "Add a domain",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "get": {
                "tags": ["Domains"],
                "summary": "List domains",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/domains/{domain_id}/verify": {
            "post": {
                "tags": ["Domains"],
                "summary": "Verify domain ownership",
                "parameters": [{"type": "string", "name": "domain_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/domains/{domain_id}": {
            "delete": {
                "tags": ["Domains"],
                "summary": "Delete a domain",
                "parameters": [{"type": "string", "name": "domain_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/api-keys": {
            "post": {
                "tags": ["API Keys"],
                "summary": "Create an API key",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "get": {
                "tags": ["API Keys"],
                "summary": "List API keys",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/api-keys/{key_id}": {
            "delete": {
                "tags": ["API Keys"],
                "summary": "Delete an API key",
                "parameters": [{"type": "string", "name": "key_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/traffic/log": {
            "post": {
                "tags": ["Traffic"],
                "summary": "Ingest a traffic event",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/traffic/logs": {
            "get": {
                "tags": ["Traffic"],
                "summary": "List traffic logs",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/traffic/stats": {
            "get": {
                "tags": ["Traffic"],
                "summary": "Traffic statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/traffic/export": {
            "get": {
                "tags": ["Traffic"],
                "summary": "Export traffic logs",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/alerts": {
            "post": {
                "tags": ["Alerts"],
                "summary": "Create an alert rule",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "get": {
                "tags": ["Alerts"],
                "summary": "List alert rules",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/alerts/{alert_id}": {
            "delete": {
                "tags": ["Alerts"],
                "summary": "Delete an alert rule",
                "parameters": [{"type": "string", "name": "alert_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/policies": {
            "get": {
                "tags": ["Policies"],
                "summary": "List bot policies",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Policies"],
                "summary": "Upsert a bot policy",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/policies/{policy_id}": {
            "delete": {
                "tags": ["Policies"],
                "summary": "Delete a bot policy",
                "parameters": [{"type": "string", "name": "policy_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/policies": {
            "put": {
                "tags": ["Admin"],
                "summary": "Upsert a global bot policy",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/policies/{policy_id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a global bot policy",
                "parameters": [{"type": "string", "name": "policy_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/stats": {
            "get": {
                "tags": ["Admin"],
                "summary": "Platform statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/domains": {
            "get": {
                "tags": ["Admin"],
                "summary": "List all domains",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/user/{user_id}/activity": {
            "get": {
                "tags": ["Admin"],
                "summary": "User activity",
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/blogs": {
            "get": {
                "tags": ["Blog"],
                "summary": "List published posts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/blogs/{slug}": {
            "get": {
                "tags": ["Blog"],
                "summary": "Get a published post",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/blogs": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create a blog post",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/blogs/{post_id}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Update a blog post",
                "parameters": [{"type": "string", "name": "post_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a blog post",
                "parameters": [{"type": "string", "name": "post_id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BotTracker API",
	Description:      "AI bot traffic detection for multi-tenant sites.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
