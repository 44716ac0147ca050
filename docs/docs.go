// Package docs holds the swagger document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/api/v1/conversations/{conversation_id}/messages": {
            "post": {
                "tags": ["Chat"],
                "summary": "Send a message and get a moderated reply",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "conversation_id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/chat.Response"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/crisis-resources": {
            "get": {
                "tags": ["Chat"],
                "summary": "List crisis resources for a locale",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "language", "in": "query"},
                    {"type": "string", "name": "region", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/crisis.Resource"}}}
                }
            }
        },
        "/api/v1/users/me/preferences": {
            "put": {
                "tags": ["Users"],
                "summary": "Update provider and locale preferences",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.UpdatePreferencesRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/admin/toggles/{name}": {
            "put": {
                "tags": ["Admin"],
                "summary": "Enable or disable a feature toggle",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.UpdateToggleRequest"}}
                ],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/admin/crisis-resources": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create a crisis resource",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.CreateResourceRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/crisis.Resource"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/admin/crisis-flags": {
            "get": {
                "tags": ["Admin"],
                "summary": "List recent crisis flags",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/crisis.Flag"}}}}
            }
        },
        "/api/v1/admin/notifications": {
            "get": {
                "tags": ["Admin"],
                "summary": "List the caller's operator notifications",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/notification.Notification"}}}}
            }
        },
        "/version": {
            "get": {
                "tags": ["Version"],
                "summary": "Build information",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "request.SendMessageRequest": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "request.UpdatePreferencesRequest": {
            "type": "object",
            "properties": {
                "preferred_provider": {"type": "string"},
                "language": {"type": "string"},
                "region": {"type": "string"}
            }
        },
        "request.UpdateToggleRequest": {
            "type": "object",
            "properties": {"enabled": {"type": "boolean"}}
        },
        "request.CreateResourceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "phone": {"type": "string"},
                "text_line": {"type": "string"},
                "url": {"type": "string"},
                "language": {"type": "string"},
                "region": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "priority": {"type": "integer"}
            }
        },
        "chat.Response": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "provider": {"type": "string"},
                "model": {"type": "string"},
                "risk_level": {"type": "string", "enum": ["NONE", "LOW", "MEDIUM", "HIGH", "CRITICAL"]},
                "crisis_flagged": {"type": "boolean"},
                "crisis_resources": {"type": "array", "items": {"$ref": "#/definitions/crisis.Resource"}},
                "moderation_action": {"type": "string"},
                "moderation_warning": {"type": "string"}
            }
        },
        "crisis.Resource": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "phone": {"type": "string"},
                "text_line": {"type": "string"},
                "url": {"type": "string"},
                "language": {"type": "string"},
                "region": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}}
            }
        },
        "crisis.Flag": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "conversation_id": {"type": "string"},
                "user_id": {"type": "string"},
                "keyword": {"type": "string"},
                "risk_score": {"type": "number"},
                "created_at": {"type": "string"}
            }
        },
        "notification.Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "kind": {"type": "string"},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "read": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "0.4.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SafeChat API",
	Description:      "Mental-health support chat with risk classification and response guardrails.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
