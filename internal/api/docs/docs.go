// Package docs registers the OpenAPI description served under /swagger.
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
    "paths": {
        "/api/users": {
            "post": {
                "tags": ["users"],
                "summary": "Create a user or return the existing one",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/router.createUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}}}
            }
        },
        "/api/chats": {
            "get": {
                "tags": ["chats"],
                "summary": "List the caller's chats, most recently updated first",
                "parameters": [
                    {"in": "header", "name": "X-User-ID", "type": "string", "required": true},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "size", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "tags": ["chats"],
                "summary": "Create an empty chat",
                "parameters": [{"in": "header", "name": "X-User-ID", "type": "string", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Chat"}}}
            }
        },
        "/api/chats/{id}/messages": {
            "get": {
                "tags": ["chats"],
                "summary": "List chat messages oldest first",
                "parameters": [
                    {"in": "header", "name": "X-User-ID", "type": "string", "required": true},
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "tags": ["chats"],
                "summary": "Send a message and receive the grounded answer",
                "parameters": [
                    {"in": "header", "name": "X-User-ID", "type": "string", "required": true},
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/router.sendMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/prompt-templates": {
            "get": {
                "tags": ["templates"],
                "summary": "List persona prompt templates",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/eval/report": {
            "get": {
                "tags": ["eval"],
                "summary": "Latest evaluation report",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "router.createUserRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "full_name": {"type": "string"}}
        },
        "router.sendMessageRequest": {
            "type": "object",
            "properties": {"content": {"type": "string"}, "prompt_template_id": {"type": "string"}}
        },
        "domain.User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "full_name": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "domain.Chat": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "user_id": {"type": "string"}, "title": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Support RAG API",
	Description:      "Customer-support chat answering strictly from ingested PDF documents",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
