// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Signed in", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/auth/check-admin": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Check first-run state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/auth/initial-admin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create the first admin",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.InitialAdminRequest"}}],
                "responses": {
                    "201": {"description": "Admin created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "409": {"description": "Admin already exists", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/parsers/metadata": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parsers"],
                "summary": "List import formats",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/otps": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["otps"],
                "summary": "User dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/otps/{id}/use": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["otps"],
                "summary": "Hand out a code",
                "parameters": [{"type": "string", "description": "OTP ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "409": {"description": "Already used", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/admin/otp/file": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Import codes from a vendor export",
                "parameters": [
                    {"type": "file", "description": "Export file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "plain_text or tplink_omada", "name": "vendorType", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Codes imported", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Missing file, unsupported vendor or no codes found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "File could not be decoded", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "504": {"description": "Parsing timed out", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/admin/backup": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["admin"],
                "summary": "Download a backup",
                "parameters": [{"type": "string", "description": "csv (default) or xlsx", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "Backup file", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handler.APIError"}, "success": {"type": "boolean", "example": false}}
        },
        "handler.InitialAdminRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string", "example": "changeme123"}, "username": {"type": "string", "example": "admin"}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string", "example": "securepassword123"}, "username": {"type": "string", "example": "frontdesk"}}
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {"limit": {"type": "integer"}, "offset": {"type": "integer"}, "total": {"type": "integer"}}
        },
        "handler.Response": {
            "type": "object",
            "properties": {"data": {}, "meta": {"$ref": "#/definitions/handler.PagMeta"}, "success": {"type": "boolean", "example": true}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "OTP Share API",
	Description:      "Shared pool of guest Wi-Fi voucher codes: import vendor exports, hand codes out, audit usage.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
