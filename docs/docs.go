// Package docs holds the OpenAPI description served at /swagger/.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service banner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RootResponse"}}
                }
            }
        },
        "/generate": {
            "post": {
                "description": "Spends one credit to generate a personalized email with the LLM",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Email"],
                "summary": "Generate a cold outreach email",
                "parameters": [
                    {"description": "Generation input", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GenerateResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "403": {"description": "Not enough credits", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Generation failed", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/send-email": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Email"],
                "summary": "Send an email through the user's Gmail account",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SendEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SendEmailResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "403": {"description": "No linked Gmail account", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Token refresh or send failed", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}}
            }
        },
        "/readyz": {
            "get": {
                "description": "Checks that the account store is reachable",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "503": {"description": "Service unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.RootResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "dto.GenerateRequest": {
            "type": "object",
            "required": ["company", "job_title", "user_id"],
            "properties": {
                "company": {"type": "string", "maxLength": 200},
                "job_title": {"type": "string", "maxLength": 200},
                "prompt": {"type": "string", "maxLength": 4000},
                "user_id": {"type": "string", "maxLength": 64}
            }
        },
        "dto.GenerateResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "remaining_credits": {"type": "integer"}
            }
        },
        "dto.SendEmailRequest": {
            "type": "object",
            "required": ["to", "user_id"],
            "properties": {
                "body": {"type": "string"},
                "subject": {"type": "string", "maxLength": 998},
                "to": {"type": "string", "maxLength": 320},
                "user_id": {"type": "string", "maxLength": 64}
            }
        },
        "dto.SendEmailResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "sent"}}
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean"}
            }
        },
        "utils.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/utils.ErrorDetail"},
                "success": {"type": "boolean"}
            }
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "KnockKnock API",
	Description:      "Cold outreach email generation with monthly credits, and Gmail dispatch.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
