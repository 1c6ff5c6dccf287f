// Package docs registers the OpenAPI document served at /api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "tags": [
    {"name": "Analysis"},
    {"name": "Knowledge"},
    {"name": "Status"},
    {"name": "Meta"}
  ],
  "paths": {
    "/analyze": {
      "post": {
        "tags": ["Analysis"],
        "summary": "Fact-check a claim given as text, an article URL, or a base64 image",
        "operationId": "analyze",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AnalyzeRequest"}}}
        },
        "responses": {
          "200": {
            "description": "verdict",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AnalyzeResponse"}}}
          }
        }
      }
    },
    "/query": {
      "post": {
        "tags": ["Knowledge"],
        "summary": "Look up the passages closest to a question",
        "operationId": "query",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryInput"}}}
        },
        "responses": {
          "200": {
            "description": "matches",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueryResult"}}}
          },
          "503": {
            "description": "embeddings not configured",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}
          }
        }
      }
    },
    "/": {
      "get": {
        "tags": ["Status"],
        "summary": "Liveness and model availability",
        "operationId": "status",
        "responses": {
          "200": {
            "description": "active",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StatusResponse"}}}
          }
        }
      }
    },
    "/meta/health": {
      "get": {"tags": ["Meta"], "summary": "Health check", "operationId": "metaHealth", "responses": {"200": {"description": "ok"}}}
    },
    "/meta/ready": {
      "get": {"tags": ["Meta"], "summary": "Which backends are configured", "operationId": "metaReady", "responses": {"200": {"description": "ok"}}}
    },
    "/meta/version": {
      "get": {"tags": ["Meta"], "summary": "Build and version info", "operationId": "metaVersion", "responses": {"200": {"description": "ok"}}}
    },
    "/meta/service": {
      "get": {"tags": ["Meta"], "summary": "Service info and uptime", "operationId": "metaService", "responses": {"200": {"description": "ok"}}}
    }
  },
  "components": {
    "schemas": {
      "AnalyzeRequest": {
        "type": "object",
        "required": ["content"],
        "properties": {
          "type": {"type": "string", "enum": ["text", "url", "image"], "default": "text"},
          "content": {"type": "string", "example": "The earth is flat"},
          "preprocessing": {"type": "string", "enum": ["none", "clean"], "default": "none"}
        }
      },
      "AnalyzeResponse": {
        "type": "object",
        "properties": {
          "verdict": {"type": "string", "enum": ["Real", "Fake", "Unknown"]},
          "confidence_score": {"type": "number", "example": 95},
          "explanation": {"type": "string"},
          "sources": {"type": "array", "items": {"type": "string"}}
        }
      },
      "QueryInput": {
        "type": "object",
        "required": ["question"],
        "properties": {
          "question": {"type": "string", "example": "What is Factify?"},
          "k": {"type": "integer", "minimum": 1, "maximum": 20, "example": 2}
        }
      },
      "QueryResult": {
        "type": "object",
        "properties": {
          "question": {"type": "string"},
          "matches": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {"text": {"type": "string"}, "score": {"type": "number"}}
            }
          }
        }
      },
      "StatusResponse": {
        "type": "object",
        "properties": {
          "status": {"type": "string", "example": "active"},
          "service": {"type": "string", "example": "Factify Advanced RAG Service"},
          "llm_status": {"type": "string", "enum": ["ready", "missing_key"]}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Factify API",
	Description:      "Fact-checking pipeline: claim extraction, web evidence, model verdict.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
