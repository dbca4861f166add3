package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Readee dev gateway",
    "description": "Forwards /api calls to the document-library backend, or serves them from the in-memory API simulation layer when USE_MOCK is on",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {
        "tags": ["system"],
        "summary": "Health check",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}
        }
      }
    },
    "/_mock/reset": {
      "post": {
        "tags": ["system"],
        "summary": "Reset mock data",
        "produces": ["application/json"],
        "parameters": [
          {"name": "X-Admin-Key", "in": "header", "type": "string", "required": false}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResetResponse"}},
          "401": {"description": "Invalid admin key"},
          "409": {"description": "Mock API layer is not enabled"}
        }
      }
    },
    "/api/{path}": {
      "get": {
        "tags": ["api"],
        "summary": "Backend API",
        "description": "Any method under /api is forwarded. Mocked responses carry an X-Mock header naming the domain.",
        "produces": ["application/json"],
        "parameters": [
          {"name": "path", "in": "path", "type": "string", "required": true}
        ],
        "responses": {
          "200": {"description": "Backend or mock response"},
          "502": {"description": "Backend unavailable"},
          "504": {"description": "Backend did not answer in time"}
        }
      }
    }
  },
  "definitions": {
    "HealthResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "mock": {"type": "boolean"},
        "domains": {"type": "array", "items": {"type": "string"}}
      }
    },
    "ResetResponse": {
      "type": "object",
      "properties": {
        "status": {"type": "string"}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
