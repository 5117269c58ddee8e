// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate the full document from the handler annotations with
//
//	swag init -g cmd/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Service health", "responses": {"200": {"description": "OK"}}}},
        "/livez": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/readyz": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Storage unavailable"}}}},
        "/api": {"get": {"tags": ["meta"], "summary": "API index", "responses": {"200": {"description": "OK"}}}},
        "/api/seniors/support-requests": {
            "get": {"tags": ["seniors"], "summary": "List support requests", "parameters": [
                {"type": "string", "name": "status", "in": "query"},
                {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                {"type": "integer", "default": 0, "name": "offset", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["seniors"], "summary": "Submit a support request", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}, "409": {"description": "Email already registered"}}}
        },
        "/api/seniors/support-requests/{id}": {"get": {"tags": ["seniors"], "summary": "Get a support request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/api/seniors/support-requests/{id}/status": {
            "put": {"tags": ["seniors"], "summary": "Update a support request status", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid status"}}},
            "patch": {"tags": ["seniors"], "summary": "Update a support request status", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid status"}}}
        },
        "/api/seniors/support-requests/{id}/tasks": {
            "get": {"tags": ["tasks"], "summary": "List tasks of a support request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tasks"], "summary": "Create a task", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/volunteers": {
            "get": {"tags": ["volunteers"], "summary": "List volunteers", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["volunteers"], "summary": "Apply as a volunteer", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}
        },
        "/api/volunteers/{id}": {"get": {"tags": ["volunteers"], "summary": "Get a volunteer", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/volunteers/ping": {"get": {"tags": ["volunteers"], "summary": "Volunteers ping", "responses": {"200": {"description": "OK"}}}},
        "/api/partners": {"post": {"tags": ["partners"], "summary": "Apply as a partner organization", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}},
        "/api/partners/ping": {"get": {"tags": ["partners"], "summary": "Partners ping", "responses": {"200": {"description": "OK"}}}},
        "/api/assignments": {"post": {"tags": ["assignments"], "summary": "Assign a volunteer", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Already assigned"}}}},
        "/api/tasks/{id}/complete": {"patch": {"tags": ["tasks"], "summary": "Complete a task", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/blog/posts": {
            "get": {"tags": ["blog"], "summary": "List blog posts", "parameters": [
                {"type": "string", "default": "published", "name": "status", "in": "query"},
                {"type": "string", "name": "category", "in": "query"},
                {"type": "string", "name": "tag", "in": "query"},
                {"type": "string", "name": "search", "in": "query"},
                {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                {"type": "integer", "default": 0, "name": "offset", "in": "query"},
                {"type": "string", "default": "-publishedAt", "name": "sort", "in": "query"}
            ], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid query"}}},
            "post": {"tags": ["blog-admin"], "summary": "Create a blog post", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/blog/posts/{slug}": {"get": {"tags": ["blog"], "summary": "Get a blog post", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/api/blog/posts/{slug}/related": {"get": {"tags": ["blog"], "summary": "Related blog posts", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}, {"type": "integer", "default": 3, "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/blog/posts/{id}": {
            "patch": {"tags": ["blog-admin"], "summary": "Update a blog post", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["blog-admin"], "summary": "Delete a blog post", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/blog/categories": {
            "get": {"tags": ["blog"], "summary": "Blog categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["blog-admin"], "summary": "Create a blog category", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Name already exists"}}}
        },
        "/api/blog/tags": {"get": {"tags": ["blog"], "summary": "Blog tags", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "ENW Backend API",
	Description:      "Elderly Neighbour Watch API: senior support intake, volunteers, partners and blog",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
