// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// The paths below are kept in step with the @Router annotations on the
// handlers. Running
//
//	swag init -g cmd/server/main.go -o docs
//
// replaces this file with a fully generated one including request and
// response schemas.
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
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "summary": "Create a category", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/categories/tree": {
            "get": {"tags": ["categories"], "summary": "Get the category tree", "responses": {"200": {"description": "OK"}}}
        },
        "/categories/roots": {
            "get": {"tags": ["categories"], "summary": "List root categories", "responses": {"200": {"description": "OK"}}}
        },
        "/categories/slug/{slug}": {
            "get": {"tags": ["categories"], "summary": "Get a category by slug", "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "Get a category", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["categories"], "summary": "Update a category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["categories"], "summary": "Delete a category", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/categories/{id}/children": {
            "get": {"tags": ["categories"], "summary": "List direct children", "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}/subtree": {
            "get": {"tags": ["categories"], "summary": "Stream a category and its descendants", "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}/move": {
            "post": {"tags": ["categories"], "summary": "Move a category under a new parent", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}/activate": {
            "post": {"tags": ["categories"], "summary": "Activate a category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/categories/{id}/deactivate": {
            "post": {"tags": ["categories"], "summary": "Deactivate a category", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/products": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["products"], "summary": "Create a product", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["products"], "summary": "Update a product", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["products"], "summary": "Delete a product", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/banners/public": {
            "get": {"tags": ["banners"], "summary": "List live banners", "responses": {"200": {"description": "OK"}}}
        },
        "/banners": {
            "get": {"tags": ["banners"], "summary": "List banners", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["banners"], "summary": "Create a banner", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/banners/stats": {
            "get": {"tags": ["banners"], "summary": "Banner counts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/banners/reorder": {
            "put": {"tags": ["banners"], "summary": "Reorder banners", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/banners/{id}": {
            "get": {"tags": ["banners"], "summary": "Get a banner", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["banners"], "summary": "Update a banner", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["banners"], "summary": "Delete a banner", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/import/preview": {
            "post": {"tags": ["import"], "summary": "Preview a CSV or XLSX import", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/import/categories": {
            "post": {"tags": ["import"], "summary": "Import categories from CSV or XLSX", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/import/products": {
            "post": {"tags": ["import"], "summary": "Import products from CSV or XLSX", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/uploads/images": {
            "post": {"tags": ["uploads"], "summary": "Upload an image", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/uploads/images/{public_id}": {
            "delete": {"tags": ["uploads"], "summary": "Delete an uploaded image", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/system/info": {
            "get": {"tags": ["system"], "summary": "System information", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Catalog API",
	Description:      "Category tree, products and banners for the storefront and its admin.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
