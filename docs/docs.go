// Package docs регистрирует описание API для /swagger/*
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
        "/api/v1/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List vendor products",
                "parameters": [
                    {"type": "string", "description": "Catalog user token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "integer", "description": "Page number, starts at 1", "name": "page_number", "in": "query"},
                    {"type": "boolean", "description": "Publication filter, defaults to true", "name": "isPublished", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.listResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create product",
                "parameters": [
                    {"type": "string", "description": "Catalog user token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Catalog mutation and variables with input.selling_price", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.createResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete product",
                "parameters": [
                    {"type": "string", "description": "Catalog user token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Product id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/products/edit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Edit product",
                "parameters": [
                    {"description": "Catalog mutation and variables", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.EditProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/v1/products/unpublish": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Unpublish product",
                "parameters": [
                    {"type": "string", "description": "Catalog user token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Product id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.createResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "string"},
                "product_id": {"type": "string"},
                "product": {"type": "object"}
            }
        },
        "handlers.errorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "string"},
                "completed_steps": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.listResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "string"},
                "page_number": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "data": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handlers.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "string"}
            }
        },
        "models.CreateProductRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "variables": {"type": "object", "additionalProperties": true}
            }
        },
        "models.EditProductRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "variables": {"type": "object"}
            }
        },
        "models.ProductRequest": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo метаданные описания API
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vendor Product Service API",
	Description:      "Lifecycle of vendor products in the external catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
