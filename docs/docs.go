// Package docs registers the OpenAPI document served on /swagger/.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler
// annotations.
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/user/create/": {
            "post": {
                "tags": ["user"],
                "summary": "Register a new user",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/user/token/": {
            "post": {
                "tags": ["user"],
                "summary": "Obtain a bearer token",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/user/me/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Get the caller's profile",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["user"],
                "summary": "Update the caller's profile",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/recipes/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["recipes"],
                "summary": "List the caller's recipes",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["recipes"],
                "summary": "Create a recipe",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/recipes/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["recipes"],
                "summary": "Get a recipe",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["recipes"],
                "summary": "Update a recipe",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["recipes"],
                "summary": "Delete a recipe",
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/tags/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "List the caller's tags",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/tags/{id}/": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Rename a tag",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Delete a tag",
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        },
        "/ingredients/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "List the caller's ingredients",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/ingredients/{id}/": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Rename an ingredient",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Delete an ingredient",
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Recipebox API",
	Description:      "Multi-user recipe management: token auth plus CRUD over recipes, tags and ingredients, scoped per user.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
