// Package docs registers the swagger document served under /swagger.
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
        "/health": {"get": {"tags": ["HEALTH"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/messages/push": {"post": {"tags": ["MESSAGE"], "summary": "Push messages", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/messages/reply": {"post": {"tags": ["MESSAGE"], "summary": "Reply messages", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/messages/multicast": {"post": {"tags": ["MESSAGE"], "summary": "Multicast messages", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/messages/broadcast": {"post": {"tags": ["MESSAGE"], "summary": "Broadcast messages", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/messages/narrowcast": {"post": {"tags": ["NARROWCAST"], "summary": "Narrowcast messages", "responses": {"202": {"description": "Accepted"}}}},
        "/v1/api/narrowcasts": {"get": {"tags": ["NARROWCAST"], "summary": "List tracked narrowcasts", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/narrowcasts/{id}": {"get": {"tags": ["NARROWCAST"], "summary": "Refresh narrowcast progress", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/audience-groups": {"get": {"tags": ["AUDIENCE"], "summary": "List audience groups", "responses": {"200": {"description": "OK"}}}},
        "/v1/api/audience-groups/{id}": {
            "get": {"tags": ["AUDIENCE"], "summary": "Get audience group", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["AUDIENCE"], "summary": "Delete audience group", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/api/audience-groups/authority-level": {
            "get": {"tags": ["AUDIENCE"], "summary": "Get authority level", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["AUDIENCE"], "summary": "Change authority level", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/api/richmenus": {"get": {"tags": ["RICHMENU"], "summary": "List rich menus", "responses": {"200": {"description": "OK"}}}},
        "/webhook/line": {"post": {"tags": ["WEBHOOK"], "summary": "LINE webhook", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9089",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "LINE Messaging Gateway APIs",
	Description:      "Push, narrowcast, audience and rich menu operations over the LINE Messaging API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
