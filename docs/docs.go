// Package docs registers the OpenAPI description served at /swagger.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.AuthResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AuthResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/verify": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/reviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Post a review",
                "parameters": [
                    {"description": "Review", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Review"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/reviews/movie/{movieId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List reviews of a movie",
                "parameters": [{"type": "integer", "description": "Movie ID", "name": "movieId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.ReviewView"}}}
                }
            }
        },
        "/reviews/{reviewId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Edit own review",
                "parameters": [
                    {"type": "integer", "description": "Review ID", "name": "reviewId", "in": "path", "required": true},
                    {"description": "Review", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Review"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Delete a review",
                "parameters": [{"type": "integer", "description": "Review ID", "name": "reviewId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}}
                }
            }
        },
        "/admin/ban-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Ban a user",
                "parameters": [
                    {"description": "Ban", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.BanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.BanResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/unban-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Unban a user",
                "parameters": [
                    {"description": "Target", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TargetUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/banned-users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List banned users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.BannedView"}}}
                }
            }
        },
        "/admin/reviews": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List every review",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.ReviewView"}}}
                }
            }
        },
        "/admin/reviews/{reviewId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete any review",
                "parameters": [{"type": "integer", "description": "Review ID", "name": "reviewId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Dashboard counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Stats"}}
                }
            }
        },
        "/admin/promote-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Promote a regular user to moderator",
                "parameters": [
                    {"description": "Target", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TargetUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RoleChangeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/demote-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Demote a moderator to regular user",
                "parameters": [
                    {"description": "Target", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TargetUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RoleChangeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/user-activity/{userId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "A user's activity feed",
                "parameters": [{"type": "integer", "description": "User ID", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.UserActivity"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/admin/movies/{movieId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Edit a movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "movieId", "in": "path", "required": true},
                    {"description": "Movie", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.MovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Movie"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a movie",
                "parameters": [{"type": "integer", "description": "Movie ID", "name": "movieId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "username": {"type": "string", "maxLength": 100}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.CreateReviewRequest": {
            "type": "object",
            "required": ["movie_id", "rating"],
            "properties": {
                "movie_id": {"type": "integer"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 10},
                "review_text": {"type": "string"}
            }
        },
        "handler.UpdateReviewRequest": {
            "type": "object",
            "required": ["rating"],
            "properties": {
                "rating": {"type": "integer", "minimum": 1, "maximum": 10},
                "review_text": {"type": "string"}
            }
        },
        "handler.BanRequest": {
            "type": "object",
            "properties": {
                "ban_reason": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "handler.TargetUserRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "integer"}}
        },
        "handler.RoleChangeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "handler.MovieRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "about": {"type": "string"},
                "box_office": {"type": "string", "example": "2500000.50"},
                "budget": {"type": "string", "example": "1000000.00"},
                "mpaa_rating": {"type": "string"},
                "plot": {"type": "string"},
                "poster_url": {"type": "string"},
                "release_date": {"type": "string", "example": "2010-07-16"},
                "runtime": {"type": "integer"},
                "title": {"type": "string"},
                "trailer_url": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "is_active": {"type": "boolean"},
                "join_date": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "model.BannedView": {
            "type": "object",
            "properties": {
                "ban_date": {"type": "string"},
                "ban_reason": {"type": "string"},
                "banned_id": {"type": "integer"},
                "banner_id": {"type": "integer"},
                "banner_username": {"type": "string"},
                "email": {"type": "string"},
                "join_date": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "model.Review": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "movie_id": {"type": "integer"},
                "rating": {"type": "integer"},
                "review_id": {"type": "integer"},
                "review_text": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "model.ReviewView": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "movie_id": {"type": "integer"},
                "movie_title": {"type": "string"},
                "rating": {"type": "integer"},
                "review_id": {"type": "integer"},
                "review_text": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "model.Movie": {
            "type": "object",
            "properties": {
                "about": {"type": "string"},
                "box_office": {"type": "string"},
                "budget": {"type": "string"},
                "movie_id": {"type": "integer"},
                "mpaa_rating": {"type": "string"},
                "plot": {"type": "string"},
                "poster_url": {"type": "string"},
                "release_date": {"type": "string"},
                "runtime": {"type": "integer"},
                "title": {"type": "string"},
                "trailer_url": {"type": "string"}
            }
        },
        "model.Stats": {
            "type": "object",
            "properties": {
                "active_users": {"type": "integer"},
                "awards": {"type": "integer"},
                "banned_users": {"type": "integer"},
                "movies": {"type": "integer"},
                "people": {"type": "integer"},
                "reviews": {"type": "integer"}
            }
        },
        "model.Activity": {
            "type": "object",
            "properties": {
                "activity_date": {"type": "string"},
                "activity_type": {"type": "string"},
                "details": {"type": "string"},
                "rating": {"type": "integer"},
                "target_id": {"type": "integer"},
                "target_name": {"type": "string"}
            }
        },
        "service.AuthResult": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "service.BannedUserSummary": {
            "type": "object",
            "properties": {
                "ban_reason": {"type": "string"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "service.BanResult": {
            "type": "object",
            "properties": {
                "banned_user": {"$ref": "#/definitions/service.BannedUserSummary"},
                "message": {"type": "string"}
            }
        },
        "service.UserActivity": {
            "type": "object",
            "properties": {
                "activities": {"type": "array", "items": {"$ref": "#/definitions/model.Activity"}},
                "user": {"$ref": "#/definitions/model.User"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "MovieDB API",
	Description:      "Movie database backend with reviews, session authentication and a moderation panel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
