// Package docs registers the Swagger description served at /swagger/*.
// It is maintained by hand next to the controller annotations.
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
        "/students": {
            "get": {
                "tags": ["students"], "summary": "List students", "produces": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "tags": ["students"], "summary": "Create a student", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"name": "name", "in": "formData", "required": true, "type": "string"},
                    {"name": "email", "in": "formData", "required": true, "type": "string"},
                    {"name": "phone", "in": "formData", "required": true, "type": "string"},
                    {"name": "photo", "in": "formData", "type": "file"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/students/filters": {
            "get": {
                "tags": ["students"], "summary": "Filter students", "produces": ["application/json"],
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "studentCode", "in": "query", "type": "string"},
                    {"name": "phone", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/page"},
                    {"$ref": "#/parameters/limit"}
                ],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/students/{id}": {
            "parameters": [{"$ref": "#/parameters/studentId"}],
            "get": {"tags": ["students"], "summary": "Get a student", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {
                "tags": ["students"], "summary": "Update a student", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"name": "name", "in": "formData", "type": "string"},
                    {"name": "email", "in": "formData", "type": "string"},
                    {"name": "phone", "in": "formData", "type": "string"},
                    {"name": "photo", "in": "formData", "type": "file"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {"tags": ["students"], "summary": "Delete a student", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/students/{id}/attendance": {
            "parameters": [{"$ref": "#/parameters/studentId"}],
            "get": {
                "tags": ["attendance"], "summary": "List attendance records of a student", "produces": ["application/json"],
                "parameters": [
                    {"name": "month", "in": "query", "type": "integer"},
                    {"name": "week", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "description": "true for present, anything else for absent"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "tags": ["attendance"], "summary": "Add an attendance record", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AttendanceInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/students/{id}/attendance/stats": {
            "parameters": [{"$ref": "#/parameters/studentId"}],
            "get": {"tags": ["attendance"], "summary": "Attendance statistics of a student", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/students/{id}/attendance/{attendanceId}": {
            "parameters": [
                {"$ref": "#/parameters/studentId"},
                {"name": "attendanceId", "in": "path", "required": true, "type": "string"}
            ],
            "get": {"tags": ["attendance"], "summary": "Get one attendance record", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {
                "tags": ["attendance"], "summary": "Update an attendance record", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AttendanceInput"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {"tags": ["attendance"], "summary": "Delete an attendance record", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/students/{id}/ratings": {
            "parameters": [{"$ref": "#/parameters/studentId"}],
            "post": {
                "tags": ["ratings"], "summary": "Add a rating", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RatingInput"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/students/{id}/ratings/{ratingId}": {
            "parameters": [
                {"$ref": "#/parameters/studentId"},
                {"name": "ratingId", "in": "path", "required": true, "type": "string"}
            ],
            "put": {
                "tags": ["ratings"], "summary": "Update a rating", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RatingInput"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {"tags": ["ratings"], "summary": "Delete a rating", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/students/{id}/badges": {
            "parameters": [{"$ref": "#/parameters/studentId"}],
            "post": {
                "tags": ["students"], "summary": "Assign a badge to a student", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AssignBadgeRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/students/{id}/badges/{badgeId}": {
            "parameters": [
                {"$ref": "#/parameters/studentId"},
                {"name": "badgeId", "in": "path", "required": true, "type": "string"}
            ],
            "delete": {"tags": ["students"], "summary": "Remove a badge from a student", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/badges": {
            "get": {"tags": ["badges"], "summary": "List badges", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}},
            "post": {
                "tags": ["badges"], "summary": "Create a badge", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "image", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/badges/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Badge ID"}],
            "get": {"tags": ["badges"], "summary": "Get a badge", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {
                "tags": ["badges"], "summary": "Update a badge", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "image", "in": "formData", "type": "file"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {"tags": ["badges"], "summary": "Delete a badge", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    },
    "parameters": {
        "studentId": {"name": "id", "in": "path", "required": true, "type": "string", "description": "Student ID"},
        "page": {"name": "page", "in": "query", "type": "integer", "default": 1},
        "limit": {"name": "limit", "in": "query", "type": "integer", "default": 20}
    },
    "definitions": {
        "models.AttendanceInput": {
            "type": "object",
            "properties": {
                "day": {"type": "integer", "minimum": 1, "maximum": 31},
                "week": {"type": "integer", "minimum": 1, "maximum": 53},
                "month": {"type": "integer", "minimum": 1, "maximum": 12},
                "status": {"type": "boolean"}
            }
        },
        "models.RatingInput": {
            "type": "object",
            "properties": {
                "week": {"type": "integer", "minimum": 1, "maximum": 53},
                "day": {"type": "integer", "minimum": 1, "maximum": 31},
                "assignments": {"type": "integer", "minimum": 0, "maximum": 100},
                "participation": {"type": "integer", "minimum": 0, "maximum": 100},
                "performance": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "models.AssignBadgeRequest": {
            "type": "object",
            "required": ["badgeId"],
            "properties": {
                "badgeId": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Student Tracker API",
	Description:      "Students, attendance, ratings and badges.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
