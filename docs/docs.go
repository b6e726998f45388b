// Package docs holds the OpenAPI document served under /swagger.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange a user id and password for a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.LoginResult"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/team-points": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scores"],
                "summary": "Record points earned by a team in a round",
                "parameters": [
                    {"description": "Team points", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RecordTeamPointsInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Caller is not a scorer"},
                    "404": {"description": "Round or team not found"}
                }
            }
        },
        "/player-performance": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scores"],
                "summary": "Record the score of a player in a round",
                "parameters": [
                    {"description": "Performance", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RecordPlayerPerformanceInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Caller is not a scorer"},
                    "404": {"description": "Round or player not found"}
                }
            }
        },
        "/rounds/{roundID}/man-of-match": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Highest scoring player of a round",
                "description": "Scores are summed per player. When a scorer flagged any entry of the round as man of the match, only flagged players are considered, so a flagged player wins over a higher unflagged total. Ties go to the lowest player id.",
                "parameters": [
                    {"type": "integer", "description": "Round ID", "name": "roundID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ManOfMatch"}},
                    "404": {"description": "Round not found or no performances"}
                }
            }
        },
        "/series/{seriesID}/standings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Winner team, man of the series and ranked tables of a series",
                "description": "man_of_the_series is null and player_table is empty until a performance is recorded.",
                "parameters": [
                    {"type": "integer", "description": "Series ID", "name": "seriesID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SeriesStandings"}},
                    "404": {"description": "Series not found or no team points"}
                }
            }
        },
        "/series/{seriesID}/standings/export": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Upload the standings of a series to object storage",
                "parameters": [
                    {"type": "integer", "description": "Series ID", "name": "seriesID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.ExportResult"}},
                    "403": {"description": "Caller is not a scorer"},
                    "404": {"description": "Not Found"},
                    "503": {"description": "Storage not configured"}
                }
            }
        }
    },
    "definitions": {
        "models.PlayerTotal": {
            "type": "object",
            "properties": {
                "player_id": {"type": "integer"},
                "player_name": {"type": "string"},
                "points": {"type": "integer"}
            }
        },
        "models.TeamTotal": {
            "type": "object",
            "properties": {
                "team_id": {"type": "integer"},
                "team_name": {"type": "string"},
                "points": {"type": "integer"}
            }
        },
        "models.ManOfMatch": {
            "type": "object",
            "properties": {
                "round_id": {"type": "integer"},
                "player": {"$ref": "#/definitions/models.PlayerTotal"}
            }
        },
        "models.SeriesStandings": {
            "type": "object",
            "properties": {
                "series_id": {"type": "integer"},
                "winner_team": {"$ref": "#/definitions/models.TeamTotal"},
                "man_of_the_series": {"$ref": "#/definitions/models.PlayerTotal"},
                "team_table": {"type": "array", "items": {"$ref": "#/definitions/models.TeamTotal"}},
                "player_table": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerTotal"}}
            }
        },
        "services.LoginInput": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "password": {"type": "string"}
            }
        },
        "services.LoginResult": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "services.RecordTeamPointsInput": {
            "type": "object",
            "properties": {
                "round_id": {"type": "integer"},
                "team_id": {"type": "integer"},
                "points": {"type": "integer"}
            }
        },
        "services.RecordPlayerPerformanceInput": {
            "type": "object",
            "properties": {
                "round_id": {"type": "integer"},
                "player_id": {"type": "integer"},
                "score": {"type": "integer"},
                "man_of_match": {"type": "boolean"}
            }
        },
        "services.ExportResult": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "url": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Series Points API",
	Description:      "Record keeping for series, rounds, team points and player performances.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
