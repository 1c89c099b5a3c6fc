// Package docs registers the OpenAPI description served at /swagger/index.html.
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
        "/api/health": {
            "get": {
                "description": "Reports \"degraded\" instead of failing when storage is unreadable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/api/vote": {
            "post": {
                "description": "Records a yes/no vote on a market and returns the market's updated results",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["voting"],
                "summary": "Register a vote",
                "parameters": [
                    {"description": "Vote submission", "name": "vote", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterVoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RegisterVoteResponse"}},
                    "400": {"description": "Missing or invalid fields", "schema": {"$ref": "#/definitions/models.VoteErrorResponse"}},
                    "500": {"description": "Vote could not be stored", "schema": {"$ref": "#/definitions/models.VoteErrorResponse"}}
                }
            }
        },
        "/api/results": {
            "get": {
                "description": "Results for every market with at least one vote",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Get all results",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AllResultsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/results/{marketId}": {
            "get": {
                "description": "All-time results for one market. Unknown markets report zero votes.",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Get market results",
                "parameters": [
                    {"type": "string", "description": "Market ID", "name": "marketId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MarketResultsResponse"}}
                }
            }
        },
        "/api/results/{marketId}/window/{token}": {
            "get": {
                "description": "Results for one voting window next to the market's all-time results",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Get window results",
                "parameters": [
                    {"type": "string", "description": "Market ID", "name": "marketId", "in": "path", "required": true},
                    {"type": "string", "description": "Window token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.WindowResultsResponse"}}
                }
            }
        },
        "/api/export": {
            "get": {
                "description": "Every recorded vote plus market and window aggregates. Not paginated.",
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Export votes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ExportResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/markets": {
            "get": {
                "description": "Active, open Polymarket markets from NFL-related events, one entry per market",
                "produces": ["application/json"],
                "tags": ["markets"],
                "summary": "List NFL markets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "502": {"description": "Polymarket unavailable", "schema": {"$ref": "#/definitions/models.UpstreamErrorResponse"}}
                }
            }
        },
        "/api/prices/{tokenId}": {
            "get": {
                "description": "Passes through the Polymarket price history for one outcome token",
                "produces": ["application/json"],
                "tags": ["markets"],
                "summary": "Price history",
                "parameters": [
                    {"type": "string", "description": "CLOB token ID", "name": "tokenId", "in": "path", "required": true},
                    {"type": "string", "default": "1w", "description": "History interval", "name": "interval", "in": "query"},
                    {"type": "string", "default": "60", "description": "Resolution in minutes", "name": "fidelity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "502": {"description": "Polymarket unavailable", "schema": {"$ref": "#/definitions/models.UpstreamErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ResultsPayload": {
            "type": "object",
            "properties": {
                "yes": {"type": "integer"},
                "no": {"type": "integer"},
                "total": {"type": "integer"},
                "yesPercent": {"type": "integer"},
                "noPercent": {"type": "integer"}
            }
        },
        "models.RegisterVoteRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "marketId": {"type": "string"},
                "vote": {"type": "string", "enum": ["yes", "no"]}
            }
        },
        "models.RegisterVoteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "voteId": {"type": "string"},
                "results": {"$ref": "#/definitions/models.ResultsPayload"}
            }
        },
        "models.VoteErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.UpstreamErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.MarketResultsResponse": {
            "type": "object",
            "properties": {
                "marketId": {"type": "string"},
                "results": {"$ref": "#/definitions/models.ResultsPayload"}
            }
        },
        "models.WindowResultsResponse": {
            "type": "object",
            "properties": {
                "marketId": {"type": "string"},
                "token": {"type": "string"},
                "window": {"$ref": "#/definitions/models.ResultsPayload"},
                "allTime": {"$ref": "#/definitions/models.ResultsPayload"}
            }
        },
        "models.AllResultsResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.ResultsPayload"}},
                "totalVotes": {"type": "integer"},
                "marketsTracked": {"type": "integer"},
                "lastUpdated": {"type": "string"}
            }
        },
        "models.ExportedVote": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "token": {"type": "string"},
                "marketId": {"type": "string"},
                "vote": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "models.ExportResponse": {
            "type": "object",
            "properties": {
                "exportedAt": {"type": "string"},
                "totalVotes": {"type": "integer"},
                "votes": {"type": "array", "items": {"$ref": "#/definitions/models.ExportedVote"}},
                "aggregates": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.ResultsPayload"}},
                "windowAggregates": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.ResultsPayload"}}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "totalVotes": {"type": "integer"},
                "marketsTracked": {"type": "integer"},
                "storage": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "NFL Market Pulse API",
	Description:      "Crowd sentiment votes on NFL prediction markets, with a consolidated Polymarket feed",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
