package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Weather Dashboard API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Weather Dashboard API",
			"description": "Current weather for a city, turned into dashboard content: category, icon, mood meter, activities, fun facts and jokes",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Weather Dashboard Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/weather": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get current weather",
					"description": "Fetch and normalize the current conditions for a city",
					"parameters": []map[string]interface{}{
						{
							"name":        "city",
							"in":          "query",
							"description": "City name (default: London)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "default": "London"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Normalized reading",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{"schema": readingSchema()},
							},
						},
						"400": errorResponse("City name is required"),
						"404": errorResponse("City not found or no data available"),
						"502": errorResponse("Provider returned an invalid reading"),
						"503": errorResponse("Weather service unavailable"),
						"504": errorResponse("Weather service timed out"),
					},
				},
			},
			"/api/weather/presentation": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get dashboard presentation",
					"description": "Current weather with category, icon, mood meter, activities, a fun fact and a joke",
					"parameters": []map[string]interface{}{
						{
							"name":        "city",
							"in":          "query",
							"description": "City name (default: London)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "default": "London"},
						},
						{
							"name":        "theme",
							"in":          "query",
							"description": "Current widget theme (light or dark)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "enum": []string{"light", "dark"}, "default": "light"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Dashboard presentation",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{"schema": presentationSchema()},
							},
						},
						"400": errorResponse("City name is required"),
						"404": errorResponse("City not found or no data available"),
						"502": errorResponse("Provider returned an invalid reading"),
						"503": errorResponse("Weather service unavailable"),
						"504": errorResponse("Weather service timed out"),
					},
				},
			},
			"/api/weather/history": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "List lookup history",
					"description": "Paginated history of served presentations, newest first",
					"parameters": []map[string]interface{}{
						queryParam("city", "Filter by city (case-insensitive)", map[string]interface{}{"type": "string"}),
						queryParam("category", "Filter by weather category", map[string]interface{}{"type": "string", "enum": []string{"sunny", "rainy", "cloudy", "cold"}}),
						queryParam("since", "Only lookups created on or after this date (YYYY-MM-DD)", map[string]interface{}{"type": "string", "format": "date"}),
						queryParam("page", "Page number (default: 1)", map[string]interface{}{"type": "integer", "default": 1}),
						queryParam("limit", "Records per page (default: 20, max: 100)", map[string]interface{}{"type": "integer", "default": 20}),
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Paginated lookups",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{"schema": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"data":        map[string]interface{}{"type": "array", "items": lookupSchema()},
										"total":       map[string]string{"type": "integer"},
										"page":        map[string]string{"type": "integer"},
										"limit":       map[string]string{"type": "integer"},
										"total_pages": map[string]string{"type": "integer"},
									},
								}},
							},
						},
						"400": errorResponse("Invalid since date"),
						"503": errorResponse("Lookup history is disabled"),
					},
				},
			},
			"/api/weather/history/summary": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Summarize lookup history for a city",
					"description": "Lookup count, average mood score and temperature, and dominant category",
					"parameters": []map[string]interface{}{
						{
							"name":        "city",
							"in":          "query",
							"description": "City name (default: London)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "string", "default": "London"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "City summary",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{"schema": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"city":                    map[string]string{"type": "string"},
										"lookup_count":            map[string]string{"type": "integer"},
										"avg_mood_score":          map[string]interface{}{"type": "number", "nullable": true},
										"avg_temperature_celsius": map[string]interface{}{"type": "number", "nullable": true},
										"dominant_category":       map[string]string{"type": "string"},
									},
								}},
							},
						},
						"404": errorResponse("No lookups recorded for the city"),
						"503": errorResponse("Lookup history is disabled"),
					},
				},
			},
			"/api/health": map[string]interface{}{
				"get": healthOperation(),
			},
			"/health": map[string]interface{}{
				"get": healthOperation(),
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}

func queryParam(name, description string, schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "query",
		"description": description,
		"required":    false,
		"schema":      schema,
	}
}

func errorResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"error":   map[string]string{"type": "string"},
						"message": map[string]string{"type": "string"},
						"code":    map[string]string{"type": "integer"},
					},
				},
			},
		},
	}
}

func readingSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"city":        map[string]string{"type": "string"},
			"temperature": map[string]string{"type": "number"},
			"description": map[string]string{"type": "string"},
			"feels_like":  map[string]string{"type": "number"},
			"humidity":    map[string]string{"type": "number"},
			"wind_speed":  map[string]string{"type": "number"},
			"pressure":    map[string]interface{}{"type": "number", "nullable": true},
			"visibility":  map[string]interface{}{"type": "number", "nullable": true},
			"uv_index":    map[string]string{"type": "number"},
			"timestamp":   map[string]string{"type": "string", "example": "2024-03-10 09:30:00"},
		},
	}
}

func presentationSchema() map[string]interface{} {
	activity := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"emoji":       map[string]string{"type": "string"},
			"name":        map[string]string{"type": "string"},
			"description": map[string]string{"type": "string"},
		},
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"weather":  readingSchema(),
			"category": map[string]interface{}{"type": "string", "enum": []string{"sunny", "rainy", "cloudy", "cold"}},
			"icon":     map[string]string{"type": "string"},
			"mood": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"score": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
					"emoji": map[string]string{"type": "string"},
					"label": map[string]string{"type": "string"},
				},
			},
			"content": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"icon":       map[string]string{"type": "string"},
					"activities": map[string]interface{}{"type": "array", "items": activity},
					"fun_fact":   map[string]string{"type": "string"},
					"joke":       map[string]string{"type": "string"},
				},
			},
			"theme":      map[string]interface{}{"type": "string", "enum": []string{"light", "dark"}},
			"next_theme": map[string]interface{}{"type": "string", "enum": []string{"light", "dark"}},
		},
	}
}

func lookupSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":          map[string]string{"type": "integer"},
			"city":        map[string]string{"type": "string"},
			"temperature": map[string]string{"type": "integer"},
			"description": map[string]string{"type": "string"},
			"humidity":    map[string]string{"type": "integer"},
			"category":    map[string]string{"type": "string"},
			"mood_score":  map[string]string{"type": "integer"},
			"observed_at": map[string]string{"type": "string", "format": "date-time"},
			"created_at":  map[string]string{"type": "string", "format": "date-time"},
		},
	}
}

func healthOperation() map[string]interface{} {
	return map[string]interface{}{
		"summary":     "Health check",
		"description": "Check if the API and, when enabled, the history store are reachable",
		"responses": map[string]interface{}{
			"200": map[string]interface{}{
				"description": "API is healthy",
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{
						"schema": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"status":    map[string]string{"type": "string"},
								"timestamp": map[string]string{"type": "string", "format": "date-time"},
								"version":   map[string]string{"type": "string"},
							},
						},
					},
				},
			},
			"503": map[string]interface{}{"description": "History store unreachable"},
		},
	}
}
