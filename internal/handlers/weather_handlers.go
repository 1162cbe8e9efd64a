package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/providers"
	"weather-dashboard/internal/repository"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

const (
	endpointWeather        = "/api/weather"
	endpointPresentation   = "/api/weather/presentation"
	endpointHistory        = "/api/weather/history"
	endpointHistorySummary = "/api/weather/history/summary"
	endpointHealth         = "/api/health"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// WeatherHandler handles weather API endpoints
type WeatherHandler struct {
	weatherService *services.WeatherService
	historyService *services.HistoryService
	defaultCity    string
	version        string
	logger         *logging.StructuredLogger
	metrics        *metrics.Collector
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(
	weatherService *services.WeatherService,
	historyService *services.HistoryService,
	defaultCity string,
	version string,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		historyService: historyService,
		defaultCity:    defaultCity,
		version:        version,
		logger:         logger,
		metrics:        metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// PresentationResponse is the dashboard payload for one city
type PresentationResponse struct {
	Weather   *models.RawReading         `json:"weather"`
	Category  presentation.Category      `json:"category"`
	Icon      string                     `json:"icon"`
	Mood      presentation.MoodResult    `json:"mood"`
	Content   presentation.ContentBundle `json:"content"`
	Theme     presentation.Theme         `json:"theme"`
	NextTheme presentation.Theme         `json:"next_theme"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// cityParam returns the requested city, the default city when the parameter is absent,
// and false when it is present but blank
func (h *WeatherHandler) cityParam(r *http.Request) (string, bool) {
	query := r.URL.Query()
	if !query.Has("city") {
		return h.defaultCity, true
	}
	city := strings.TrimSpace(query.Get("city"))
	return city, city != ""
}

// GetWeather handles GET /api/weather
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	timer := h.metrics.NewTimer(h.metrics.APIRequestDuration.WithLabelValues(endpointWeather))
	defer timer.ObserveDuration()

	city, ok := h.cityParam(r)
	if !ok {
		h.metrics.RecordAPIError("validation_error", endpointWeather)
		h.sendError(w, r, endpointWeather, "City name is required", http.StatusBadRequest)
		return
	}

	reading, err := h.weatherService.CurrentReading(ctx, city)
	if err != nil {
		h.handleServiceError(w, r, endpointWeather, err)
		return
	}

	h.metrics.RecordAPIRequest(endpointWeather, r.Method, "200")
	h.sendJSON(w, reading.ToRaw(), http.StatusOK)
}

// GetPresentation handles GET /api/weather/presentation
func (h *WeatherHandler) GetPresentation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	timer := h.metrics.NewTimer(h.metrics.APIRequestDuration.WithLabelValues(endpointPresentation))
	defer timer.ObserveDuration()

	city, ok := h.cityParam(r)
	if !ok {
		h.metrics.RecordAPIError("validation_error", endpointPresentation)
		h.sendError(w, r, endpointPresentation, "City name is required", http.StatusBadRequest)
		return
	}
	theme := presentation.ParseTheme(r.URL.Query().Get("theme"))

	p, err := h.weatherService.Present(ctx, city)
	if err != nil {
		h.handleServiceError(w, r, endpointPresentation, err)
		return
	}

	response := PresentationResponse{
		Weather:   p.Reading.ToRaw(),
		Category:  p.Category,
		Icon:      p.Icon,
		Mood:      p.Mood,
		Content:   p.Content,
		Theme:     theme,
		NextTheme: theme.Toggle(),
	}

	h.metrics.RecordAPIRequest(endpointPresentation, r.Method, "200")
	h.sendJSON(w, response, http.StatusOK)
}

// GetHistory handles GET /api/weather/history
func (h *WeatherHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	timer := h.metrics.NewTimer(h.metrics.APIRequestDuration.WithLabelValues(endpointHistory))
	defer timer.ObserveDuration()

	query := r.URL.Query()

	page := 1
	limit := defaultHistoryLimit

	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l <= maxHistoryLimit {
		limit = l
	}

	filter := repository.LookupFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if city := strings.TrimSpace(query.Get("city")); city != "" {
		filter.City = &city
	}
	if category := strings.ToLower(strings.TrimSpace(query.Get("category"))); category != "" {
		filter.Category = &category
	}
	if sinceStr := query.Get("since"); sinceStr != "" {
		since, err := time.Parse("2006-01-02", sinceStr)
		if err != nil {
			h.metrics.RecordAPIError("validation_error", endpointHistory)
			h.sendError(w, r, endpointHistory, "invalid since format, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.Since = &since
	}

	lookups, total, err := h.historyService.ListLookups(ctx, filter)
	if err != nil {
		h.handleServiceError(w, r, endpointHistory, err)
		return
	}

	response := PaginatedResponse{
		Data:       lookups,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}

	h.metrics.RecordAPIRequest(endpointHistory, r.Method, "200")
	h.sendJSON(w, response, http.StatusOK)
}

// GetHistorySummary handles GET /api/weather/history/summary
func (h *WeatherHandler) GetHistorySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	timer := h.metrics.NewTimer(h.metrics.APIRequestDuration.WithLabelValues(endpointHistorySummary))
	defer timer.ObserveDuration()

	city, ok := h.cityParam(r)
	if !ok {
		h.metrics.RecordAPIError("validation_error", endpointHistorySummary)
		h.sendError(w, r, endpointHistorySummary, "City name is required", http.StatusBadRequest)
		return
	}

	summary, err := h.historyService.Summary(ctx, city)
	if err != nil {
		h.handleServiceError(w, r, endpointHistorySummary, err)
		return
	}

	h.metrics.RecordAPIRequest(endpointHistorySummary, r.Method, "200")
	h.sendJSON(w, summary, http.StatusOK)
}

// HealthCheck handles GET /api/health and GET /health
func (h *WeatherHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	}
	code := http.StatusOK

	if err := h.historyService.HealthCheck(ctx); err != nil {
		h.logger.Warn(ctx, "[HEALTH_CHECK_DEGRADED] History store unreachable", logging.Fields{
			"error": err.Error(),
		})
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.metrics.RecordAPIRequest(endpointHealth, r.Method, strconv.Itoa(code))
	h.sendJSON(w, status, code)
}

// NotFound handles unknown routes
func (h *WeatherHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, r, "not_found", "Endpoint not found", http.StatusNotFound)
}

// handleServiceError maps service errors onto HTTP responses
func (h *WeatherHandler) handleServiceError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	ctx := r.Context()

	var (
		pErr  *providers.ProviderError
		vErr  *models.ValidationError
		nfErr *repository.NotFoundError
	)

	switch {
	case errors.As(err, &pErr):
		h.metrics.RecordAPIError(string(pErr.Kind), endpoint)
		h.sendError(w, r, endpoint, pErr.Message, pErr.StatusCode())
	case errors.As(err, &vErr) && vErr.Field == "city":
		h.metrics.RecordAPIError("validation_error", endpoint)
		h.sendError(w, r, endpoint, vErr.Message, http.StatusBadRequest)
	case errors.As(err, &vErr):
		h.logger.Warn(ctx, "[API_INVALID_UPSTREAM] Provider returned an unusable reading", logging.Fields{
			"endpoint": endpoint,
			"field":    vErr.Field,
		})
		h.metrics.RecordAPIError("invalid_reading", endpoint)
		h.sendError(w, r, endpoint, "Weather provider returned an invalid reading", http.StatusBadGateway)
	case errors.As(err, &nfErr):
		h.metrics.RecordAPIError("not_found", endpoint)
		h.sendError(w, r, endpoint, "No lookups recorded for "+nfErr.ID, http.StatusNotFound)
	case errors.Is(err, services.ErrHistoryDisabled):
		h.metrics.RecordAPIError("history_disabled", endpoint)
		h.sendError(w, r, endpoint, "Lookup history is disabled", http.StatusServiceUnavailable)
	default:
		h.logger.Error(ctx, "[API_INTERNAL_ERROR] Request failed", logging.Fields{
			"endpoint": endpoint,
		}, err)
		h.metrics.RecordAPIError("internal_error", endpoint)
		h.sendError(w, r, endpoint, "An unexpected error occurred", http.StatusInternalServerError)
	}
}

// sendJSON sends a JSON response
func (h *WeatherHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *WeatherHandler) sendError(w http.ResponseWriter, r *http.Request, endpoint, message string, statusCode int) {
	h.metrics.RecordAPIRequest(endpoint, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all weather API routes
func (h *WeatherHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(endpointWeather, h.GetWeather).Methods(http.MethodGet)
	router.HandleFunc(endpointPresentation, h.GetPresentation).Methods(http.MethodGet)
	router.HandleFunc(endpointHistory, h.GetHistory).Methods(http.MethodGet)
	router.HandleFunc(endpointHistorySummary, h.GetHistorySummary).Methods(http.MethodGet)
	router.HandleFunc(endpointHealth, h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/docs", SwaggerUI).Methods(http.MethodGet)
	router.HandleFunc(openAPIPath, OpenAPISpec).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
}
