package services

import (
	"context"
	"errors"
	"strings"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repository"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// ErrHistoryDisabled is returned when the lookup history is not configured
var ErrHistoryDisabled = errors.New("lookup history is disabled")

// HistoryService reads the lookup history
type HistoryService struct {
	repo    repository.HistoryRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewHistoryService creates a new history service. A nil repo disables every operation.
func NewHistoryService(repo repository.HistoryRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *HistoryService {
	return &HistoryService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Enabled reports whether a history repository is configured
func (s *HistoryService) Enabled() bool {
	return s.repo != nil
}

// ListLookups retrieves lookups with filtering
func (s *HistoryService) ListLookups(ctx context.Context, filter repository.LookupFilter) ([]*models.Lookup, int, error) {
	if s.repo == nil {
		return nil, 0, ErrHistoryDisabled
	}
	return s.repo.ListLookups(ctx, filter)
}

// Summary aggregates the history of a city
func (s *HistoryService) Summary(ctx context.Context, city string) (*models.LookupSummary, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, &models.ValidationError{Field: "city", Value: city, Message: "City name is required"}
	}

	summary, err := s.repo.SummarizeCity(ctx, city)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "[HISTORY_SUMMARY] City summary computed", logging.Fields{
		"city":         city,
		"lookup_count": summary.LookupCount,
	})
	return summary, nil
}

// HealthCheck pings the history store, succeeding trivially when disabled
func (s *HistoryService) HealthCheck(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.HealthCheck(ctx)
}
