package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/providers"
	"weather-dashboard/internal/repository"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// WeatherService fetches readings and turns them into dashboard presentations
type WeatherService struct {
	provider    providers.Provider
	transformer *presentation.Transformer
	history     repository.HistoryRepository
	logger      *logging.StructuredLogger
	metrics     *metrics.Collector
}

// NewWeatherService creates a new weather service. history may be nil when the lookup history is disabled.
func NewWeatherService(
	provider providers.Provider,
	transformer *presentation.Transformer,
	history repository.HistoryRepository,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *WeatherService {
	return &WeatherService{
		provider:    provider,
		transformer: transformer,
		history:     history,
		logger:      logger,
		metrics:     metricsCollector,
	}
}

// CurrentReading fetches and normalizes the current conditions for city.
// Provider and normalization errors are returned unchanged.
func (s *WeatherService) CurrentReading(ctx context.Context, city string) (*models.WeatherReading, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		s.metrics.RecordInvalidReading("city")
		return nil, &models.ValidationError{Field: "city", Value: city, Message: "City name is required"}
	}
	ctx = logging.WithCity(ctx, city)

	timer := s.metrics.NewTimer(s.metrics.ProviderFetchDuration.WithLabelValues(s.provider.Name()))
	raw, err := s.provider.Current(ctx, city)
	duration := timer.ObserveDuration()
	if err != nil {
		kind := string(providers.KindOf(err))
		if kind == "" {
			kind = "internal"
		}
		s.metrics.RecordProviderError(s.provider.Name(), kind)
		s.logger.Warn(ctx, "[WEATHER_FETCH_ERROR] Provider request failed", logging.Fields{
			"provider":    s.provider.Name(),
			"kind":        kind,
			"duration_ms": duration.Milliseconds(),
			"error":       err.Error(),
		})
		return nil, err
	}

	reading, err := s.transformer.Normalize(raw)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			s.metrics.RecordInvalidReading(vErr.Field)
		}
		s.logger.Warn(ctx, "[WEATHER_INVALID_READING] Provider returned an invalid reading", logging.Fields{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Debug(ctx, "[WEATHER_FETCH] Reading fetched", logging.Fields{
		"provider":    s.provider.Name(),
		"temperature": reading.TemperatureC,
		"description": reading.Description,
		"duration_ms": duration.Milliseconds(),
	})

	return reading, nil
}

// Present fetches the current conditions for city and derives the dashboard presentation.
// The lookup is appended to the history when enabled; history failures are only logged.
func (s *WeatherService) Present(ctx context.Context, city string) (*presentation.Presentation, error) {
	reading, err := s.CurrentReading(ctx, city)
	if err != nil {
		return nil, err
	}

	p := s.transformer.Present(reading)
	s.metrics.RecordPresentation(string(p.Category), p.Mood.Score)

	if s.history != nil {
		lookup := NewLookup(p, s.transformer.Now())
		if err := s.history.CreateLookup(ctx, lookup); err != nil {
			s.logger.Error(logging.WithCity(ctx, reading.City), "[HISTORY_RECORD_ERROR] Failed to record lookup", logging.Fields{
				"category": lookup.Category,
			}, err)
		}
	}

	return p, nil
}

// NewLookup converts a presentation into a history row
func NewLookup(p *presentation.Presentation, createdAt time.Time) *models.Lookup {
	return &models.Lookup{
		City:         p.Reading.City,
		TemperatureC: p.Reading.TemperatureC,
		Description:  p.Reading.Description,
		HumidityPct:  p.Reading.HumidityPct,
		Category:     string(p.Category),
		MoodScore:    p.Mood.Score,
		ObservedAt:   p.Reading.ObservedAt,
		CreatedAt:    createdAt,
	}
}
