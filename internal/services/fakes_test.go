package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repository"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

type fakeProvider struct {
	reading *models.RawReading
	err     error
	calls   []string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Current(ctx context.Context, city string) (*models.RawReading, error) {
	p.calls = append(p.calls, city)
	if p.err != nil {
		return nil, p.err
	}
	r := *p.reading
	r.City = city
	return &r, nil
}

type fakeHistory struct {
	mu        sync.Mutex
	lookups   []*models.Lookup
	batches   int
	createErr error
}

func (h *fakeHistory) CreateLookup(ctx context.Context, lookup *models.Lookup) error {
	if h.createErr != nil {
		return h.createErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	lookup.ID = int64(len(h.lookups) + 1)
	h.lookups = append(h.lookups, lookup)
	return nil
}

func (h *fakeHistory) CreateLookupsBatch(ctx context.Context, lookups []*models.Lookup) error {
	if h.createErr != nil {
		return h.createErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches++
	h.lookups = append(h.lookups, lookups...)
	return nil
}

func (h *fakeHistory) ListLookups(ctx context.Context, filter repository.LookupFilter) ([]*models.Lookup, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var matched []*models.Lookup
	for _, l := range h.lookups {
		if filter.City != nil && !strings.EqualFold(l.City, *filter.City) {
			continue
		}
		matched = append(matched, l)
	}
	total := len(matched)
	if filter.Offset >= total {
		return []*models.Lookup{}, total, nil
	}
	end := min(filter.Offset+filter.Limit, total)
	return matched[filter.Offset:end], total, nil
}

func (h *fakeHistory) SummarizeCity(ctx context.Context, city string) (*models.LookupSummary, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	summary := &models.LookupSummary{City: city}
	for _, l := range h.lookups {
		if strings.EqualFold(l.City, city) {
			summary.LookupCount++
		}
	}
	if summary.LookupCount == 0 {
		return nil, &repository.NotFoundError{Resource: "weather_lookups", ID: city}
	}
	return summary, nil
}

func (h *fakeHistory) HealthCheck(ctx context.Context) error {
	return nil
}

var errStore = errors.New("store unavailable")

func newTestDeps() (*logging.StructuredLogger, *metrics.Collector) {
	return logging.NewDiscardLogger(), metrics.NewCollectorWithRegistry("test", prometheus.NewRegistry())
}
