package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Records(t *testing.T) {
	c := NewCollectorWithRegistry("test", prometheus.NewRegistry())

	c.RecordAPIRequest("/api/weather", "GET", "200")
	c.RecordAPIRequest("/api/weather", "GET", "200")
	c.RecordAPIError("invalid_reading", "/api/weather")
	c.RecordProviderError("wttr", "timeout")
	c.RecordPresentation("rainy", 30)
	c.RecordInvalidReading("city")
	c.UpdateDBConnectionPool(2, 3, 5)

	if got := testutil.ToFloat64(c.APIRequestsTotal.WithLabelValues("/api/weather", "GET", "200")); got != 2 {
		t.Errorf("api_requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.APIErrorsTotal.WithLabelValues("invalid_reading", "/api/weather")); got != 1 {
		t.Errorf("api_errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ProviderErrorsTotal.WithLabelValues("wttr", "timeout")); got != 1 {
		t.Errorf("provider_errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.PresentationsTotal.WithLabelValues("rainy")); got != 1 {
		t.Errorf("presentations_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.InvalidReadingTotal.WithLabelValues("city")); got != 1 {
		t.Errorf("invalid_readings_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.DBConnectionPool.WithLabelValues("total")); got != 5 {
		t.Errorf("db_connection_pool{total} = %v, want 5", got)
	}
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors with the same namespace must not collide on private registries
	NewCollectorWithRegistry("dup", prometheus.NewRegistry())
	NewCollectorWithRegistry("dup", prometheus.NewRegistry())
}

func TestTimer_ObserveDuration(t *testing.T) {
	c := NewCollectorWithRegistry("test", prometheus.NewRegistry())
	timer := c.NewTimer(c.ProviderFetchDuration.WithLabelValues("simulated"))
	time.Sleep(time.Millisecond)

	if d := timer.ObserveDuration(); d <= 0 {
		t.Errorf("ObserveDuration() = %v, want > 0", d)
	}
	if n := testutil.CollectAndCount(c.ProviderFetchDuration); n != 1 {
		t.Errorf("provider_fetch_duration series = %d, want 1", n)
	}
}
