package wttr

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weather-dashboard/internal/providers"
)

const sampleJ1 = `{
  "current_condition": [{
    "FeelsLikeC": "10",
    "humidity": "87",
    "pressure": "1012",
    "temp_C": "12",
    "uvIndex": "3",
    "visibility": "N/A",
    "weatherDesc": [{"value": "Light rain"}],
    "windspeedKmph": "19"
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "test-agent", 2*time.Second)
	c.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestClient_Current(t *testing.T) {
	var gotPath, gotQuery, gotAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJ1))
	})

	raw, err := c.Current(context.Background(), "  new york ")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	if gotPath != "/new%20york" {
		t.Errorf("path = %q, want /new%%20york", gotPath)
	}
	if gotQuery != "format=j1" {
		t.Errorf("query = %q, want format=j1", gotQuery)
	}
	if gotAgent != "test-agent" {
		t.Errorf("User-Agent = %q", gotAgent)
	}

	if raw.City != "New York" {
		t.Errorf("City = %q, want New York", raw.City)
	}
	if raw.Temperature != 12 || raw.FeelsLike != 10 || raw.Humidity != 87 || raw.WindSpeed != 19 || raw.UVIndex != 3 {
		t.Errorf("unexpected measures: %+v", raw)
	}
	if raw.Description != "Light rain" {
		t.Errorf("Description = %q", raw.Description)
	}
	if raw.Pressure == nil || *raw.Pressure != 1012 {
		t.Errorf("Pressure = %v, want 1012", raw.Pressure)
	}
	if raw.Visibility != nil {
		t.Errorf("Visibility = %v, want nil for N/A", *raw.Visibility)
	}
	if !raw.ObservedAt.Equal(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("ObservedAt = %v", raw.ObservedAt)
	}
}

func TestClient_MissingMeasureIsNaN(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_condition":[{"temp_C":"N/A","humidity":"50","windspeedKmph":"5","FeelsLikeC":"3","uvIndex":"1"}]}`))
	})

	raw, err := c.Current(context.Background(), "Oslo")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if !math.IsNaN(raw.Temperature) {
		t.Errorf("Temperature = %v, want NaN", raw.Temperature)
	}
	if raw.Description != "Unknown" {
		t.Errorf("Description = %q, want Unknown", raw.Description)
	}
	if _, err := raw.ToReading(time.Now()); err == nil {
		t.Error("normalizer should reject a NaN temperature")
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind providers.ErrorKind
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unknown location", http.StatusNotFound)
			},
			wantKind: providers.KindCityNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantKind: providers.KindUnavailable,
		},
		{
			name: "empty current condition",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"current_condition":[]}`))
			},
			wantKind: providers.KindNoData,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			wantKind: providers.KindUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Current(context.Background(), "Atlantis")
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := providers.KindOf(err); kind != tt.wantKind {
				t.Errorf("kind = %q, want %q (err: %v)", kind, tt.wantKind, err)
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Current(ctx, "Slowtown")
	if kind := providers.KindOf(err); kind != providers.KindTimeout {
		t.Errorf("kind = %q, want %q (err: %v)", kind, providers.KindTimeout, err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, "", time.Second).Current(context.Background(), "Paris")
	if kind := providers.KindOf(err); kind != providers.KindUnavailable {
		t.Errorf("kind = %q, want %q (err: %v)", kind, providers.KindUnavailable, err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "", 0)
	if c.baseURL != defaultBaseURL || c.userAgent != defaultUserAgent || c.httpClient.Timeout != defaultTimeout {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.Name() != "wttr" {
		t.Errorf("Name() = %q", c.Name())
	}
}
