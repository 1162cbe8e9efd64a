package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wall-clock layout used by the public weather endpoint
const TimestampLayout = "2006-01-02 15:04:05"

// ErrInvalidReading is the error kind returned when a raw reading cannot be normalized
var ErrInvalidReading = errors.New("invalid reading")

// RawReading is a candidate weather record as delivered by a provider or an import file.
// Numeric fields may carry NaN when the upstream value was missing. When decoded from
// JSON, numbers may also arrive as strings, and "N/A", empty or absent values become NaN.
type RawReading struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	UVIndex     float64   `json:"uv_index"`
	Pressure    *float64  `json:"pressure,omitempty"`
	Visibility  *float64  `json:"visibility,omitempty"`
	ObservedAt  Timestamp `json:"timestamp"`
}

// UnmarshalJSON decodes the endpoint shape, accepting numeric strings as well as numbers
func (r *RawReading) UnmarshalJSON(data []byte) error {
	type Alias RawReading
	missing := measure(math.NaN())
	aux := &struct {
		*Alias
		Temperature measure  `json:"temperature"`
		FeelsLike   measure  `json:"feels_like"`
		Humidity    measure  `json:"humidity"`
		WindSpeed   measure  `json:"wind_speed"`
		UVIndex     measure  `json:"uv_index"`
		Pressure    *measure `json:"pressure"`
		Visibility  *measure `json:"visibility"`
	}{
		Alias:       (*Alias)(r),
		Temperature: missing,
		FeelsLike:   missing,
		Humidity:    missing,
		WindSpeed:   missing,
		UVIndex:     missing,
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	r.Temperature = float64(aux.Temperature)
	r.FeelsLike = float64(aux.FeelsLike)
	r.Humidity = float64(aux.Humidity)
	r.WindSpeed = float64(aux.WindSpeed)
	r.UVIndex = float64(aux.UVIndex)
	r.Pressure = aux.Pressure.optional()
	r.Visibility = aux.Visibility.optional()
	return nil
}

// measure is a JSON number or numeric string. Unparseable strings such as "N/A" and null decode to NaN.
type measure float64

func (m *measure) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*m = measure(math.NaN())
		return nil
	}

	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			v = math.NaN()
		}
		*m = measure(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = measure(v)
	return nil
}

// optional maps an absent or unavailable measure to nil
func (m *measure) optional() *float64 {
	if m == nil || math.IsNaN(float64(*m)) {
		return nil
	}
	v := float64(*m)
	return &v
}

// WeatherReading is a validated, canonical weather reading.
// Values are copied in by the normalizer and never modified afterwards.
type WeatherReading struct {
	City         string    `json:"city"`
	TemperatureC int       `json:"temperature"`
	Description  string    `json:"description"`
	FeelsLikeC   int       `json:"feels_like"`
	HumidityPct  int       `json:"humidity"`
	WindSpeedKph float64   `json:"wind_speed"`
	UVIndex      int       `json:"uv_index"`
	PressureMb   *float64  `json:"pressure,omitempty"`
	VisibilityKm *float64  `json:"visibility,omitempty"`
	ObservedAt   time.Time `json:"-"`
}

// Timestamp accepts both the endpoint layout and RFC 3339 when decoding
type Timestamp struct {
	time.Time
}

// UnmarshalJSON decodes a quoted timestamp. Empty strings and null leave the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{TimestampLayout, time.RFC3339, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return &ValidationError{
		Field:   "timestamp",
		Value:   s,
		Message: "invalid timestamp, expected YYYY-MM-DD HH:MM:SS or RFC 3339",
	}
}

// MarshalJSON encodes the timestamp with the endpoint layout
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// ToReading validates the raw record and converts it to a WeatherReading.
// Humidity is clamped to [0,100], the UV index to [0,11] and wind speed to >= 0.
// Temperatures pass through unchanged. A zero ObservedAt is replaced by now.
func (r *RawReading) ToReading(now time.Time) (*WeatherReading, error) {
	city := strings.TrimSpace(r.City)
	if city == "" {
		return nil, &ValidationError{
			Field:   "city",
			Value:   r.City,
			Message: "city name is required",
		}
	}

	numeric := []struct {
		field string
		value float64
	}{
		{"temperature", r.Temperature},
		{"feels_like", r.FeelsLike},
		{"humidity", r.Humidity},
		{"wind_speed", r.WindSpeed},
		{"uv_index", r.UVIndex},
	}
	for _, n := range numeric {
		if !isFinite(n.value) {
			return nil, nonFinite(n.field, n.value)
		}
	}
	// temperature and feels_like are never clamped, so they must fit the int range
	for _, n := range numeric[:2] {
		if !fitsInt(n.value) {
			return nil, &ValidationError{
				Field:   n.field,
				Value:   fmt.Sprintf("%v", n.value),
				Message: fmt.Sprintf("%s is out of range", n.field),
			}
		}
	}
	if r.Pressure != nil && !isFinite(*r.Pressure) {
		return nil, nonFinite("pressure", *r.Pressure)
	}
	if r.Visibility != nil && !isFinite(*r.Visibility) {
		return nil, nonFinite("visibility", *r.Visibility)
	}

	observedAt := r.ObservedAt.Time
	if observedAt.IsZero() {
		observedAt = now
	}

	return &WeatherReading{
		City:         city,
		TemperatureC: roundInt(r.Temperature),
		Description:  strings.TrimSpace(r.Description),
		FeelsLikeC:   roundInt(r.FeelsLike),
		HumidityPct:  roundInt(clampFloat(r.Humidity, 0, 100)),
		WindSpeedKph: math.Max(r.WindSpeed, 0),
		UVIndex:      roundInt(clampFloat(r.UVIndex, 0, 11)),
		PressureMb:   copyFloat(r.Pressure),
		VisibilityKm: copyFloat(r.Visibility),
		ObservedAt:   observedAt,
	}, nil
}

// ToRaw converts a reading back to the endpoint shape
func (w *WeatherReading) ToRaw() RawReading {
	return RawReading{
		City:        w.City,
		Temperature: float64(w.TemperatureC),
		Description: w.Description,
		FeelsLike:   float64(w.FeelsLikeC),
		Humidity:    float64(w.HumidityPct),
		WindSpeed:   w.WindSpeedKph,
		UVIndex:     float64(w.UVIndex),
		Pressure:    copyFloat(w.PressureMb),
		Visibility:  copyFloat(w.VisibilityKm),
		ObservedAt:  Timestamp{w.ObservedAt},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonFinite(field string, v float64) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   fmt.Sprintf("%v", v),
		Message: fmt.Sprintf("%s must be a finite number", field),
	}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// fitsInt reports whether v rounds to a value representable as an int
func fitsInt(v float64) bool {
	r := math.Round(v)
	return r >= float64(math.MinInt) && r < -float64(math.MinInt)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ValidationError represents a data validation error.
// It unwraps to ErrInvalidReading so callers can match the kind with errors.Is.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the InvalidReading kind
func (e *ValidationError) Unwrap() error {
	return ErrInvalidReading
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}
