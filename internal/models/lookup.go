package models

import (
	"time"
)

// Lookup is one served presentation, kept in the optional lookup history
type Lookup struct {
	ID           int64     `json:"id" db:"id"`
	City         string    `json:"city" db:"city"`
	TemperatureC int       `json:"temperature" db:"temperature_celsius"`
	Description  string    `json:"description" db:"description"`
	HumidityPct  int       `json:"humidity" db:"humidity_pct"`
	Category     string    `json:"category" db:"category"`
	MoodScore    int       `json:"mood_score" db:"mood_score"`
	ObservedAt   time.Time `json:"observed_at" db:"observed_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LookupSummary aggregates the history of a single city
type LookupSummary struct {
	City             string   `json:"city" db:"city"`
	LookupCount      int      `json:"lookup_count" db:"lookup_count"`
	AvgMoodScore     *float64 `json:"avg_mood_score,omitempty" db:"avg_mood_score"`
	AvgTemperatureC  *float64 `json:"avg_temperature_celsius,omitempty" db:"avg_temperature_celsius"`
	DominantCategory string   `json:"dominant_category,omitempty" db:"dominant_category"`
}
