// Package simulated generates plausible weather readings without network access.
package simulated

import (
	"context"
	"strings"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
)

var descriptions = []string{
	"Clear",
	"Sunny",
	"Partly cloudy",
	"Cloudy",
	"Overcast",
	"Light rain",
	"Rain",
	"Heavy rain",
	"Drizzle",
	"Thunderstorm",
	"Snow",
	"Fog",
	"Mist",
}

// Provider returns random readings drawn through an IndexProvider
type Provider struct {
	rng presentation.IndexProvider
	now func() time.Time
}

// NewProvider creates a simulated provider. A nil rng draws from the global source.
func NewProvider(rng presentation.IndexProvider) *Provider {
	if rng == nil {
		rng = presentation.RandomIndex{}
	}
	return &Provider{rng: rng, now: time.Now}
}

// Name implements providers.Provider
func (p *Provider) Name() string {
	return "simulated"
}

// Current implements providers.Provider. The city is echoed back trimmed.
func (p *Provider) Current(ctx context.Context, city string) (*models.RawReading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	description := descriptions[p.rng.Intn(len(descriptions))]
	temperature := p.between(-10, 38)
	if strings.EqualFold(description, "snow") && temperature > 2 {
		temperature = p.between(-10, 2)
	}
	humidity := p.between(20, 100)

	return &models.RawReading{
		City:        strings.TrimSpace(city),
		Temperature: float64(temperature),
		Description: description,
		FeelsLike:   float64(temperature + p.between(-4, 2)),
		Humidity:    float64(humidity),
		WindSpeed:   float64(p.between(0, 40)),
		UVIndex:     float64(p.between(0, 11)),
		ObservedAt:  models.Timestamp{Time: p.now().UTC()},
	}, nil
}

// between returns an integer in [lo, hi]
func (p *Provider) between(lo, hi int) int {
	return lo + p.rng.Intn(hi-lo+1)
}
