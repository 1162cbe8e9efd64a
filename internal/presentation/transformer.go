// Package presentation turns a weather reading into dashboard data:
// a category and icon, a mood meter, and auxiliary content.
package presentation

import (
	"time"

	"weather-dashboard/internal/models"
)

// Presentation is everything the dashboard renders for one reading
type Presentation struct {
	Reading  *models.WeatherReading `json:"-"`
	Category Category               `json:"category"`
	Icon     string                 `json:"icon"`
	Mood     MoodResult             `json:"mood"`
	Content  ContentBundle          `json:"content"`
}

// Transformer composes normalization, classification, scoring and content selection
type Transformer struct {
	selector *Selector
	now      func() time.Time
}

// NewTransformer creates a transformer drawing content through rng (nil for random)
func NewTransformer(rng IndexProvider) *Transformer {
	return &Transformer{
		selector: NewSelector(rng),
		now:      time.Now,
	}
}

// SetClock replaces the clock used for readings without a timestamp
func (t *Transformer) SetClock(now func() time.Time) {
	t.now = now
}

// Now returns the transformer's current time in UTC
func (t *Transformer) Now() time.Time {
	return t.now().UTC()
}

// Normalize validates a raw reading, stamping it with Now when it carries no timestamp
func (t *Transformer) Normalize(raw *models.RawReading) (*models.WeatherReading, error) {
	return raw.ToReading(t.Now())
}

// Transform normalizes a raw reading and derives its presentation.
// A normalization failure is returned unchanged.
func (t *Transformer) Transform(raw *models.RawReading) (*Presentation, error) {
	reading, err := t.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return t.Present(reading), nil
}

// Present derives the presentation of an already normalized reading
func (t *Transformer) Present(reading *models.WeatherReading) *Presentation {
	category, icon := Classify(reading)
	mood := Score(reading)

	content := t.selector.Select(category)
	content.Icon = icon

	return &Presentation{
		Reading:  reading,
		Category: category,
		Icon:     icon,
		Mood:     mood,
		Content:  content,
	}
}
