package presentation

import (
	"errors"
	"testing"
	"time"

	"weather-dashboard/internal/models"
)

func newTestTransformer() *Transformer {
	tr := NewTransformer(FixedIndex(0))
	tr.SetClock(func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) })
	return tr
}

func TestTransformer_Transform(t *testing.T) {
	tests := []struct {
		name        string
		raw         models.RawReading
		wantErr     bool
		checkValues func(*testing.T, *Presentation)
	}{
		{
			name: "sunny perfect day",
			raw:  models.RawReading{City: "Madrid", Description: "Sunny", Temperature: 22, Humidity: 40},
			checkValues: func(t *testing.T, p *Presentation) {
				if p.Category != Sunny {
					t.Errorf("Category = %v, want sunny", p.Category)
				}
				if p.Icon != "☀️" || p.Content.Icon != "☀️" {
					t.Errorf("Icon = %q / %q", p.Icon, p.Content.Icon)
				}
				if p.Mood.Score != 100 {
					t.Errorf("Mood.Score = %d, want 100", p.Mood.Score)
				}
				if p.Content.FunFact != funFacts[0] || p.Content.Joke != jokes[0] {
					t.Errorf("content not pinned to index 0")
				}
				if len(p.Content.Activities) != 4 || p.Content.Activities[0] != activities[Sunny][0] {
					t.Errorf("unexpected activities: %+v", p.Content.Activities)
				}
				if p.Reading.City != "Madrid" {
					t.Errorf("Reading.City = %q", p.Reading.City)
				}
			},
		},
		{
			name: "light rain in the warm",
			raw:  models.RawReading{City: "London", Description: "Light rain", Temperature: 25, Humidity: 85},
			checkValues: func(t *testing.T, p *Presentation) {
				if p.Category != Rainy {
					t.Errorf("Category = %v, want rainy", p.Category)
				}
				if p.Icon != "🌦️" {
					t.Errorf("Icon = %q", p.Icon)
				}
				if p.Mood.Score != 40 {
					t.Errorf("Mood.Score = %d, want 40", p.Mood.Score)
				}
				if p.Content.Activities[0] != activities[Rainy][0] {
					t.Errorf("unexpected activities: %+v", p.Content.Activities)
				}
			},
		},
		{
			name:    "blank city short-circuits",
			raw:     models.RawReading{City: "   ", Description: "Sunny"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newTestTransformer().Transform(&tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Transform() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidReading) {
					t.Errorf("error = %v, want ErrInvalidReading", err)
				}
				if p != nil {
					t.Error("presentation should be nil on failure")
				}
				return
			}
			tt.checkValues(t, p)
		})
	}
}

func TestTheme(t *testing.T) {
	if ParseTheme("DARK") != DarkTheme {
		t.Error("ParseTheme(DARK) should be dark")
	}
	if ParseTheme("") != LightTheme || ParseTheme("neon") != LightTheme {
		t.Error("unknown themes should default to light")
	}
	if LightTheme.Toggle() != DarkTheme || DarkTheme.Toggle() != LightTheme {
		t.Error("Toggle should flip the theme")
	}
}

func TestTransformer_NormalizeUsesClock(t *testing.T) {
	tr := newTestTransformer()

	reading, err := tr.Normalize(&models.RawReading{City: "Oslo", Temperature: 3})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC); !reading.ObservedAt.Equal(want) || !tr.Now().Equal(want) {
		t.Errorf("ObservedAt = %v, Now() = %v, want %v", reading.ObservedAt, tr.Now(), want)
	}

	if _, err := tr.Normalize(&models.RawReading{City: " "}); !errors.Is(err, models.ErrInvalidReading) {
		t.Errorf("Normalize() error = %v, want ErrInvalidReading", err)
	}
}
