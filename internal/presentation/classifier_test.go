package presentation

import (
	"testing"

	"weather-dashboard/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		temperature  int
		wantCategory Category
		wantIcon     string
	}{
		{"light rain is rainy before cloud rules", "light rain", 25, Rainy, "🌦️"},
		{"rain wins over cold", "Heavy Rain", -3, Rainy, "⛈️"},
		{"mixed case rain substring", "Patchy RAIN nearby", 30, Rainy, DefaultIcon},
		{"rain and cloud together", "cloudy with rain", 15, Rainy, DefaultIcon},
		{"cloud substring", "Partly cloudy", 18, Cloudy, "⛅"},
		{"cloud wins over cold", "Overcast clouds", 2, Cloudy, DefaultIcon},
		{"overcast without cloud word is cold when chilly", "Overcast", 4, Cold, "☁️"},
		{"cold below ten", "Clear", 9, Cold, "☀️"},
		{"exactly ten is not cold", "Clear", 10, Sunny, "☀️"},
		{"snow is cold", "Snow", -5, Cold, "❄️"},
		{"warm fog is sunny", "Fog", 14, Sunny, "🌫️"},
		{"unknown warm description", "Haze", 28, Sunny, DefaultIcon},
		{"empty description", "", 20, Sunny, DefaultIcon},
		{"padded exact key", "  Thunderstorm ", 22, Sunny, "⛈️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading := &models.WeatherReading{
				City:         "Test",
				Description:  tt.description,
				TemperatureC: tt.temperature,
			}

			category, icon := Classify(reading)
			if category != tt.wantCategory {
				t.Errorf("category = %v, want %v", category, tt.wantCategory)
			}
			if icon != tt.wantIcon {
				t.Errorf("icon = %q, want %q", icon, tt.wantIcon)
			}
		})
	}
}

func TestClassify_RainIgnoresTemperature(t *testing.T) {
	for _, desc := range []string{"rain", "Rain", "LIGHT RAIN", "freezing rain showers"} {
		for temp := -60; temp <= 60; temp += 5 {
			category, _ := Classify(&models.WeatherReading{City: "X", Description: desc, TemperatureC: temp})
			if category != Rainy {
				t.Fatalf("Classify(%q, %d) = %v, want rainy", desc, temp, category)
			}
		}
	}
}

func TestClassify_ColdWhenDryAndChilly(t *testing.T) {
	for _, desc := range []string{"clear", "sunny", "fog", "mist", "snow", "blizzard"} {
		for temp := -60; temp < coldThresholdC; temp++ {
			category, _ := Classify(&models.WeatherReading{City: "X", Description: desc, TemperatureC: temp})
			if category != Cold {
				t.Fatalf("Classify(%q, %d) = %v, want cold", desc, temp, category)
			}
		}
	}
}

func TestIcon_CoversEveryKey(t *testing.T) {
	keys := []string{
		"clear", "sunny", "partly cloudy", "cloudy", "overcast", "rain", "light rain",
		"heavy rain", "snow", "fog", "mist", "thunderstorm", "drizzle",
	}
	for _, key := range keys {
		if Icon(key) == DefaultIcon {
			t.Errorf("Icon(%q) fell back to the default glyph", key)
		}
	}
	if len(icons) != len(keys) {
		t.Errorf("icon table has %d keys, want %d", len(icons), len(keys))
	}
}
