package presentation

import (
	"strings"

	"weather-dashboard/internal/models"
)

// Category is the coarse weather class used to pick activities
type Category string

const (
	Sunny  Category = "sunny"
	Rainy  Category = "rainy"
	Cloudy Category = "cloudy"
	Cold   Category = "cold"
)

// coldThresholdC is the temperature below which dry weather counts as cold
const coldThresholdC = 10

// DefaultIcon is shown for descriptions missing from the icon table
const DefaultIcon = "🌤️"

// icons is keyed by the trimmed, lower-cased description
var icons = map[string]string{
	"clear":         "☀️",
	"sunny":         "☀️",
	"partly cloudy": "⛅",
	"cloudy":        "☁️",
	"overcast":      "☁️",
	"rain":          "🌧️",
	"light rain":    "🌦️",
	"heavy rain":    "⛈️",
	"snow":          "❄️",
	"fog":           "🌫️",
	"mist":          "🌫️",
	"thunderstorm":  "⛈️",
	"drizzle":       "🌦️",
}

// Classify maps a reading to its category and display icon.
// Rules are tested in order: rain, cloud, cold temperature, then sunny.
func Classify(r *models.WeatherReading) (Category, string) {
	desc := normalizeDescription(r.Description)

	var category Category
	switch {
	case strings.Contains(desc, "rain"):
		category = Rainy
	case strings.Contains(desc, "cloud"):
		category = Cloudy
	case r.TemperatureC < coldThresholdC:
		category = Cold
	default:
		category = Sunny
	}

	return category, Icon(r.Description)
}

// Icon returns the glyph for an exact description match, or DefaultIcon
func Icon(description string) string {
	if icon, ok := icons[normalizeDescription(description)]; ok {
		return icon
	}
	return DefaultIcon
}

func normalizeDescription(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
