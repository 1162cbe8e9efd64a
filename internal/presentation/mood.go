package presentation

import (
	"strings"

	"weather-dashboard/internal/models"
)

const (
	baseMoodScore = 50
	minMoodScore  = 0
	maxMoodScore  = 100
)

// MoodResult is the mood meter reading derived from the weather
type MoodResult struct {
	Score int    `json:"score"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

type moodTier struct {
	minScore int
	emoji    string
	label    string
}

// moodTiers are ordered from the highest threshold down
var moodTiers = []moodTier{
	{80, "😊", "Perfect weather for a great mood!"},
	{60, "🙂", "Pretty good weather conditions!"},
	{40, "😐", "Weather is okay, could be better."},
	{minMoodScore, "😔", "Weather might affect your mood today."},
}

// Score computes the mood meter for a reading.
// Temperatures in 10..19 and 26..35 carry neither bonus nor penalty.
func Score(r *models.WeatherReading) MoodResult {
	desc := normalizeDescription(r.Description)
	score := baseMoodScore

	switch {
	case strings.Contains(desc, "sunny"):
		score += 30
	case strings.Contains(desc, "rain"):
		score -= 20
	case strings.Contains(desc, "cloud"):
		score += 10
	}

	switch t := r.TemperatureC; {
	case t >= 20 && t <= 25:
		score += 20
	case t < 5 || t > 35:
		score -= 15
	}

	if r.HumidityPct > 80 {
		score -= 10
	}

	score = clampScore(score)
	tier := tierFor(score)

	return MoodResult{
		Score: score,
		Emoji: tier.emoji,
		Label: tier.label,
	}
}

func tierFor(score int) moodTier {
	for _, tier := range moodTiers {
		if score >= tier.minScore {
			return tier
		}
	}
	return moodTiers[len(moodTiers)-1]
}

func clampScore(score int) int {
	if score < minMoodScore {
		return minMoodScore
	}
	if score > maxMoodScore {
		return maxMoodScore
	}
	return score
}
