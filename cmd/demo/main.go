package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/providers/simulated"
	"weather-dashboard/pkg/logging"
)

// Runs the presentation pipeline over simulated readings without a database
func main() {
	cities := flag.String("cities", "London,Paris,Tokyo,New York,Sydney", "Comma-separated list of cities")
	seed := flag.Uint64("seed", 42, "Seed for simulated readings and content (0 means random)")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("WEATHER DASHBOARD - PRESENTATION DEMONSTRATION")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println()

	logger := logging.NewStructuredLogger("demo", "1.0.0", logging.InfoLevel)
	ctx := context.Background()

	var rng presentation.IndexProvider = presentation.RandomIndex{}
	if *seed != 0 {
		rng = presentation.NewSeededIndex(*seed)
	}

	provider := simulated.NewProvider(rng)
	transformer := presentation.NewTransformer(rng)

	categoryCounts := make(map[presentation.Category]int)
	moodTotal := 0
	served := 0

	for _, city := range strings.Split(*cities, ",") {
		city = strings.TrimSpace(city)
		if city == "" {
			continue
		}

		raw, err := provider.Current(ctx, city)
		if err != nil {
			logger.Error(ctx, "[DEMO_FETCH_ERROR] Failed to simulate reading", logging.Fields{
				"city": city,
			}, err)
			continue
		}

		p, err := transformer.Transform(raw)
		if err != nil {
			logger.Error(ctx, "[DEMO_TRANSFORM_ERROR] Reading rejected", logging.Fields{
				"city": city,
			}, err)
			continue
		}

		printPresentation(p)

		categoryCounts[p.Category]++
		moodTotal += p.Mood.Score
		served++
	}

	if served == 0 {
		fmt.Println("No cities processed")
		os.Exit(1)
	}

	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Println("SUMMARY")
	fmt.Println("════════════════════════════════════════════════════════════════")
	fmt.Printf("Cities processed:       %d\n", served)
	fmt.Printf("Average mood score:     %.1f\n", float64(moodTotal)/float64(served))
	for _, category := range []presentation.Category{presentation.Sunny, presentation.Rainy, presentation.Cloudy, presentation.Cold} {
		fmt.Printf("  %-8s              %d\n", category, categoryCounts[category])
	}
	fmt.Println()
}

func printPresentation(p *presentation.Presentation) {
	r := p.Reading

	fmt.Printf("─────────────────────────────────────────────────────────────\n")
	fmt.Printf("%s %s  %d°C (feels like %d°C)  %s\n", p.Icon, r.City, r.TemperatureC, r.FeelsLikeC, r.Description)
	fmt.Printf("─────────────────────────────────────────────────────────────\n")
	fmt.Printf("  Humidity: %d%% | Wind: %.0f km/h | UV: %d\n", r.HumidityPct, r.WindSpeedKph, r.UVIndex)
	fmt.Printf("  Category: %s\n", p.Category)
	fmt.Printf("  Mood:     %s %d/100  %s\n", p.Mood.Emoji, p.Mood.Score, p.Mood.Label)
	fmt.Println("  Activities:")
	for _, a := range p.Content.Activities {
		fmt.Printf("    %s %s - %s\n", a.Emoji, a.Name, a.Description)
	}
	fmt.Printf("  Fun fact: %s\n", p.Content.FunFact)
	fmt.Printf("  Joke:     %s\n", p.Content.Joke)
	fmt.Println()
}
