package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/repository"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

func main() {
	// Parse command-line flags
	file := flag.String("file", "./readings.jsonl", "JSON-lines file of raw readings")
	batchSize := flag.Int("batch-size", 500, "Number of lookups to insert per batch")
	seed := flag.Uint64("seed", 0, "Seed for content selection (0 means random)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("weather-ingester", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[INGESTER_START] Starting reading import", logging.Fields{
		"version":    "1.0.0",
		"file":       *file,
		"batch_size": *batchSize,
	})

	metricsCollector := metrics.NewCollector("weather_ingester")

	db, err := database.NewPostgresDB(ctx, cfg.Database.Postgres(), logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[INGESTER_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	var rng presentation.IndexProvider = presentation.RandomIndex{}
	if *seed != 0 {
		rng = presentation.NewSeededIndex(*seed)
	}

	historyRepo := repository.NewHistoryRepository(db, logger, metricsCollector)
	ingestionService := services.NewIngestionService(historyRepo, presentation.NewTransformer(rng), logger, metricsCollector)

	result, err := ingestionService.IngestFile(ctx, *file, *batchSize)
	if err != nil {
		logger.Fatal(ctx, "[INGESTION_ERROR] Ingestion failed", logging.Fields{
			"file": *file,
		}, err)
	}

	// Print results
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("IMPORT COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total Records:      %d\n", result.TotalRecords)
	fmt.Printf("Successful Records: %d\n", result.SuccessfulRecords)
	fmt.Printf("Failed Records:     %d\n", result.FailedRecords)
	fmt.Printf("Duration:           %v\n", result.Duration)
	if secs := result.Duration.Seconds(); secs > 0 {
		fmt.Printf("Records/Second:     %.2f\n", float64(result.SuccessfulRecords)/secs)
	}

	if len(result.Categories) > 0 {
		categories := make([]string, 0, len(result.Categories))
		for category := range result.Categories {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		fmt.Println("\nCategories:")
		for _, category := range categories {
			fmt.Printf("  %-8s %d\n", category, result.Categories[category])
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(result.Errors))
		for i, errMsg := range result.Errors {
			if i < 10 {
				fmt.Printf("  - %s\n", errMsg)
			}
		}
		if len(result.Errors) > 10 {
			fmt.Printf("  ... and %d more errors\n", len(result.Errors)-10)
		}
	}

	logger.Info(ctx, "[INGESTER_COMPLETE] Import completed successfully", logging.Fields{
		"total_records":      result.TotalRecords,
		"successful_records": result.SuccessfulRecords,
		"failed_records":     result.FailedRecords,
		"duration_seconds":   result.Duration.Seconds(),
	})
}
