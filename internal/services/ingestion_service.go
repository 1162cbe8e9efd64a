package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/repository"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// DefaultMaxLineBytes bounds a single JSON line; longer lines are counted as failed records
const DefaultMaxLineBytes = 1 << 20

// IngestionService imports files of raw readings into the lookup history
type IngestionService struct {
	repo         repository.HistoryRepository
	transformer  *presentation.Transformer
	logger       *logging.StructuredLogger
	metrics      *metrics.Collector
	maxLineBytes int
}

// IngestionResult contains ingestion statistics
type IngestionResult struct {
	TotalRecords      int
	SuccessfulRecords int
	FailedRecords     int
	Categories        map[string]int
	Duration          time.Duration
	Errors            []string
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(repo repository.HistoryRepository, transformer *presentation.Transformer, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *IngestionService {
	return &IngestionService{
		repo:         repo,
		transformer:  transformer,
		logger:       logger,
		metrics:      metricsCollector,
		maxLineBytes: DefaultMaxLineBytes,
	}
}

// IngestFile imports a JSON-lines file where every line has the shape served by GET /api/weather.
// Lines that fail to decode or normalize are counted and skipped; storage errors abort the import.
func (s *IngestionService) IngestFile(ctx context.Context, filePath string, batchSize int) (*IngestionResult, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	start := time.Now()
	s.logger.Info(ctx, "[INGEST_START] Starting reading import", logging.Fields{
		"file_path":  filePath,
		"batch_size": batchSize,
		"stage":      "INITIALIZATION",
	})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	result := &IngestionResult{
		Categories: make(map[string]int),
		Errors:     make([]string, 0),
	}
	batch := make([]*models.Lookup, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.CreateLookupsBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
		result.SuccessfulRecords += len(batch)
		batch = batch[:0]
		return nil
	}

	lineNo := 0
	err = readLines(file, s.maxLineBytes, func(line []byte, oversize bool) error {
		lineNo++
		if oversize {
			result.TotalRecords++
			result.FailedRecords++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: longer than %d bytes", lineNo, s.maxLineBytes))
			s.metrics.RecordInvalidReading("decode")
			return nil
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			return nil
		}
		result.TotalRecords++

		var raw models.RawReading
		if err := json.Unmarshal(line, &raw); err != nil {
			result.FailedRecords++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNo, err))
			s.metrics.RecordInvalidReading("decode")
			return nil
		}

		p, err := s.transformer.Transform(&raw)
		if err != nil {
			result.FailedRecords++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNo, err))
			var vErr *models.ValidationError
			if errors.As(err, &vErr) {
				s.metrics.RecordInvalidReading(vErr.Field)
			}
			return nil
		}

		s.metrics.RecordPresentation(string(p.Category), p.Mood.Score)
		result.Categories[string(p.Category)]++
		batch = append(batch, NewLookup(p, s.transformer.Now()))

		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := flush(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)

	s.logger.Info(ctx, "[INGEST_COMPLETE] Reading import completed", logging.Fields{
		"total_records":      result.TotalRecords,
		"successful_records": result.SuccessfulRecords,
		"failed_records":     result.FailedRecords,
		"duration_seconds":   result.Duration.Seconds(),
		"stage":              "COMPLETE",
	})

	return result, nil
}

// readLines calls fn for every line of r. Lines longer than maxBytes are skipped
// up to their newline and reported with oversize set and an empty line.
func readLines(r io.Reader, maxBytes int, fn func(line []byte, oversize bool) error) error {
	br := bufio.NewReader(r)
	var line []byte
	oversize := false

	for {
		chunk, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}

		if !oversize {
			if len(line)+len(chunk) > maxBytes {
				oversize = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if isPrefix {
			continue
		}

		if err := fn(line, oversize); err != nil {
			return err
		}
		line = line[:0]
		oversize = false
	}
}
