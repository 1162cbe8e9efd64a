package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// maxBatchRows keeps a multi-row insert under PostgreSQL's bind parameter limit
const maxBatchRows = 1000

// HistoryRepository provides data access for the lookup history
type HistoryRepository interface {
	CreateLookup(ctx context.Context, lookup *models.Lookup) error
	CreateLookupsBatch(ctx context.Context, lookups []*models.Lookup) error
	ListLookups(ctx context.Context, filter LookupFilter) ([]*models.Lookup, int, error)
	SummarizeCity(ctx context.Context, city string) (*models.LookupSummary, error)
	HealthCheck(ctx context.Context) error
}

// LookupFilter defines filters for querying the history
type LookupFilter struct {
	City     *string
	Category *string
	Since    *time.Time
	Limit    int
	Offset   int
}

type historyRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewHistoryRepository creates a PostgreSQL-backed history repository
func NewHistoryRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) HistoryRepository {
	return &historyRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

const insertLookupQuery = `
	INSERT INTO weather_lookups (
		city, temperature_celsius, description, humidity_pct,
		category, mood_score, observed_at, created_at
	)
	VALUES (
		:city, :temperature_celsius, :description, :humidity_pct,
		:category, :mood_score, :observed_at, :created_at
	)
`

// CreateLookup appends a single lookup and sets its ID
func (r *historyRepository) CreateLookup(ctx context.Context, lookup *models.Lookup) error {
	query, args, err := r.db.DB().BindNamed(insertLookupQuery+" RETURNING id", lookup)
	if err != nil {
		return fmt.Errorf("failed to bind lookup: %w", err)
	}

	if err := r.db.GetContext(ctx, "insert_lookup", &lookup.ID, query, args...); err != nil {
		return fmt.Errorf("failed to create lookup: %w", err)
	}

	r.metrics.HistoryRecordsTotal.Inc()
	r.logger.Debug(ctx, "[REPO_CREATE_LOOKUP] Lookup recorded", logging.Fields{
		"id":       lookup.ID,
		"city":     lookup.City,
		"category": lookup.Category,
	})

	return nil
}

// CreateLookupsBatch inserts lookups in a single transaction using multi-row inserts
func (r *historyRepository) CreateLookupsBatch(ctx context.Context, lookups []*models.Lookup) error {
	if len(lookups) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		r.metrics.HistoryBatchSize.Observe(float64(len(lookups)))
		r.logger.Debug(ctx, "[REPO_BATCH_INSERT] Batch insert completed", logging.Fields{
			"count":       len(lookups),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}()

	err := r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		for _, chunk := range chunkLookups(lookups, maxBatchRows) {
			if _, err := tx.NamedExecContext(ctx, insertLookupQuery, chunk); err != nil {
				r.metrics.RecordDBError("batch_insert_error")
				return fmt.Errorf("failed to insert lookups: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.metrics.HistoryRecordsTotal.Add(float64(len(lookups)))
	return nil
}

func chunkLookups(lookups []*models.Lookup, size int) [][]*models.Lookup {
	var chunks [][]*models.Lookup
	for size < len(lookups) {
		lookups, chunks = lookups[size:], append(chunks, lookups[:size])
	}
	return append(chunks, lookups)
}

// buildLookupWhere renders the WHERE clause shared by the list and count queries
func buildLookupWhere(filter LookupFilter) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.City != nil {
		args = append(args, *filter.City)
		where += fmt.Sprintf(" AND lower(city) = lower($%d)", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	return where, args
}

// ListLookups returns the newest lookups first with the total match count
func (r *historyRepository) ListLookups(ctx context.Context, filter LookupFilter) ([]*models.Lookup, int, error) {
	where, args := buildLookupWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, "count_lookups", &total, "SELECT COUNT(*) FROM weather_lookups"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count lookups: %w", err)
	}

	query := `
		SELECT id, city, temperature_celsius, description, humidity_pct,
		       category, mood_score, observed_at, created_at
		FROM weather_lookups` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	lookups := []*models.Lookup{}
	if err := r.db.SelectContext(ctx, "list_lookups", &lookups, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list lookups: %w", err)
	}

	return lookups, total, nil
}

// SummarizeCity aggregates the history of one city
func (r *historyRepository) SummarizeCity(ctx context.Context, city string) (*models.LookupSummary, error) {
	query := `
		SELECT
			$1::text AS city,
			COUNT(*) AS lookup_count,
			AVG(mood_score) AS avg_mood_score,
			AVG(temperature_celsius) AS avg_temperature_celsius,
			COALESCE(mode() WITHIN GROUP (ORDER BY category), '') AS dominant_category
		FROM weather_lookups
		WHERE lower(city) = lower($1)
	`

	var summary models.LookupSummary
	err := r.db.GetContext(ctx, "summarize_city", &summary, query, city)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && summary.LookupCount == 0) {
		return nil, &NotFoundError{Resource: "weather_lookups", ID: city}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to summarize city: %w", err)
	}

	return &summary, nil
}

// HealthCheck performs a repository health check
func (r *historyRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
