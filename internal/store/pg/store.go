// Package pg persists run summaries so accuracy can be tracked across
// runs of the same plan.
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY,
	plan_name TEXT NOT NULL,
	engine TEXT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	total_queries INT NOT NULL,
	total_products INT NOT NULL,
	total_matches INT NOT NULL,
	total_mismatches INT NOT NULL,
	failed_queries INT NOT NULL,
	average_accuracy DOUBLE PRECISION NOT NULL,
	first_page_coverage DOUBLE PRECISION NOT NULL
)`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// RunRecord is one persisted run summary.
type RunRecord struct {
	ID                uuid.UUID
	PlanName          string
	Engine            string
	StartedAt         time.Time
	TotalQueries      int
	TotalProducts     int
	TotalMatches      int
	TotalMismatches   int
	FailedQueries     int
	AverageAccuracy   float64
	FirstPageCoverage float64
}

func (s *Store) SaveRun(ctx context.Context, rec RunRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO runs (
			id, plan_name, engine, started_at,
			total_queries, total_products, total_matches, total_mismatches,
			failed_queries, average_accuracy, first_page_coverage
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.PlanName, rec.Engine, rec.StartedAt,
		rec.TotalQueries, rec.TotalProducts, rec.TotalMatches, rec.TotalMismatches,
		rec.FailedQueries, rec.AverageAccuracy, rec.FirstPageCoverage,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs for a plan, newest first. An
// empty planName lists across plans.
func (s *Store) ListRuns(ctx context.Context, planName string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, plan_name, engine, started_at,
		       total_queries, total_products, total_matches, total_mismatches,
		       failed_queries, average_accuracy, first_page_coverage
		FROM runs
		WHERE ($1 = '' OR plan_name = $1)
		ORDER BY started_at DESC
		LIMIT $2`,
		planName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.ID, &r.PlanName, &r.Engine, &r.StartedAt,
			&r.TotalQueries, &r.TotalProducts, &r.TotalMatches, &r.TotalMismatches,
			&r.FailedQueries, &r.AverageAccuracy, &r.FirstPageCoverage,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
