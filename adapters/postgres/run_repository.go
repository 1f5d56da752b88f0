// Package postgres persists analysis run summaries.
package postgres

import (
	"context"
	"strings"
	"time"

	"gorelate/domain/core"
	"gorelate/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepositoryImpl implements ports.RunRepository for PostgreSQL.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository.
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// Migrate creates the analysis_runs table when it does not exist yet.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id TEXT PRIMARY KEY,
			columns TEXT NOT NULL,
			pair_count INTEGER NOT NULL,
			valid_pairs INTEGER NOT NULL,
			average_strength DOUBLE PRECISION NOT NULL,
			report TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// Save stores one completed run.
func (r *RunRepositoryImpl) Save(ctx context.Context, run *ports.AnalysisRun) error {
	if run.ID == "" {
		run.ID = core.RunID(core.NewID())
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.ColumnsJoined = strings.Join(run.Columns, ",")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (id, columns, pair_count, valid_pairs, average_strength, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.ColumnsJoined, run.PairCount, run.ValidPairs, run.AverageStrength, run.Report, run.CreatedAt)
	return err
}

// List returns the most recent runs, newest first.
func (r *RunRepositoryImpl) List(ctx context.Context, limit int) ([]*ports.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*ports.AnalysisRun
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, columns, pair_count, valid_pairs, average_strength, report, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	for _, run := range runs {
		if run.ColumnsJoined != "" {
			run.Columns = strings.Split(run.ColumnsJoined, ",")
		}
	}
	return runs, nil
}
