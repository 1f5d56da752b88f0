package ports

import (
	"context"
	"time"

	"gorelate/domain/core"
)

// AnalysisRun is the persisted summary of one completed analysis.
type AnalysisRun struct {
	ID              core.RunID `db:"id" json:"id"`
	Columns         []string   `db:"-" json:"columns"`
	ColumnsJoined   string     `db:"columns" json:"-"`
	PairCount       int        `db:"pair_count" json:"pair_count"`
	ValidPairs      int        `db:"valid_pairs" json:"valid_pairs"`
	AverageStrength float64    `db:"average_strength" json:"average_strength"`
	Report          string     `db:"report" json:"report"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// RunRepository stores completed analysis runs for later review. A nil
// repository is a valid configuration; the app then keeps no history.
type RunRepository interface {
	Save(ctx context.Context, run *AnalysisRun) error
	List(ctx context.Context, limit int) ([]*AnalysisRun, error)
}
