// Package app wires the domain components into user-facing operations.
package app

import (
	"context"
	"log"

	"gorelate/domain/assoc"
	"gorelate/domain/core"
	"gorelate/internal/errors"
	"gorelate/internal/session"
	"gorelate/ports"
)

// AnalysisService runs an association analysis for a session: validates the
// selection, submits to the analyzer boundary, aggregates the response, and
// installs the snapshot. The run repository is optional; with nil the
// service keeps no history.
type AnalysisService struct {
	analyzer ports.Analyzer
	runs     ports.RunRepository
}

// NewAnalysisService creates the service.
func NewAnalysisService(analyzer ports.Analyzer, runs ports.RunRepository) *AnalysisService {
	return &AnalysisService{analyzer: analyzer, runs: runs}
}

// Run performs one full analysis for the session's current dataset and
// selection. It blocks until the analyzer reaches a terminal state; progress
// is mirrored into the session for the UI to poll.
func (s *AnalysisService) Run(ctx context.Context, sess *session.Session) error {
	tbl, filename := sess.Dataset()
	if tbl.IsEmpty() {
		return errors.InvalidInput("upload a dataset before running an analysis")
	}
	sel := sess.Selection()
	if err := sel.Validate(tbl); err != nil {
		return errors.InvalidInput(err.Error())
	}

	sess.SetProgress(session.Progress{Running: true})

	req := ports.SubmitRequest{
		Data:            tbl.Rows,
		SelectedColumns: sel,
	}
	result, err := s.analyzer.Analyze(ctx, req, func(pct float64, steps []string, eta float64) {
		sess.SetProgress(session.Progress{
			Running:        true,
			Percent:        pct,
			StepsCompleted: steps,
			ETASeconds:     eta,
		})
	})
	if err != nil {
		sess.SetProgress(session.Progress{Error: err.Error()})
		return err
	}

	agg := assoc.NewAggregate(result.Pairs, sel)
	report := BuildReport(filename, sel, result, agg)

	sess.SetSnapshot(&session.Snapshot{
		Result:      result,
		Aggregate:   agg,
		Report:      report,
		CompletedAt: core.Now(),
	})

	s.persist(ctx, sel, result, report)
	return nil
}

// History returns the most recent persisted runs, newest first. Without a
// configured repository it returns an empty list.
func (s *AnalysisService) History(ctx context.Context, limit int) ([]*ports.AnalysisRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.List(ctx, limit)
}

// persist records the run summary when a repository is configured. History
// is best-effort: a storage failure never fails the analysis.
func (s *AnalysisService) persist(ctx context.Context, sel []string, result *assoc.Result, report string) {
	if s.runs == nil {
		return
	}
	run := &ports.AnalysisRun{
		Columns:         sel,
		PairCount:       len(result.Pairs),
		ValidPairs:      result.ValidPairs,
		AverageStrength: result.AverageStrength,
		Report:          report,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		log.Printf("[AnalysisService] Failed to persist run: %v", err)
	}
}
