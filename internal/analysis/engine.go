// Package analysis implements the association analysis service: pairwise
// chi-square tests with Cramér's V strength and contingency details over
// selected columns. It can run in-process behind the Analyzer port or be
// exposed as a standalone JSON service (see server.go).
package analysis

import (
	"context"
	"log"
	"math"
	"runtime"
	"sort"

	"gorelate/domain/assoc"
	"gorelate/domain/table"
	"gorelate/internal/errors"
	"gorelate/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// cardinalityThreshold folds category levels rarer than this share of the
// column into "Other" before testing, keeping contingency tables dense.
const cardinalityThreshold = 0.05

// Step names reported while an analysis is in flight.
var analysisSteps = []string{
	"Preprocessing Data",
	"Computing Pairwise Associations",
	"Computing Average Association",
}

// Engine computes association results locally. It is stateless and safe for
// concurrent use.
type Engine struct {
	// MaxParallel bounds concurrent pair computations; zero means NumCPU.
	MaxParallel int
}

// NewEngine creates an analysis engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze implements ports.Analyzer. It validates the request, preprocesses
// the selected columns, runs a chi-square test per column pair, and returns
// the full result as one snapshot.
func (e *Engine) Analyze(ctx context.Context, req ports.SubmitRequest, onProgress ports.ProgressFunc) (*assoc.Result, error) {
	if len(req.Data) == 0 {
		return nil, errors.InvalidInput("input data is empty or not properly formatted")
	}
	if len(req.SelectedColumns) < table.MinSelection {
		return nil, errors.InvalidInput("select at least two columns for analysis")
	}

	report := func(step int) {
		if onProgress != nil {
			pct := float64(step) / float64(len(analysisSteps)) * 100
			onProgress(pct, analysisSteps[:step], 0)
		}
	}

	columns := e.preprocess(req.Data, req.SelectedColumns)
	report(1)

	pairs, err := e.pairwise(ctx, columns, req.SelectedColumns)
	if err != nil {
		return nil, err
	}
	report(2)

	strengths := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		strengths = append(strengths, p.Value)
	}
	average := 0.0
	if len(strengths) > 0 {
		average, _ = stats.Mean(strengths)
	}
	report(3)

	log.Printf("[AnalysisEngine] Computed %d pairs over %d columns, average strength %.4f",
		len(pairs), len(req.SelectedColumns), average)

	return &assoc.Result{
		Pairs:           pairs,
		AverageStrength: average,
		ValidPairs:      len(pairs),
	}, nil
}

// preprocess extracts the selected columns, forward-fills then back-fills
// missing values, and folds rare category levels into "Other".
func (e *Engine) preprocess(rows []table.Row, selected []string) map[string][]string {
	columns := make(map[string][]string, len(selected))
	for _, col := range selected {
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = row[col]
		}
		forwardFill(values)
		backwardFill(values)
		columns[col] = reduceCardinality(values)
	}
	return columns
}

func forwardFill(values []string) {
	last := ""
	for i, v := range values {
		if v == "" {
			values[i] = last
		} else {
			last = v
		}
	}
}

func backwardFill(values []string) {
	next := ""
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] == "" {
			values[i] = next
		} else {
			next = values[i]
		}
	}
}

// reduceCardinality replaces levels with relative frequency below the
// threshold by "Other".
func reduceCardinality(values []string) []string {
	if len(values) == 0 {
		return values
	}
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	total := float64(len(values))
	out := make([]string, len(values))
	for i, v := range values {
		if float64(counts[v])/total < cardinalityThreshold {
			out[i] = "Other"
		} else {
			out[i] = v
		}
	}
	return out
}

// pairwise runs a chi-square test for every unordered column pair. Pairs
// whose contingency table is degenerate (a single row or column) are
// skipped; a missing pair is a normal outcome, not an error.
func (e *Engine) pairwise(ctx context.Context, columns map[string][]string, selected []string) ([]assoc.Pair, error) {
	type pairIdx struct{ a, b string }
	var combos []pairIdx
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			combos = append(combos, pairIdx{selected[i], selected[j]})
		}
	}

	results := make([]*assoc.Pair, len(combos))
	g, ctx := errgroup.WithContext(ctx)
	limit := e.MaxParallel
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)

	for idx, combo := range combos {
		idx, combo := idx, combo
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[idx] = testPair(combo.a, combo.b, columns[combo.a], columns[combo.b])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pairs := make([]assoc.Pair, 0, len(results))
	for _, p := range results {
		if p != nil {
			pairs = append(pairs, *p)
		}
	}
	// Strongest first on the wire, like the upstream service. The aggregator
	// re-ranks anyway; this keeps raw responses readable.
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Value > pairs[j].Value })
	return pairs, nil
}

// testPair builds the contingency table for two columns and derives the
// chi-square statistic, p-value, Cramér's V, and the per-category detail
// record. Returns nil when the pair cannot be tested.
func testPair(colA, colB string, a, b []string) *assoc.Pair {
	n := len(a)
	if n == 0 || n != len(b) {
		return nil
	}

	crosstab := make(map[string]map[string]float64)
	rowTotals := make(map[string]float64)
	colTotals := make(map[string]float64)
	for i := 0; i < n; i++ {
		if crosstab[a[i]] == nil {
			crosstab[a[i]] = make(map[string]float64)
		}
		crosstab[a[i]][b[i]]++
		rowTotals[a[i]]++
		colTotals[b[i]]++
	}

	rows := sortedKeys(rowTotals)
	cols := sortedKeys(colTotals)
	dof := (len(rows) - 1) * (len(cols) - 1)
	minDim := len(rows)
	if len(cols) < minDim {
		minDim = len(cols)
	}
	if dof == 0 || minDim < 2 {
		return nil
	}

	total := float64(n)
	chi2 := 0.0
	details := &assoc.DetailRecord{TotalObservations: n}
	for _, rv := range rows {
		for _, cv := range cols {
			observed := crosstab[rv][cv]
			expected := rowTotals[rv] * colTotals[cv] / total
			if expected == 0 {
				continue
			}
			diff := observed - expected
			chi2 += diff * diff / expected
			details.Associations = append(details.Associations, assoc.CategoryAssociation{
				Category1: rv,
				Category2: cv,
				Observed:  observed,
				Expected:  expected,
				Impact:    diff / expected * 100,
			})
		}
	}

	pValue := distuv.ChiSquared{K: float64(dof)}.Survival(chi2)
	cramersV := math.Sqrt(chi2 / (total * float64(minDim-1)))
	if math.IsNaN(cramersV) || math.IsInf(cramersV, 0) {
		return nil
	}
	details.PValue = pValue

	return &assoc.Pair{
		Col1:    colA,
		Col2:    colB,
		Value:   cramersV,
		PValue:  &pValue,
		Details: details,
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
