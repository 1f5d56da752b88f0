package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorelate/domain/table"
	"gorelate/internal/errors"
	"gorelate/ports"
)

// rowsOf zips equal-length columns into request rows.
func rowsOf(cols map[string][]string) []table.Row {
	n := 0
	for _, vs := range cols {
		n = len(vs)
	}
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{}
		for name, vs := range cols {
			rows[i][name] = vs[i]
		}
	}
	return rows
}

func alternating(a, b string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = a
		} else {
			out[i] = b
		}
	}
	return out
}

func TestAnalyze_ValidatesInput(t *testing.T) {
	engine := NewEngine()
	ctx := context.Background()

	_, err := engine.Analyze(ctx, ports.SubmitRequest{SelectedColumns: []string{"a", "b"}}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	rows := rowsOf(map[string][]string{"a": alternating("x", "y", 10)})
	_, err = engine.Analyze(ctx, ports.SubmitRequest{Data: rows, SelectedColumns: []string{"a"}}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAnalyze_PerfectlyAssociatedColumns(t *testing.T) {
	// colB is a function of colA, so Cramér's V should be 1.
	rows := rowsOf(map[string][]string{
		"colA": alternating("a", "b", 100),
		"colB": alternating("x", "y", 100),
	})

	result, err := NewEngine().Analyze(context.Background(), ports.SubmitRequest{
		Data:            rows,
		SelectedColumns: []string{"colA", "colB"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)

	p := result.Pairs[0]
	assert.True(t, p.Matches("colA", "colB"))
	assert.InDelta(t, 1.0, p.Value, 1e-9)
	require.NotNil(t, p.PValue)
	assert.Less(t, *p.PValue, 0.001)
	require.NotNil(t, p.Details)
	assert.Equal(t, 100, p.Details.TotalObservations)
	assert.Equal(t, 1, result.ValidPairs)
	assert.InDelta(t, 1.0, result.AverageStrength, 1e-9)
}

func TestAnalyze_IndependentColumns(t *testing.T) {
	// Every (a, x) combination appears equally often, so the chi-square
	// statistic is exactly zero.
	var a, b []string
	for i := 0; i < 100; i++ {
		a = append(a, []string{"p", "p", "q", "q"}[i%4])
		b = append(b, []string{"x", "y", "x", "y"}[i%4])
	}
	rows := rowsOf(map[string][]string{"a": a, "b": b})

	result, err := NewEngine().Analyze(context.Background(), ports.SubmitRequest{
		Data:            rows,
		SelectedColumns: []string{"a", "b"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Pairs, 1)
	assert.InDelta(t, 0.0, result.Pairs[0].Value, 1e-9)
}

func TestAnalyze_ConstantColumnYieldsNoPair(t *testing.T) {
	rows := rowsOf(map[string][]string{
		"constant": alternating("same", "same", 40),
		"varied":   alternating("x", "y", 40),
	})

	result, err := NewEngine().Analyze(context.Background(), ports.SubmitRequest{
		Data:            rows,
		SelectedColumns: []string{"constant", "varied"},
	}, nil)
	require.NoError(t, err)

	// A degenerate contingency table is skipped, not an error.
	assert.Empty(t, result.Pairs)
	assert.Equal(t, 0, result.ValidPairs)
	assert.Equal(t, 0.0, result.AverageStrength)
}

func TestAnalyze_ReportsProgressSteps(t *testing.T) {
	rows := rowsOf(map[string][]string{
		"a": alternating("p", "q", 20),
		"b": alternating("x", "y", 20),
	})

	var lastPct float64
	var lastSteps []string
	_, err := NewEngine().Analyze(context.Background(), ports.SubmitRequest{
		Data:            rows,
		SelectedColumns: []string{"a", "b"},
	}, func(pct float64, steps []string, _ float64) {
		lastPct = pct
		lastSteps = steps
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, lastPct)
	assert.Equal(t, analysisSteps, lastSteps)
}

func TestPreprocess_FillsAndReducesCardinality(t *testing.T) {
	values := make([]string, 0, 100)
	values = append(values, "", "common")
	for i := 2; i < 99; i++ {
		values = append(values, "common")
	}
	values = append(values, "rare")
	rows := rowsOf(map[string][]string{"c": values})

	columns := NewEngine().preprocess(rows, []string{"c"})
	got := columns["c"]
	require.Len(t, got, 100)

	// The leading gap back-fills from the first real value; the rare level
	// folds into "Other".
	assert.Equal(t, "common", got[0])
	assert.Equal(t, "Other", got[99])
}

func TestForwardBackwardFill(t *testing.T) {
	values := []string{"", "a", "", "b", ""}
	forwardFill(values)
	assert.Equal(t, []string{"", "a", "a", "b", "b"}, values)
	backwardFill(values)
	assert.Equal(t, []string{"a", "a", "a", "b", "b"}, values)
}

func TestAnalyze_ThreeColumns(t *testing.T) {
	n := 60
	a := alternating("p", "q", n)
	b := alternating("x", "y", n)
	c := make([]string, n)
	for i := range c {
		c[i] = fmt.Sprintf("g%d", (i/20)%3)
	}
	rows := rowsOf(map[string][]string{"a": a, "b": b, "c": c})

	result, err := NewEngine().Analyze(context.Background(), ports.SubmitRequest{
		Data:            rows,
		SelectedColumns: []string{"a", "b", "c"},
	}, nil)
	require.NoError(t, err)

	// All three unordered pairs are testable here.
	assert.Len(t, result.Pairs, 3)
	// Pairs arrive strongest first.
	for i := 1; i < len(result.Pairs); i++ {
		assert.GreaterOrEqual(t, result.Pairs[i-1].Value, result.Pairs[i].Value)
	}
}
