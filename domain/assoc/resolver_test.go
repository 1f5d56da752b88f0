package assoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail_Resolution(t *testing.T) {
	det := &DetailRecord{
		TotalObservations: 120,
		PValue:            0.003,
		Associations: []CategoryAssociation{
			{Category1: `"M"`, Category2: "'Yes'", Observed: 40, Expected: 30, Impact: 33.3},
		},
	}
	pairs := []Pair{
		{Col1: "gender", Col2: "purchased", Value: 0.45, Details: det},
		{Col1: "gender", Col2: "region", Value: 0.2},
	}
	agg := NewAggregate(pairs, []string{"gender", "purchased", "region"})

	rec, ok := agg.Detail("gender", "purchased")
	require.True(t, ok)
	assert.Same(t, det, rec)

	// Both orderings resolve to the same record.
	rec2, ok := agg.Detail("purchased", "gender")
	require.True(t, ok)
	assert.Same(t, rec, rec2)

	// A pair delivered without details resolves to absent.
	_, ok = agg.Detail("gender", "region")
	assert.False(t, ok)

	// Diagonal and missing-pair cells resolve to absent.
	_, ok = agg.Detail("gender", "gender")
	assert.False(t, ok)
	_, ok = agg.Detail("purchased", "region")
	assert.False(t, ok)

	// Columns outside the selection resolve to absent.
	_, ok = agg.Detail("gender", "unknown")
	assert.False(t, ok)
}

func TestNewDetailView(t *testing.T) {
	rec := &DetailRecord{
		TotalObservations: 200,
		PValue:            0.01,
		Associations: []CategoryAssociation{
			{Category1: `"A"`, Category2: "'B'", Observed: 60, Expected: 50, Impact: 20},
			{Category1: "C", Category2: "D", Observed: 10, Expected: 25, Impact: -60},
		},
	}

	view := NewDetailView(rec, BucketModerate)
	assert.Equal(t, 200, view.TotalObservations)
	assert.Equal(t, 0.01, view.PValue)
	assert.Equal(t, BucketModerate.Interpretation(), view.Interpretation)
	require.Len(t, view.Categories, 2)

	first := view.Categories[0]
	assert.Equal(t, "A", first.Category1)
	assert.Equal(t, "B", first.Category2)
	assert.Equal(t, "+20.0%", first.ImpactLabel)
	assert.True(t, first.Positive)

	second := view.Categories[1]
	assert.Equal(t, "-60.0%", second.ImpactLabel)
	assert.False(t, second.Positive)
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "Male", CleanLabel(`"Male"`))
	assert.Equal(t, "Male", CleanLabel("'Male'"))
	assert.Equal(t, "Male", CleanLabel("Male"))
	assert.Equal(t, "a'b", CleanLabel("a'b"))
}
