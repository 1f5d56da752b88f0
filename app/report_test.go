package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gorelate/domain/assoc"
)

func TestBuildReport(t *testing.T) {
	result := &assoc.Result{
		Pairs: []assoc.Pair{
			{Col1: "age", Col2: "income", Value: 0.72},
			{Col1: "age", Col2: "region", Value: 0.15},
		},
		AverageStrength: 0.435,
		ValidPairs:      2,
	}
	agg := assoc.NewAggregate(result.Pairs, []string{"age", "income", "region"})

	report := BuildReport("people.csv", []string{"age", "income", "region"}, result, agg)

	assert.Contains(t, report, "people.csv")
	assert.Contains(t, report, "**3** columns")
	assert.Contains(t, report, "Pairs tested: **2**")
	assert.Contains(t, report, "0.435")
	assert.Contains(t, report, "Strongest relationships")
	assert.Contains(t, report, "age × income")
	assert.Contains(t, report, string(assoc.BucketVeryStrong))
	assert.Contains(t, report, "Strength distribution")
}

func TestBuildReport_NoPairs(t *testing.T) {
	result := &assoc.Result{}
	agg := assoc.NewAggregate(nil, []string{"a", "b"})

	report := BuildReport("", []string{"a", "b"}, result, agg)
	assert.Contains(t, report, "No relationships were found")
	assert.NotContains(t, report, "Strongest relationships")
}
