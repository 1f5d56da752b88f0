package column

import (
	"math"

	"gorelate/domain/table"
)

const (
	// SampleSize caps how many non-empty values per column feed the
	// classifier. Classification depends only on this prefix of the data.
	SampleSize = 100

	// categoricalThreshold is the distinct-value count below which a column
	// is treated as categorical rather than free-form.
	categoricalThreshold = 10
)

// A rule inspects a column sample and either claims a type or passes. Rules
// run in fixed precedence order; the first match wins. Keeping the precedence
// as a data structure makes it testable and extensible without restructuring
// control flow.
type rule struct {
	name  string
	apply func(sample []string) (ColumnType, bool)
}

var rules = []rule{
	{"empty", ruleEmpty},
	{"datetime", ruleDatetime},
	{"percentage", rulePercentage},
	{"numeric", ruleNumeric},
	{"boolean", ruleBoolean},
	{"categorical", ruleCategorical},
	{"text", ruleText},
}

// Classify infers one semantic type per column of the table. It is a pure
// function of the input rows: no side effects, safe for concurrent use.
func Classify(t *table.Table) TypeMap {
	types := make(TypeMap, len(t.Columns))
	for _, col := range t.Columns {
		types[col] = classifySample(sampleColumn(t, col))
	}
	return types
}

// classifySample runs the ordered rule list over one column sample.
func classifySample(sample []string) ColumnType {
	for _, r := range rules {
		if t, ok := r.apply(sample); ok {
			return t
		}
	}
	// ruleText always fires; this is unreachable while the rule list ends
	// with it.
	return TypeText
}

// sampleColumn takes up to the first SampleSize non-empty values of a column.
func sampleColumn(t *table.Table, col string) []string {
	sample := make([]string, 0, SampleSize)
	for _, row := range t.Rows {
		v := row[col]
		if v == "" {
			continue
		}
		sample = append(sample, v)
		if len(sample) >= SampleSize {
			break
		}
	}
	return sample
}

// ruleEmpty: a column with zero non-empty sampled values is always empty,
// regardless of anything the unsampled data might contain.
func ruleEmpty(sample []string) (ColumnType, bool) {
	if len(sample) == 0 {
		return TypeEmpty, true
	}
	return "", false
}

// ruleDatetime: any date-like value marks the whole column datetime, even
// when every other value is numeric.
func ruleDatetime(sample []string) (ColumnType, bool) {
	for _, v := range sample {
		if IsDateLike(v) {
			return TypeDatetime, true
		}
	}
	return "", false
}

// rulePercentage: one percentage-formatted value puts the column on the
// percentage path. Distinct magnitudes are counted over the successfully
// parsed percentage values only; non-percentage values in a mixed column are
// dropped once this rule fires. That can misread mixed-format columns, but
// the behavior is kept as observed upstream.
func rulePercentage(sample []string) (ColumnType, bool) {
	hasPercentage := false
	for _, v := range sample {
		if IsPercentage(v) {
			hasPercentage = true
			break
		}
	}
	if !hasPercentage {
		return "", false
	}

	distinct := make(map[float64]struct{})
	for _, v := range sample {
		if !IsPercentage(v) {
			continue
		}
		f := ParsePercentage(v)
		if math.IsNaN(f) {
			continue
		}
		distinct[f] = struct{}{}
	}
	if len(distinct) < categoricalThreshold {
		return TypeCategoricalNumeric, true
	}
	return TypeNumeric, true
}

// ruleNumeric: every sampled value must parse as a float, not just some.
// Distinct counting happens over the raw strings, so "1" and "1.0" stay
// distinct values.
func ruleNumeric(sample []string) (ColumnType, bool) {
	for _, v := range sample {
		if !IsNumeric(v) {
			return "", false
		}
	}
	if distinctCount(sample) < categoricalThreshold {
		return TypeCategoricalNumeric, true
	}
	return TypeNumeric, true
}

// ruleBoolean: all sampled values are boolean literals. Runs after the
// numeric rule, so an all-0/1 column with ten-plus distinct values never
// reaches here.
func ruleBoolean(sample []string) (ColumnType, bool) {
	for _, v := range sample {
		if !IsBooleanLike(v) {
			return "", false
		}
	}
	return TypeBoolean, true
}

// ruleCategorical: few distinct raw values means a label-like column.
func ruleCategorical(sample []string) (ColumnType, bool) {
	if distinctCount(sample) < categoricalThreshold {
		return TypeCategorical, true
	}
	return "", false
}

// ruleText is the terminal rule and always fires.
func ruleText([]string) (ColumnType, bool) {
	return TypeText, true
}

func distinctCount(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
