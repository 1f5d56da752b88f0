// Package assoc turns pairwise association measurements returned by the
// analysis service into ranked, queryable, and visualizable structures.
package assoc

import "strings"

// Pair is one pairwise association measurement as delivered on the wire.
// The column pair is unordered: {col1,col2} and {col2,col1} are the same
// measurement. Value is the association strength, conventionally Cramér's V
// in [0,1]. PValue and Details are optional and may be absent.
type Pair struct {
	Col1    string        `json:"col1"`
	Col2    string        `json:"col2"`
	Value   float64       `json:"value"`
	PValue  *float64      `json:"p_value,omitempty"`
	Details *DetailRecord `json:"details,omitempty"`
}

// Matches reports whether the pair covers the unordered column pair {a,b}.
func (p Pair) Matches(a, b string) bool {
	return (p.Col1 == a && p.Col2 == b) || (p.Col1 == b && p.Col2 == a)
}

// DetailRecord is the contingency breakdown attached to a pair: per
// category-pair observed vs expected co-occurrence counts under independence.
type DetailRecord struct {
	TotalObservations int                   `json:"total_observations,omitempty"`
	PValue            float64               `json:"p_value,omitempty"`
	Associations      []CategoryAssociation `json:"associations"`
}

// CategoryAssociation is one cell of the contingency breakdown. Impact is the
// signed relative deviation of observed from expected, in percent; the wire
// field is named "strength" for historical reasons.
type CategoryAssociation struct {
	Category1 string  `json:"category1"`
	Category2 string  `json:"category2"`
	Impact    float64 `json:"strength"`
	Observed  float64 `json:"observed"`
	Expected  float64 `json:"expected"`
}

// Result is the payload of a successful analysis response.
type Result struct {
	Pairs           []Pair                 `json:"pairs"`
	AverageStrength float64                `json:"average_strength"`
	ValidPairs      int                    `json:"valid_pairs"`
	PerEntityModels map[string]interface{} `json:"per_entity_models,omitempty"`
}

// StrengthBucket is the discrete qualitative label for an association value.
type StrengthBucket string

const (
	BucketVeryWeak   StrengthBucket = "Very Weak"
	BucketWeak       StrengthBucket = "Weak"
	BucketModerate   StrengthBucket = "Moderate"
	BucketStrong     StrengthBucket = "Strong"
	BucketVeryStrong StrengthBucket = "Very Strong"
)

// BucketFor maps a strength value to its bucket. Band lower bounds are
// inclusive: exactly 0.1 is Weak and exactly 0.7 is Very Strong.
func BucketFor(value float64) StrengthBucket {
	switch {
	case value < 0.1:
		return BucketVeryWeak
	case value < 0.3:
		return BucketWeak
	case value < 0.5:
		return BucketModerate
	case value < 0.7:
		return BucketStrong
	default:
		return BucketVeryStrong
	}
}

// Interpretation returns the qualitative reading shown next to a detail view.
func (b StrengthBucket) Interpretation() string {
	switch b {
	case BucketVeryWeak:
		return "These columns are essentially independent of each other."
	case BucketWeak:
		return "There is a slight association between these columns."
	case BucketModerate:
		return "These columns show a noticeable association."
	case BucketStrong:
		return "These columns are strongly associated."
	case BucketVeryStrong:
		return "These columns are almost completely dependent on each other."
	default:
		return ""
	}
}

// RankedResult is a pair annotated with its strength bucket.
type RankedResult struct {
	Pair   Pair           `json:"pair"`
	Bucket StrengthBucket `json:"bucket"`
}

// CleanLabel strips quote characters from a category label for display.
// Labels arrive from upstream serializers with stray quoting on occasion.
func CleanLabel(s string) string {
	return strings.Trim(strings.ReplaceAll(s, `"`, ""), "'")
}
