package app

import (
	"fmt"
	"strings"

	"gorelate/domain/assoc"
)

// BuildReport renders a markdown summary of one completed analysis. The UI
// converts it to HTML; the run repository stores the raw markdown.
func BuildReport(filename string, selected []string, result *assoc.Result, agg *assoc.Aggregate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Association analysis")
	if filename != "" {
		fmt.Fprintf(&b, ": %s", filename)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Analyzed **%d** columns: %s.\n\n", len(selected), strings.Join(selected, ", "))

	if len(result.Pairs) == 0 {
		b.WriteString("No relationships were found between the selected columns.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "- Pairs tested: **%d**\n", result.ValidPairs)
	fmt.Fprintf(&b, "- Average association strength: **%.3f** (%s)\n\n",
		result.AverageStrength, assoc.BucketFor(result.AverageStrength))

	b.WriteString("### Strongest relationships\n\n")
	b.WriteString("| Columns | Strength | Assessment |\n")
	b.WriteString("|---|---|---|\n")
	for _, r := range agg.TopN(assoc.TopStrongest) {
		fmt.Fprintf(&b, "| %s × %s | %.3f | %s |\n",
			r.Pair.Col1, r.Pair.Col2, r.Pair.Value, r.Bucket)
	}
	b.WriteString("\n")

	counts := make(map[assoc.StrengthBucket]int)
	for _, r := range agg.Ranking() {
		counts[r.Bucket]++
	}
	b.WriteString("### Strength distribution\n\n")
	for _, bucket := range []assoc.StrengthBucket{
		assoc.BucketVeryStrong, assoc.BucketStrong, assoc.BucketModerate,
		assoc.BucketWeak, assoc.BucketVeryWeak,
	} {
		if counts[bucket] > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", bucket, counts[bucket])
		}
	}

	return b.String()
}
