package assoc

import "fmt"

// Detail resolves the contingency breakdown for a selected pair or matrix
// cell. The record was attached by the analysis service; resolution only
// surfaces it. Diagonal cells and zero-valued missing-pair cells resolve to
// absent, as does any pair the service returned without details.
func (a *Aggregate) Detail(row, col string) (*DetailRecord, bool) {
	if row == col {
		return nil, false
	}
	cell, ok := a.Cell(row, col)
	if !ok || cell.Details == nil {
		return nil, false
	}
	return cell.Details, true
}

// CategoryView is one contingency row prepared for display: cleaned labels,
// a sign-colored impact label, and the raw counts.
type CategoryView struct {
	Category1   string
	Category2   string
	Observed    float64
	Expected    float64
	Impact      float64
	ImpactLabel string
	Positive    bool
}

// DetailView is a DetailRecord prepared for rendering, paired with the
// qualitative interpretation derived from the pair's overall strength
// bucket. This is a formatting layer over the resolved record, not a new
// computation.
type DetailView struct {
	TotalObservations int
	PValue            float64
	Interpretation    string
	Categories        []CategoryView
}

// NewDetailView formats a resolved detail record for display.
func NewDetailView(rec *DetailRecord, bucket StrengthBucket) DetailView {
	view := DetailView{
		TotalObservations: rec.TotalObservations,
		PValue:            rec.PValue,
		Interpretation:    bucket.Interpretation(),
		Categories:        make([]CategoryView, 0, len(rec.Associations)),
	}
	for _, ca := range rec.Associations {
		view.Categories = append(view.Categories, CategoryView{
			Category1:   CleanLabel(ca.Category1),
			Category2:   CleanLabel(ca.Category2),
			Observed:    ca.Observed,
			Expected:    ca.Expected,
			Impact:      ca.Impact,
			ImpactLabel: impactLabel(ca.Impact),
			Positive:    ca.Impact >= 0,
		})
	}
	return view
}

// impactLabel renders the signed relative deviation, e.g. "+12.5%".
func impactLabel(impact float64) string {
	return fmt.Sprintf("%+.1f%%", impact)
}
