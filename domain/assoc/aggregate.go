package assoc

import "sort"

// Default top-N sizes for the two ranked views.
const (
	TopStrongest = 5  // per-category "strongest relationships" lists
	TopOverview  = 10 // the overview chart
)

// MatrixCell is one entry of the association matrix. Diagonal cells carry
// value 1 and no details; cells without a matching pair carry value 0.
type MatrixCell struct {
	Value   float64       `json:"value"`
	Details *DetailRecord `json:"details,omitempty"`
}

// Matrix is a square lookup keyed by (rowColumn, colColumn) over exactly the
// selected columns. Symmetric by construction: both orderings of a pair map
// to the same record.
type Matrix map[string]map[string]MatrixCell

// Aggregate holds the derived views over one analysis response. It is built
// once per completed analysis and read freely afterwards; it never mutates
// its inputs.
type Aggregate struct {
	columns []string
	ranking []RankedResult
	matrix  Matrix
}

// NewAggregate builds the ranking and matrix for a set of pairwise results
// over the selected columns. Zero pairs is a valid "no relationships found"
// state, not an error: the ranking is empty and the matrix identity-only.
func NewAggregate(pairs []Pair, selected []string) *Aggregate {
	return &Aggregate{
		columns: append([]string(nil), selected...),
		ranking: rank(pairs),
		matrix:  buildMatrix(pairs, selected),
	}
}

// rank sorts pairs by strength descending. The sort is stable, so ties keep
// their original input order.
func rank(pairs []Pair) []RankedResult {
	ranked := make([]RankedResult, len(pairs))
	for i, p := range pairs {
		ranked[i] = RankedResult{Pair: p, Bucket: BucketFor(p.Value)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Pair.Value > ranked[j].Pair.Value
	})
	return ranked
}

func buildMatrix(pairs []Pair, selected []string) Matrix {
	m := make(Matrix, len(selected))
	for _, r := range selected {
		m[r] = make(map[string]MatrixCell, len(selected))
		for _, c := range selected {
			if r == c {
				m[r][c] = MatrixCell{Value: 1}
			} else {
				m[r][c] = MatrixCell{Value: 0}
			}
		}
	}
	// Fill both orderings from each pair so symmetry is enforced rather than
	// assumed. Pairs naming columns outside the selection are ignored.
	for _, p := range pairs {
		if _, ok := m[p.Col1]; !ok {
			continue
		}
		if _, ok := m[p.Col2]; !ok {
			continue
		}
		cell := MatrixCell{Value: p.Value, Details: p.Details}
		m[p.Col1][p.Col2] = cell
		m[p.Col2][p.Col1] = cell
	}
	return m
}

// Columns returns the selected columns the matrix is keyed over, in
// selection order.
func (a *Aggregate) Columns() []string {
	return a.columns
}

// Ranking returns all pairs sorted by strength descending, stable on ties.
func (a *Aggregate) Ranking() []RankedResult {
	return a.ranking
}

// TopN returns the first n ranked results. It is a view over the ranking,
// not a mutation of it.
func (a *Aggregate) TopN(n int) []RankedResult {
	if n > len(a.ranking) {
		n = len(a.ranking)
	}
	if n < 0 {
		n = 0
	}
	return a.ranking[:n]
}

// Matrix returns the symmetric strength matrix.
func (a *Aggregate) Matrix() Matrix {
	return a.matrix
}

// Cell looks up one matrix entry. The second return is false when either
// column is not part of the selection.
func (a *Aggregate) Cell(row, col string) (MatrixCell, bool) {
	r, ok := a.matrix[row]
	if !ok {
		return MatrixCell{}, false
	}
	cell, ok := r[col]
	return cell, ok
}
