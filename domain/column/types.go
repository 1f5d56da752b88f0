// Package column infers a semantic type for every column of an uploaded
// table from a sample of its raw string values.
package column

import "fmt"

// ColumnType is the inferred semantic category of a column, distinct from the
// raw storage type (all raw values are strings).
type ColumnType string

const (
	TypeEmpty              ColumnType = "empty"
	TypeDatetime           ColumnType = "datetime"
	TypeNumeric            ColumnType = "numeric"
	TypeCategoricalNumeric ColumnType = "categorical-numeric"
	TypeCategorical        ColumnType = "categorical"
	TypeBoolean            ColumnType = "boolean"
	TypeText               ColumnType = "text"
)

// AllTypes enumerates every column type. Display metadata is checked for
// completeness against this list at package init.
var AllTypes = []ColumnType{
	TypeEmpty,
	TypeDatetime,
	TypeNumeric,
	TypeCategoricalNumeric,
	TypeCategorical,
	TypeBoolean,
	TypeText,
}

// TypeMap maps column name to its inferred type, one entry per column.
type TypeMap map[string]ColumnType

// DisplayMeta is the UI-facing metadata for a column type.
type DisplayMeta struct {
	Label string
	Icon  string
	Color string
}

var displayMeta = map[ColumnType]DisplayMeta{
	TypeEmpty:              {Label: "Empty", Icon: "∅", Color: "#9ca3af"},
	TypeDatetime:           {Label: "Date/Time", Icon: "📅", Color: "#8b5cf6"},
	TypeNumeric:            {Label: "Numeric", Icon: "#", Color: "#2563eb"},
	TypeCategoricalNumeric: {Label: "Categorical (numeric)", Icon: "#≡", Color: "#0891b2"},
	TypeCategorical:        {Label: "Categorical", Icon: "≡", Color: "#16a34a"},
	TypeBoolean:            {Label: "Boolean", Icon: "⊻", Color: "#d97706"},
	TypeText:               {Label: "Text", Icon: "Aa", Color: "#6b7280"},
}

func init() {
	// Every type must have display metadata; a hole here means a new type was
	// added without updating the map.
	for _, t := range AllTypes {
		if _, ok := displayMeta[t]; !ok {
			panic(fmt.Sprintf("column: missing display metadata for type %q", t))
		}
	}
	if len(displayMeta) != len(AllTypes) {
		panic("column: display metadata contains unknown types")
	}
}

// Display returns the display metadata for a column type. Unknown types fall
// back to the text metadata.
func Display(t ColumnType) DisplayMeta {
	if meta, ok := displayMeta[t]; ok {
		return meta
	}
	return displayMeta[TypeText]
}

// Categorizable reports whether columns of this type are offered for
// association analysis in the selection UI.
func (t ColumnType) Categorizable() bool {
	switch t {
	case TypeCategorical, TypeCategoricalNumeric, TypeBoolean:
		return true
	}
	return false
}

// String returns the wire representation of the type.
func (t ColumnType) String() string {
	return string(t)
}
