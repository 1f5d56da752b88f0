package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecords(t *testing.T) {
	tbl, err := FromRecords(
		[]string{" name ", "", "age"},
		[][]string{
			{"alice", "x", "30", "extra"},
			{"bob"},
		},
	)
	require.NoError(t, err)

	// Headers are trimmed and blank ones get positional names.
	assert.Equal(t, []string{"name", "column_2", "age"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)

	// Long records drop trailing cells, short ones pad with empties.
	assert.Equal(t, "30", tbl.Rows[0]["age"])
	assert.Equal(t, "bob", tbl.Rows[1]["name"])
	assert.Equal(t, "", tbl.Rows[1]["age"])
}

func TestFromRecords_NoColumns(t *testing.T) {
	_, err := FromRecords(nil, nil)
	assert.Error(t, err)
}

func TestIsEmpty(t *testing.T) {
	var nilTable *Table
	assert.True(t, nilTable.IsEmpty())
	assert.True(t, (&Table{Columns: []string{"a"}}).IsEmpty())
	assert.False(t, (&Table{Columns: []string{"a"}, Rows: []Row{{"a": "1"}}}).IsEmpty())
}

func TestColumnValues(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a"},
		Rows:    []Row{{"a": "1"}, {"a": ""}, {}},
	}
	assert.Equal(t, []string{"1", "", ""}, tbl.ColumnValues("a"))
	assert.Equal(t, []string{"", "", ""}, tbl.ColumnValues("missing"))
}

func TestSelection_Validate(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b", "c"}}

	assert.NoError(t, Selection{"a", "b"}.Validate(tbl))
	assert.NoError(t, Selection{"a", "b", "c"}.Validate(tbl))

	assert.Error(t, Selection{}.Validate(tbl))
	assert.Error(t, Selection{"a"}.Validate(tbl))
	assert.Error(t, Selection{"a", "a"}.Validate(tbl))
	assert.Error(t, Selection{"a", "missing"}.Validate(tbl))
}

func TestSelection_Contains(t *testing.T) {
	sel := Selection{"a", "b"}
	assert.True(t, sel.Contains("a"))
	assert.False(t, sel.Contains("c"))
}
