package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadData_CSV(t *testing.T) {
	path := writeTempCSV(t, "name,age\nalice,30\nbob,25\n")

	tbl, err := NewDataReader(path).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "alice", tbl.Rows[0]["name"])
	assert.Equal(t, "25", tbl.Rows[1]["age"])
}

func TestReadData_CSVShortRows(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	tbl, err := NewDataReader(path).ReadData()
	require.NoError(t, err)
	assert.Equal(t, "", tbl.Rows[0]["c"])
}

func TestReadData_MissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/data.csv").ReadData()
	assert.Error(t, err)
}

func TestReadData_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "score"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"alice", 10}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"bob", 20}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := NewDataReader(path).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "10", tbl.Rows[0]["score"])
}

func TestReadUpload_CSVStream(t *testing.T) {
	tbl, err := ReadUpload(strings.NewReader("a,b\n1,2\n"), "upload.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
}

func TestReadUpload_RejectsUnknownExtension(t *testing.T) {
	_, err := ReadUpload(strings.NewReader("data"), "upload.txt")
	assert.Error(t, err)
}
