package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVFrom(t *testing.T) {
	input := "name,city\n123 Main St,Springfield\n456 Oak Ave,Shelbyville\n"

	table, err := ReadCSVFrom(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "city"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"123 Main St", "Springfield"}, table.Rows[0])
}

func TestReadCSVFrom_CleansHeaderOnly(t *testing.T) {
	// Spreadsheet exports prepend a BOM and pad header cells; data cells
	// must keep their raw value so join-key trimming stays the engine's call.
	input := "\uFEFFname , city\n padded ,Springfield\n"

	table, err := ReadCSVFrom(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "city"}, table.Columns)
	assert.Equal(t, []string{" padded ", "Springfield"}, table.Rows[0])
}

func TestReadCSVFrom_PadsAndTruncatesRows(t *testing.T) {
	input := "a,b,c\n1,2\n1,2,3,4\n"

	table, err := ReadCSVFrom(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"1", "2", ""}, table.Rows[0], "Short rows pad with empty cells")
	assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1], "Long rows truncate to the header width")
}

func TestReadCSVFrom_QuotedCells(t *testing.T) {
	input := "name,notes\n\"Main St, Apt 4\",\"line one\nline two\"\n"

	table, err := ReadCSVFrom(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Main St, Apt 4", table.Rows[0][0])
	assert.Equal(t, "line one\nline two", table.Rows[0][1])
}

func TestReadCSVFrom_EmptyInput(t *testing.T) {
	_, err := ReadCSVFrom(strings.NewReader(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty CSV input")
}

func TestReadCSVFrom_HeaderOnly(t *testing.T) {
	table, err := ReadCSVFrom(strings.NewReader("name,city\n"))

	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stops.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,city\na,b\n"), 0o644))

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "city"}, table.Columns)
	assert.Equal(t, 1, table.Len())
}

func TestReadCSV_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stops.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("name,city\na,b\nc,d\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"c", "d"}, table.Rows[1])
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening CSV file")
}

func TestWriteCSV(t *testing.T) {
	table, err := NewTable([]string{"name", "city"}, [][]string{
		{"a", "b"},
		{"Main St, Apt 4", "d"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	assert.Equal(t, "name,city\na,b\n\"Main St, Apt 4\",d\n", buf.String())

	// The output must load back unchanged.
	reread, err := ReadCSVFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, reread.Columns)
	assert.Equal(t, table.Rows, reread.Rows)
}
