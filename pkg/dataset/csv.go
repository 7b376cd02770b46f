package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/crosswalklabs/crosswalk/internal/logging"
)

// ReadCSV loads a CSV file into a Table. The first row is the header. Files
// ending in .gz are decompressed on the fly.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer logging.SafeCloseWithLogging(f,
		slog.Default().With(slog.String("component", "dataset_csv")),
		"csv_file")

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("error opening gzip stream: %w", err)
		}
		defer logging.SafeCloseWithLogging(gz,
			slog.Default().With(slog.String("component", "dataset_csv")),
			"gzip_reader")
		r = gz
	}

	table, err := ReadCSVFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return table, nil
}

// ReadCSVFrom reads CSV data with a header row from r. Header cells are
// trimmed and stripped of a UTF-8 BOM; data cells keep their raw value. Rows
// shorter than the header are padded with empty cells, longer rows are
// truncated to the header width.
func ReadCSVFrom(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset: empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = cleanHeaderCell(header[i])
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}

		row := make([]string, len(header))
		for i := range row {
			if i < len(record) {
				row[i] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return NewTable(header, rows)
}

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// cleanHeaderCell trims surrounding whitespace and strips a UTF-8 byte order
// mark, which spreadsheet exports often prepend to the first header cell.
func cleanHeaderCell(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
}
