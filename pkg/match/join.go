package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crosswalklabs/crosswalk/pkg/dataset"
)

// Column names the assembler adds to joined output.
const (
	ColumnLeftValue    = "left_value"
	ColumnMatchedValue = "matched_value"
	ColumnDistance     = "distance"
)

// JoinedRow is one assembled output row: a left row's fields, the match its
// join value received, and the fields of the right row carrying the matched
// value. RightFields is nil when no right row carries the matched value.
type JoinedRow struct {
	LeftValue    string
	MatchedValue string
	Distance     int
	LeftFields   []string
	RightFields  []string
}

// Joiner assembles joined rows from match records and the two source tables.
// Join-key cells are compared after strings.TrimSpace on both sides; the key
// columns themselves are dropped from the output since their content
// survives in LeftValue and MatchedValue.
type Joiner struct {
	leftKey  string
	rightKey string
}

// NewJoiner creates a Joiner joining on the named key columns.
func NewJoiner(leftKey, rightKey string) (*Joiner, error) {
	if leftKey == "" || rightKey == "" {
		return nil, fmt.Errorf("match: join key columns must be named, got left %q and right %q", leftKey, rightKey)
	}
	return &Joiner{leftKey: leftKey, rightKey: rightKey}, nil
}

// Assemble walks records in order and emits one JoinedRow per left row whose
// trimmed join value equals the record's left value, preserving left-row
// order within each record. Records matching no left row are dropped. The
// right side contributes the first right row whose trimmed key equals the
// matched value; when none exists the row keeps RightFields nil rather than
// failing.
func (j *Joiner) Assemble(left *dataset.Table, records []MatchRecord, right *dataset.Table) ([]JoinedRow, error) {
	leftIdx, ok := left.ColumnIndex(j.leftKey)
	if !ok {
		return nil, fmt.Errorf("match: left table: %w: %s", dataset.ErrColumnNotFound, j.leftKey)
	}
	rightIdx, ok := right.ColumnIndex(j.rightKey)
	if !ok {
		return nil, fmt.Errorf("match: right table: %w: %s", dataset.ErrColumnNotFound, j.rightKey)
	}

	leftRows := make(map[string][]int, left.Len())
	for i, row := range left.Rows {
		key := strings.TrimSpace(row[leftIdx])
		leftRows[key] = append(leftRows[key], i)
	}

	firstRight := make(map[string]int, right.Len())
	for i, row := range right.Rows {
		key := strings.TrimSpace(row[rightIdx])
		if _, seen := firstRight[key]; !seen {
			firstRight[key] = i
		}
	}

	joined := make([]JoinedRow, 0, len(records))
	for _, rec := range records {
		rows := leftRows[strings.TrimSpace(rec.LeftValue)]
		if len(rows) == 0 {
			continue
		}

		rightRow := -1
		if i, ok := firstRight[strings.TrimSpace(rec.MatchedValue)]; ok {
			rightRow = i
		}

		for _, li := range rows {
			jr := JoinedRow{
				LeftValue:    rec.LeftValue,
				MatchedValue: rec.MatchedValue,
				Distance:     rec.Distance,
				LeftFields:   dropField(left.Rows[li], leftIdx),
			}
			if rightRow >= 0 {
				jr.RightFields = dropField(right.Rows[rightRow], rightIdx)
			}
			joined = append(joined, jr)
		}
	}
	return joined, nil
}

// OutputColumns reports the column layout AssembleTable produces: the left
// table's columns minus its join key, the three match columns, then the
// right table's columns minus its join key. Names present on both sides get
// _left/_right suffixes so every output column stays addressable by name.
func (j *Joiner) OutputColumns(left, right *dataset.Table) ([]string, error) {
	leftIdx, ok := left.ColumnIndex(j.leftKey)
	if !ok {
		return nil, fmt.Errorf("match: left table: %w: %s", dataset.ErrColumnNotFound, j.leftKey)
	}
	rightIdx, ok := right.ColumnIndex(j.rightKey)
	if !ok {
		return nil, fmt.Errorf("match: right table: %w: %s", dataset.ErrColumnNotFound, j.rightKey)
	}

	leftCols := dropField(left.Columns, leftIdx)
	rightCols := dropField(right.Columns, rightIdx)

	leftSet := make(map[string]bool, len(leftCols))
	for _, c := range leftCols {
		leftSet[c] = true
	}
	rightSet := make(map[string]bool, len(rightCols))
	for _, c := range rightCols {
		rightSet[c] = true
	}

	columns := make([]string, 0, len(leftCols)+len(rightCols)+3)
	for _, c := range leftCols {
		if rightSet[c] {
			c += "_left"
		}
		columns = append(columns, c)
	}
	columns = append(columns, ColumnLeftValue, ColumnMatchedValue, ColumnDistance)
	for _, c := range rightCols {
		if leftSet[c] {
			c += "_right"
		}
		columns = append(columns, c)
	}
	return columns, nil
}

// AssembleTable runs Assemble and lays the rows out under OutputColumns.
// Missing right sides render as empty cells.
func (j *Joiner) AssembleTable(left *dataset.Table, records []MatchRecord, right *dataset.Table) (*dataset.Table, error) {
	columns, err := j.OutputColumns(left, right)
	if err != nil {
		return nil, err
	}
	joined, err := j.Assemble(left, records, right)
	if err != nil {
		return nil, err
	}

	rightWidth := len(right.Columns) - 1
	rows := make([][]string, 0, len(joined))
	for _, jr := range joined {
		row := make([]string, 0, len(columns))
		row = append(row, jr.LeftFields...)
		row = append(row, jr.LeftValue, jr.MatchedValue, strconv.Itoa(jr.Distance))
		if jr.RightFields != nil {
			row = append(row, jr.RightFields...)
		} else {
			row = append(row, make([]string, rightWidth)...)
		}
		rows = append(rows, row)
	}
	return dataset.NewTable(columns, rows)
}

// dropField copies row without the cell at idx.
func dropField(row []string, idx int) []string {
	out := make([]string, 0, len(row)-1)
	out = append(out, row[:idx]...)
	return append(out, row[idx+1:]...)
}
