package spreadsheet

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var ErrEmptyWorkbook = errors.New("spreadsheet has no data rows")

// Table is the first worksheet of a workbook with a header row.
type Table struct {
	Columns map[string]int
	Rows    [][]string
}

// Value returns the trimmed cell for column in row i, "" when absent.
func (t Table) Value(i int, column string) string {
	idx, ok := t.Columns[column]
	if !ok || i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Missing lists required columns not present in the header.
func (t Table) Missing(required ...string) []string {
	var out []string
	for _, col := range required {
		if _, ok := t.Columns[col]; !ok {
			out = append(out, col)
		}
	}
	return out
}

// ReadTable parses the first worksheet. Header names are lower-cased and trimmed;
// blank rows are skipped.
func ReadTable(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, errors.Wrapf(err, "read sheet %s", sheets[0])
	}
	if len(rows) < 2 {
		return Table{}, ErrEmptyWorkbook
	}

	t := Table{Columns: make(map[string]int, len(rows[0]))}
	for i, col := range rows[0] {
		t.Columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) == 0 {
		return Table{}, ErrEmptyWorkbook
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
