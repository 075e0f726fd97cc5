package acs

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Table is an immutable column-ordered attribute table. ACS exports are
// heterogeneous text; cells stay strings until a caller coerces them with
// ParseValue.
type Table struct {
	Columns []string
	Rows    [][]string

	colIdx map[string]int
}

// NewTable builds a Table and its column index. Rows shorter than the
// header are allowed; missing cells read as "".
func NewTable(columns []string, rows [][]string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Table{Columns: columns, Rows: rows, colIdx: idx}
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIdx[name]
	return ok
}

// Cell returns the value of the named column in the given row, or "" when
// the column is absent or the row is short.
func (t *Table) Cell(row []string, name string) string {
	idx, ok := t.colIdx[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ReadOptions configures table loading.
type ReadOptions struct {
	// SkipRows drops this many rows after the header. ACS data-profile
	// exports carry a second, human-readable header row that must be
	// skipped.
	SkipRows int
}

// ReadTable loads a table from a .csv or .xlsx file, dispatching on the
// file extension.
func ReadTable(path string, opts ReadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "acs: open table %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(f, opts)
	case ".xlsx":
		return ReadXLSX(path, opts)
	default:
		return nil, eris.Errorf("acs: unsupported table format %q", filepath.Ext(path))
	}
}

// ReadCSV parses a CSV table. The first row is the machine-readable header
// (e.g. GEO_ID, DP03_0062E); opts.SkipRows rows after it are dropped.
func ReadCSV(r io.Reader, opts ReadOptions) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("acs: empty table")
	}
	if err != nil {
		return nil, eris.Wrap(err, "acs: read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for n := 0; ; n++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "acs: read row")
		}
		if n < opts.SkipRows {
			continue
		}
		rows = append(rows, record)
	}

	return NewTable(header, rows), nil
}

// ReadXLSX parses the first sheet of an XLSX table export with the same
// header convention as ReadCSV.
func ReadXLSX(path string, opts ReadOptions) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "acs: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("acs: xlsx %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("acs: empty table")
	}

	header := rowToStrings(sheet.Rows[0])
	var rows [][]string
	for i, row := range sheet.Rows[1:] {
		if i < opts.SkipRows {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}

	return NewTable(header, rows), nil
}

// WriteCSV writes the table back out as CSV, header first. Short rows are
// padded so every record has the full column count.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return eris.Wrap(err, "acs: write header")
	}
	for _, row := range t.Rows {
		out := row
		if len(out) < len(t.Columns) {
			out = append(append([]string{}, row...), make([]string, len(t.Columns)-len(row))...)
		}
		if err := writer.Write(out[:len(t.Columns)]); err != nil {
			return eris.Wrap(err, "acs: write row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "acs: flush csv")
	}
	return nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = strings.TrimSpace(cell.String())
	}
	return cells
}
