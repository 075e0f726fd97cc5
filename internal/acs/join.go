package acs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// InnerJoin joins two tables on the named key column. Only keys present in
// both tables survive; unmatched rows are discarded so every downstream
// attribute has both sources present. Non-key columns that appear in both
// tables keep the left table's version, and the right duplicate is dropped
// rather than silently overwriting.
//
// A missing key column in either input is a fatal validation error,
// reported before any row is processed.
func InnerJoin(left, right *Table, key string) (*Table, error) {
	if !left.HasColumn(key) {
		return nil, eris.Errorf("acs: left table missing key column %q", key)
	}
	if !right.HasColumn(key) {
		return nil, eris.Errorf("acs: right table missing key column %q", key)
	}

	// Right columns carried into the result: everything the left table
	// doesn't already declare (the key itself always collides).
	var rightCols []string
	var dropped []string
	for _, c := range right.Columns {
		if left.HasColumn(c) {
			if c != key {
				dropped = append(dropped, c)
			}
			continue
		}
		rightCols = append(rightCols, c)
	}
	if len(dropped) > 0 {
		zap.L().Debug("acs: dropping duplicate right-table columns",
			zap.Strings("columns", dropped),
		)
	}

	// Index right rows by key. On duplicate keys the first row wins.
	rightByKey := make(map[string][]string, len(right.Rows))
	for _, row := range right.Rows {
		k := right.Cell(row, key)
		if k == "" {
			continue
		}
		if _, ok := rightByKey[k]; !ok {
			rightByKey[k] = row
		}
	}

	columns := make([]string, 0, len(left.Columns)+len(rightCols))
	columns = append(columns, left.Columns...)
	columns = append(columns, rightCols...)

	var rows [][]string
	for _, lrow := range left.Rows {
		k := left.Cell(lrow, key)
		if k == "" {
			continue
		}
		rrow, ok := rightByKey[k]
		if !ok {
			continue
		}
		merged := make([]string, 0, len(columns))
		for _, c := range left.Columns {
			merged = append(merged, left.Cell(lrow, c))
		}
		for _, c := range rightCols {
			merged = append(merged, right.Cell(rrow, c))
		}
		rows = append(rows, merged)
	}

	zap.L().Info("acs: inner join complete",
		zap.String("key", key),
		zap.Int("left_rows", len(left.Rows)),
		zap.Int("right_rows", len(right.Rows)),
		zap.Int("joined_rows", len(rows)),
	)

	return NewTable(columns, rows), nil
}
