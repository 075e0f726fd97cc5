package acs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Demographics is one tract's worth of selected, renamed attributes keyed
// by normalized GEOID.
type Demographics struct {
	GeoID string
	Name  string
	Attrs map[string]Value
}

// ExtractDemographics selects attribute columns from a joined table and
// keys them by normalized GEOID. attrCols maps the output attribute name
// to its source column (e.g. "MedianHouseholdIncome" -> "DP03_0062E").
// Rows whose key fails normalization are unjoinable and skipped with a
// warning; a declared column missing from the table is fatal.
func ExtractDemographics(t *Table, keyCol, nameCol string, attrCols map[string]string) (map[string]Demographics, error) {
	if !t.HasColumn(keyCol) {
		return nil, eris.Errorf("acs: table missing key column %q", keyCol)
	}
	for name, src := range attrCols {
		if !t.HasColumn(src) {
			return nil, eris.Errorf("acs: table missing attribute column %q (for %s)", src, name)
		}
	}

	out := make(map[string]Demographics, len(t.Rows))
	var skipped int
	for _, row := range t.Rows {
		geoid := NormalizeGeoID(t.Cell(row, keyCol))
		if geoid == "" {
			skipped++
			continue
		}
		attrs := make(map[string]Value, len(attrCols))
		for name, src := range attrCols {
			attrs[name] = ParseValue(t.Cell(row, src))
		}
		out[geoid] = Demographics{
			GeoID: geoid,
			Name:  t.Cell(row, nameCol),
			Attrs: attrs,
		}
	}

	if skipped > 0 {
		zap.L().Warn("acs: skipped rows with unnormalizable GEO_ID",
			zap.Int("skipped", skipped),
		)
	}

	return out, nil
}
