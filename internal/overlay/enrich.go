package overlay

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/civicmaps/overlay/internal/acs"
	"github.com/civicmaps/overlay/internal/tract"
)

// Attribute names carried on every enriched record.
const (
	AttrPopulation = "TotalPopulation"
	AttrIncome     = "MedianHouseholdIncome"
)

// Record is one tract's authoritative enriched row. Attributes and camera
// counts are zero-filled: a tract without a demographic match or with no
// assigned cameras carries 0, never a missing marker. This conflates "no
// data" with "true zero" and consumers of the artifact must account for it.
type Record struct {
	GeoID        string
	Name         string
	Attrs        map[string]float64
	TotalCameras int
	Density      float64 // cameras per 1,000 residents

	Geometry *geom.MultiPolygon
}

// Density computes cameras per 1,000 residents. Zero or negative
// population yields 0 rather than dividing by zero.
func Density(cameras int, population float64) float64 {
	if population <= 0 {
		return 0
	}
	return float64(cameras) / population * 1000
}

// BuildEnriched left-joins demographics and camera counts onto the
// complete tract set. Every tract in the input appears exactly once in the
// output regardless of matches; that completeness is the artifact's
// defining property. attrNames fixes which attributes every record
// carries.
func BuildEnriched(tracts *tract.Set, demo map[string]acs.Demographics, counts map[string]int, attrNames []string) []Record {
	records := make([]Record, 0, tracts.Len())

	var noDemo, noCameras int
	for _, tr := range tracts.Tracts {
		attrs := make(map[string]float64, len(attrNames))
		d, hasDemo := demo[tr.GeoID]
		for _, name := range attrNames {
			if hasDemo {
				attrs[name] = d.Attrs[name].FloatOr(0)
			} else {
				attrs[name] = 0
			}
		}
		if !hasDemo {
			noDemo++
		}

		count := counts[tr.GeoID]
		if count == 0 {
			noCameras++
		}

		records = append(records, Record{
			GeoID:        tr.GeoID,
			Name:         tr.Name,
			Attrs:        attrs,
			TotalCameras: count,
			Density:      Density(count, attrs[AttrPopulation]),
			Geometry:     tr.Geometry,
		})
	}

	zap.L().Info("overlay: built enriched record set",
		zap.Int("tracts", len(records)),
		zap.Int("without_demographics", noDemo),
		zap.Int("without_cameras", noCameras),
	)

	return records
}
