// Package tract loads census tract polygons from TIGER/Line shapefiles.
package tract

import (
	"github.com/twpayne/go-geom"
)

// Tract is one census tract polygon. Tracts are immutable once loaded and
// shared read-only by every downstream join.
type Tract struct {
	GeoID    string
	Name     string
	Geometry *geom.MultiPolygon
}

// Set is an ordered collection of tracts. Iteration order is load order;
// the ambiguous-containment tie-break depends on it being stable.
type Set struct {
	Tracts []Tract

	byGeoID map[string]int
}

// NewSet builds a Set and its GEOID index.
func NewSet(tracts []Tract) *Set {
	idx := make(map[string]int, len(tracts))
	for i, tr := range tracts {
		idx[tr.GeoID] = i
	}
	return &Set{Tracts: tracts, byGeoID: idx}
}

// ByGeoID returns the tract with the given GEOID, if present.
func (s *Set) ByGeoID(geoid string) (Tract, bool) {
	i, ok := s.byGeoID[geoid]
	if !ok {
		return Tract{}, false
	}
	return s.Tracts[i], true
}

// Len returns the number of tracts.
func (s *Set) Len() int { return len(s.Tracts) }
