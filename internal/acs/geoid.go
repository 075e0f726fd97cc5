// Package acs loads and joins American Community Survey data-profile tables.
package acs

import "strings"

// geoMarker separates the summary-level prefix from the tract code in
// data.census.gov identifiers (e.g. "1400000US25013810101").
const geoMarker = "US"

// NormalizeGeoID strips the summary-level prefix from a compound GEO_ID,
// returning the bare tract code used by shapefile GEOIDs. Returns "" when
// the marker is absent; callers must treat such rows as unjoinable.
func NormalizeGeoID(geoID string) string {
	idx := strings.LastIndex(geoID, geoMarker)
	if idx < 0 {
		return ""
	}
	return geoID[idx+len(geoMarker):]
}
