// Package camera ingests raw camera location observations and aggregates
// them into counted unique locations.
package camera

import "go.uber.org/zap"

// Observation is one raw input item: a coordinate pair and how many
// cameras it represents. Structured GeoJSON features may carry more than
// one camera per location; flat CSV rows are always one.
type Observation struct {
	Lon   float64
	Lat   float64
	Count int
}

// Location is a unique coordinate pair with the total number of cameras
// observed there.
type Location struct {
	Lon   float64
	Lat   float64
	Count int
}

// Aggregate collapses raw observations onto distinct coordinate pairs,
// summing counts. Coordinates are compared exactly after parsing; two
// decimal representations of the same physical point stay distinct.
// First-seen order is preserved. The sum of aggregated counts always
// equals the sum of observation counts.
func Aggregate(obs []Observation) []Location {
	type key struct{ lon, lat float64 }

	idx := make(map[key]int, len(obs))
	var out []Location
	var total int

	for _, o := range obs {
		total += o.Count
		k := key{o.Lon, o.Lat}
		if i, ok := idx[k]; ok {
			out[i].Count += o.Count
			continue
		}
		idx[k] = len(out)
		out = append(out, Location{Lon: o.Lon, Lat: o.Lat, Count: o.Count})
	}

	zap.L().Info("camera: aggregated observations",
		zap.Int("observations", len(obs)),
		zap.Int("unique_locations", len(out)),
		zap.Int("total_cameras", total),
	)

	return out
}
