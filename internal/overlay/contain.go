// Package overlay assigns camera locations to census tracts and builds the
// enriched per-tract record set.
package overlay

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/civicmaps/overlay/internal/camera"
	"github.com/civicmaps/overlay/internal/tract"
)

// JoinResult is the output of the containment join: per-tract camera
// totals. Tracts that received no points are absent from Counts, not
// zero-valued; the enrichment step fills those in.
type JoinResult struct {
	Counts   map[string]int
	Assigned int // cameras assigned to a tract
	Dropped  int // cameras outside every tract
}

// ContainmentJoin assigns each aggregated location to the tract whose
// interior strictly contains it. Points on a ring boundary are excluded by
// the predicate. A point inside no tract is dropped. A point inside more
// than one tract (a data defect for a valid tract partition) goes to the
// first tract in iteration order and is logged as a data-quality warning.
func ContainmentJoin(locs []camera.Location, tracts *tract.Set) JoinResult {
	res := JoinResult{Counts: make(map[string]int)}

	for _, loc := range locs {
		var matches []string
		for _, tr := range tracts.Tracts {
			if Contains(tr.Geometry, loc.Lon, loc.Lat) {
				matches = append(matches, tr.GeoID)
			}
		}

		switch len(matches) {
		case 0:
			res.Dropped += loc.Count
			continue
		case 1:
		default:
			zap.L().Warn("overlay: point contained by multiple tracts, assigning to first",
				zap.Float64("lon", loc.Lon),
				zap.Float64("lat", loc.Lat),
				zap.Strings("geoids", matches),
			)
		}

		res.Counts[matches[0]] += loc.Count
		res.Assigned += loc.Count
	}

	zap.L().Info("overlay: containment join complete",
		zap.Int("tracts_with_cameras", len(res.Counts)),
		zap.Int("cameras_assigned", res.Assigned),
		zap.Int("cameras_dropped", res.Dropped),
	)

	return res
}

// Contains reports whether the point lies strictly inside the
// multipolygon. It runs an even-odd ray crossing over every ring, so holes
// toggle points back out regardless of how rings were grouped into parts.
// A point exactly on a ring segment is on the boundary, not the interior,
// and reports false.
func Contains(mp *geom.MultiPolygon, lon, lat float64) bool {
	if mp == nil {
		return false
	}

	inside := false
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		for r := 0; r < poly.NumLinearRings(); r++ {
			in, onBoundary := ringCrossings(poly.LinearRing(r).FlatCoords(), lon, lat)
			if onBoundary {
				return false
			}
			if in {
				inside = !inside
			}
		}
	}
	return inside
}

// ringCrossings runs one even-odd pass over a ring's flat XY coordinates.
// Returns whether the crossing count is odd and whether the point sits
// exactly on a ring segment.
func ringCrossings(flat []float64, lon, lat float64) (odd, onBoundary bool) {
	n := len(flat) / 2
	if n < 3 {
		return false, false
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		x1, y1 := flat[2*i], flat[2*i+1]
		x2, y2 := flat[2*j], flat[2*j+1]

		if onSegment(x1, y1, x2, y2, lon, lat) {
			return false, true
		}

		// Half-open vertical range keeps shared vertices from double
		// counting.
		if (y1 > lat) != (y2 > lat) {
			xCross := x1 + (lat-y1)/(y2-y1)*(x2-x1)
			if lon < xCross {
				odd = !odd
			}
		}
	}
	return odd, false
}

// onSegment reports whether (px, py) lies exactly on the closed segment
// (x1, y1)-(x2, y2). Exact comparison, no tolerance: the predicate is
// strict and boundary ambiguity is inherent to it.
func onSegment(x1, y1, x2, y2, px, py float64) bool {
	cross := (x2-x1)*(py-y1) - (y2-y1)*(px-x1)
	if cross != 0 {
		return false
	}
	if px < min(x1, x2) || px > max(x1, x2) {
		return false
	}
	if py < min(y1, y2) || py > max(y1, y2) {
		return false
	}
	return true
}
