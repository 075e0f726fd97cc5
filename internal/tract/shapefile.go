package tract

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// TIGER/Line tract attribute fields.
const (
	fieldGeoID = "GEOID"
	fieldName  = "NAME"
)

// LoadShapefile reads a tract shapefile into a Set. TIGER tract geometries
// arrive in EPSG:4326, the same reference as the camera inputs, so no
// reprojection is applied. Records with a missing GEOID or geometry are
// skipped with a warning; missing attribute fields are fatal.
func LoadShapefile(path string) (*Set, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tract: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	geoIDIdx := fieldIndex(reader, fieldGeoID)
	nameIdx := fieldIndex(reader, fieldName)
	if geoIDIdx < 0 || nameIdx < 0 {
		return nil, eris.Errorf("tract: shapefile %s missing required fields %s, %s", path, fieldGeoID, fieldName)
	}

	var tracts []Tract
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		geoid := strings.TrimSpace(strings.TrimRight(reader.Attribute(geoIDIdx), "\x00"))
		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		if geoid == "" {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		tracts = append(tracts, Tract{GeoID: geoid, Name: name, Geometry: mp})
	}

	if skipped > 0 {
		zap.L().Warn("tract: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	if len(tracts) == 0 {
		return nil, eris.Errorf("tract: shapefile %s contains no usable tract polygons", path)
	}

	zap.L().Info("tract: loaded shapefile",
		zap.String("path", path),
		zap.Int("tracts", len(tracts)),
	)

	return NewSet(tracts), nil
}

// fieldIndex returns the index of a named field in the shapefile, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
// Each part becomes its own single-ring polygon; hole semantics are handled
// downstream by even-odd containment, which is insensitive to ring grouping.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("tract: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("tract: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
