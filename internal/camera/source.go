package camera

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// SourceKind identifies which of the two accepted input shapes a camera
// file uses. The shape is chosen explicitly at ingestion, never inferred
// from ad hoc key presence.
type SourceKind int

const (
	// SourceStructured is a GeoJSON FeatureCollection of point features
	// with optional embedded camera lists.
	SourceStructured SourceKind = iota
	// SourceFlat is a CSV of coordinate pairs, one camera per row.
	SourceFlat
)

// DetectSource picks the input shape from the file extension.
func DetectSource(path string) (SourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return SourceStructured, nil
	case ".csv":
		return SourceFlat, nil
	default:
		return 0, eris.Errorf("camera: cannot determine input shape of %q (want .geojson or .csv)", path)
	}
}

// Load reads a camera input file of the given shape and aggregates it
// into counted unique locations.
func Load(path string, kind SourceKind) ([]Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "camera: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	var obs []Observation
	switch kind {
	case SourceStructured:
		obs, err = ReadGeoJSON(f)
	case SourceFlat:
		obs, err = ReadCSV(f)
	default:
		return nil, eris.Errorf("camera: unknown source kind %d", kind)
	}
	if err != nil {
		return nil, err
	}

	return Aggregate(obs), nil
}
