package camera

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// ReadGeoJSON parses the structured input shape: a FeatureCollection of
// point features. A feature's camera count is the length of its
// properties.log_stats.cameras list; a bare location with no such list
// counts as one camera. Non-point features are skipped with a warning.
func ReadGeoJSON(r io.Reader) ([]Observation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "camera: read geojson")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "camera: parse geojson")
	}

	var obs []Observation
	var skipped int
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok || pt == nil {
			skipped++
			continue
		}
		c := pt.Coords()
		obs = append(obs, Observation{
			Lon:   c.X(),
			Lat:   c.Y(),
			Count: featureCameraCount(f.Properties),
		})
	}

	if skipped > 0 {
		zap.L().Warn("camera: skipped non-point features", zap.Int("skipped", skipped))
	}

	return obs, nil
}

// featureCameraCount digs properties.log_stats.cameras out of the loosely
// typed property bag. Absent or empty list means a single camera.
func featureCameraCount(props map[string]interface{}) int {
	logStats, ok := props["log_stats"].(map[string]interface{})
	if !ok {
		return 1
	}
	cameras, ok := logStats["cameras"].([]interface{})
	if !ok || len(cameras) == 0 {
		return 1
	}
	return len(cameras)
}
