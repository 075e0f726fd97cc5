package overlay

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Property names in the enriched GeoJSON artifact.
const (
	propGeoID   = "GEOID"
	propName    = "TractName"
	propCameras = "TotalCameras"
	propDensity = "CamerasPer1000People"
)

// WriteGeoJSON serializes the enriched record set as a GeoJSON
// FeatureCollection, one feature per tract. This is the artifact contract
// consumed by the map and reporting collaborators.
func WriteGeoJSON(w io.Writer, records []Record) error {
	features := make([]*geojson.Feature, 0, len(records))
	for i := range records {
		rec := &records[i]
		props := map[string]interface{}{
			propGeoID:   rec.GeoID,
			propName:    rec.Name,
			propCameras: rec.TotalCameras,
			propDensity: rec.Density,
		}
		for name, v := range rec.Attrs {
			props[name] = v
		}
		features = append(features, &geojson.Feature{
			ID:         rec.GeoID,
			Geometry:   rec.Geometry,
			Properties: props,
		})
	}

	fc := geojson.FeatureCollection{Features: features}
	data, err := json.Marshal(&fc)
	if err != nil {
		return eris.Wrap(err, "overlay: marshal geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "overlay: write geojson")
	}
	return nil
}

// ReadGeoJSON parses an enriched artifact back into records, for the
// analysis stage. Every property other than the reserved ones is treated
// as a numeric attribute; non-numeric values read as 0, matching the
// zero-fill policy of the writer.
func ReadGeoJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "overlay: read geojson")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "overlay: parse geojson")
	}

	records := make([]Record, 0, len(fc.Features))
	for _, f := range fc.Features {
		geoid, _ := f.Properties[propGeoID].(string)
		if geoid == "" {
			return nil, eris.New("overlay: artifact feature missing GEOID property")
		}
		name, _ := f.Properties[propName].(string)

		rec := Record{
			GeoID:        geoid,
			Name:         name,
			Attrs:        map[string]float64{},
			TotalCameras: int(numericProp(f.Properties, propCameras)),
			Density:      numericProp(f.Properties, propDensity),
		}
		if mp, ok := f.Geometry.(*geom.MultiPolygon); ok {
			rec.Geometry = mp
		}
		for k, v := range f.Properties {
			switch k {
			case propGeoID, propName, propCameras, propDensity:
				continue
			}
			if n, ok := v.(float64); ok {
				rec.Attrs[k] = n
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// AttrNames returns the sorted attribute names present across records.
func AttrNames(records []Record) []string {
	seen := map[string]struct{}{}
	for i := range records {
		for name := range records[i].Attrs {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func numericProp(props map[string]interface{}, name string) float64 {
	switch v := props[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
