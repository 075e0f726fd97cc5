package camera

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	latColumn = "Latitude"
	lonColumn = "Longitude"
)

// ReadCSV parses the flat input shape: one coordinate pair per row, each
// representing exactly one camera. The header must declare Latitude and
// Longitude columns (matched case-insensitively); rows with unparsable
// coordinates are skipped with a warning.
func ReadCSV(r io.Reader) ([]Observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("camera: empty csv")
	}
	if err != nil {
		return nil, eris.Wrap(err, "camera: read csv header")
	}

	latIdx, lonIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case strings.ToLower(latColumn):
			latIdx = i
		case strings.ToLower(lonColumn):
			lonIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 {
		return nil, eris.Errorf("camera: csv missing required columns %q and %q", latColumn, lonColumn)
	}

	var obs []Observation
	var skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "camera: read csv row")
		}
		if latIdx >= len(record) || lonIdx >= len(record) {
			skipped++
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)
		if latErr != nil || lonErr != nil {
			skipped++
			continue
		}
		obs = append(obs, Observation{Lon: lon, Lat: lat, Count: 1})
	}

	if skipped > 0 {
		zap.L().Warn("camera: skipped rows with unparsable coordinates", zap.Int("skipped", skipped))
	}

	return obs, nil
}
