package geocode

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Geocoding status values written to the output CSV.
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
	StatusSkipped = "Skipped (Empty/Uncleanable)"
)

// BatchOptions configures a batch geocoding run.
type BatchOptions struct {
	// AddressColumn names the input column holding raw addresses.
	// Default: "Address".
	AddressColumn string
	// Concurrency bounds in-flight requests. The client's rate limiter
	// still applies across workers. Default: 4.
	Concurrency int
}

// GeocodeCSV reads a CSV of addresses, geocodes each row, and writes the
// input back out with Cleaned_Address, Latitude, Longitude, and
// Geocoding_Status columns appended. Unmatched or uncleanable rows are
// recorded, not fatal; row order is preserved.
func GeocodeCSV(ctx context.Context, client Client, r io.Reader, w io.Writer, opts BatchOptions) error {
	if opts.AddressColumn == "" {
		opts.AddressColumn = "Address"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return eris.Wrap(err, "geocode: read csv header")
	}
	addrIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), opts.AddressColumn) {
			addrIdx = i
		}
	}
	if addrIdx < 0 {
		return eris.Errorf("geocode: csv missing address column %q", opts.AddressColumn)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return eris.Wrap(err, "geocode: read csv rows")
	}

	type outcome struct {
		cleaned string
		lat     float64
		lon     float64
		status  string
	}
	outcomes := make([]outcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range rows {
		i := i
		g.Go(func() error {
			raw := ""
			if addrIdx < len(rows[i]) {
				raw = rows[i][addrIdx]
			}
			cleaned := CleanAddress(raw)
			if cleaned == "" {
				outcomes[i] = outcome{status: StatusSkipped}
				return nil
			}

			res, err := client.Geocode(gctx, cleaned)
			if err != nil {
				zap.L().Warn("geocode: address failed",
					zap.String("address", cleaned),
					zap.Error(err),
				)
				outcomes[i] = outcome{cleaned: cleaned, status: StatusFailed}
				return nil
			}
			if !res.Matched {
				outcomes[i] = outcome{cleaned: cleaned, status: StatusFailed}
				return nil
			}
			outcomes[i] = outcome{cleaned: cleaned, lat: res.Latitude, lon: res.Longitude, status: StatusSuccess}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "geocode: batch")
	}

	writer := csv.NewWriter(w)
	outHeader := append(append([]string{}, header...), "Cleaned_Address", "Latitude", "Longitude", "Geocoding_Status")
	if err := writer.Write(outHeader); err != nil {
		return eris.Wrap(err, "geocode: write csv header")
	}
	var matched int
	for i, row := range rows {
		o := outcomes[i]
		lat, lon := "", ""
		if o.status == StatusSuccess {
			lat = strconv.FormatFloat(o.lat, 'f', -1, 64)
			lon = strconv.FormatFloat(o.lon, 'f', -1, 64)
			matched++
		}
		out := append(append([]string{}, row...), o.cleaned, lat, lon, o.status)
		if err := writer.Write(out); err != nil {
			return eris.Wrap(err, "geocode: write csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "geocode: flush csv")
	}

	zap.L().Info("geocode: batch complete",
		zap.Int("rows", len(rows)),
		zap.Int("matched", matched),
	)
	return nil
}
