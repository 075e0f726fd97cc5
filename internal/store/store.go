// Package store persists dashboard count samples between runs of the
// counts logger.
package store

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Sample is one observation of a dashboard's camera counters. A failed
// scrape is recorded with Err set so gaps in the series are visible.
type Sample struct {
	ID         string
	URL        string
	Registered int
	Integrated int
	TakenAt    time.Time
	Err        string
}

// SampleFilter narrows ListSamples.
type SampleFilter struct {
	URL   string
	Since time.Time
	Limit int
}

// Store is the persistence interface for the counts logger.
type Store interface {
	AppendSample(ctx context.Context, s Sample) error
	ListSamples(ctx context.Context, filter SampleFilter) ([]Sample, error)
	Migrate(ctx context.Context) error
	Close() error
}

// ExportCSV writes samples in the log's CSV layout. Failed samples carry
// "Error" in both count columns.
func ExportCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "URL", "Registered Cameras", "Integrated Cameras"}); err != nil {
		return eris.Wrap(err, "store: write csv header")
	}
	for _, s := range samples {
		reg, integ := strconv.Itoa(s.Registered), strconv.Itoa(s.Integrated)
		if s.Err != "" {
			reg, integ = "Error", "Error"
		}
		row := []string{s.TakenAt.Format("2006-01-02 15:04:05"), s.URL, reg, integ}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "store: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "store: flush csv")
}
