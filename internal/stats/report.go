package stats

import (
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/civicmaps/overlay/internal/overlay"
)

// Report bundles the summary statistics for one attribute: correlation
// with camera density plus the bracket analysis.
type Report struct {
	Attribute       string
	TotalRecords    int
	AnalyzedRecords int
	Correlation     *CorrelationResult
	Buckets         *BucketResult
}

// Analyze runs the full statistical summary over an enriched record set
// for the chosen attribute.
func Analyze(records []overlay.Record, attr string) (*Report, error) {
	if len(records) == 0 {
		return nil, eris.New("stats: no enriched records to analyze")
	}

	corr, err := Correlate(records, attr)
	if err != nil {
		return nil, err
	}

	return &Report{
		Attribute:       attr,
		TotalRecords:    len(records),
		AnalyzedRecords: corr.N,
		Correlation:     corr,
		Buckets:         BucketByAttribute(records, attr),
	}, nil
}

// Render writes the report as human-readable text with locale-aware
// number formatting.
func (r *Report) Render(w io.Writer) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "Analyzed %d of %d tracts (positive population only)\n\n", r.AnalyzedRecords, r.TotalRecords); err != nil {
		return eris.Wrap(err, "stats: render report")
	}

	p.Fprintf(w, "Correlation: %s vs CamerasPer1000People\n", r.Attribute)
	if r.Correlation.Insufficient {
		p.Fprintf(w, "  %s\n", r.Correlation.Reason)
	} else {
		p.Fprintf(w, "  r = %.4f  (p = %.4g, n = %d)\n", r.Correlation.R, r.Correlation.PValue, r.Correlation.N)
		p.Fprintf(w, "  %s\n", r.Correlation.Interpretation)
	}

	p.Fprintf(w, "\nCamera density by %s bracket\n", r.Attribute)
	if r.Buckets.Skipped {
		p.Fprintf(w, "  %s\n", r.Buckets.Reason)
		return nil
	}
	for _, b := range r.Buckets.Buckets {
		p.Fprintf(w, "  %-10s  n=%-4d  mean density %.3f\n", b.Label, b.N, b.MeanDensity)
	}
	return nil
}
