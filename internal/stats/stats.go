// Package stats derives density metrics, significance-tested correlations,
// and quantile-bucket summaries from the enriched record set. All outputs
// are read-only reports; the record set is never mutated.
package stats

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/civicmaps/overlay/internal/overlay"
)

// Interpretation bands for the correlation coefficient.
const (
	InterpStrongPositive = "strong positive correlation"
	InterpWeakPositive   = "weak positive correlation"
	InterpStrongNegative = "strong negative correlation"
	InterpWeakNegative   = "weak negative correlation"
	InterpNone           = "no significant linear correlation"
)

// CorrelationResult is the Pearson correlation between a demographic
// attribute and camera density over the filtered record set.
type CorrelationResult struct {
	Attribute      string
	N              int
	R              float64
	PValue         float64
	Interpretation string
	// Insufficient is set when fewer than three pairs remain or the
	// attribute has zero variance; R and PValue are meaningless then.
	Insufficient bool
	Reason       string
}

// sample is one analysis row: attribute value and camera density.
type sample struct {
	attr    float64
	density float64
}

// analysisSet filters the enriched records down to those contributing a
// meaningful density signal: population must be positive. Density is
// derived here (count/population*1000) so the analysis never trusts a
// stale artifact value.
func analysisSet(records []overlay.Record, attr string) []sample {
	var out []sample
	for i := range records {
		rec := &records[i]
		pop := rec.Attrs[overlay.AttrPopulation]
		if pop <= 0 {
			continue
		}
		v, ok := rec.Attrs[attr]
		if !ok {
			// Non-numeric attribute values never made it into Attrs;
			// exclude the record pairwise from this correlation only.
			continue
		}
		out = append(out, sample{
			attr:    v,
			density: overlay.Density(rec.TotalCameras, pop),
		})
	}
	return out
}

// Correlate computes the Pearson correlation coefficient between the named
// attribute and camera density, with a two-sided p-value from the
// Student's-t transform. Records with non-positive population are excluded
// entirely; records missing the attribute are excluded pairwise.
func Correlate(records []overlay.Record, attr string) (*CorrelationResult, error) {
	if attr == "" {
		return nil, eris.New("stats: attribute name is required")
	}

	samples := analysisSet(records, attr)
	res := &CorrelationResult{Attribute: attr, N: len(samples)}

	if len(samples) < 3 {
		res.Insufficient = true
		res.Reason = "insufficient data for correlation (fewer than 3 records with positive population)"
		return res, nil
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.attr
		ys[i] = s.density
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Zero variance in either series.
		res.Insufficient = true
		res.Reason = "insufficient data for correlation (zero variance)"
		zap.L().Warn("stats: degenerate correlation input",
			zap.String("attribute", attr),
			zap.Int("n", len(samples)),
		)
		return res, nil
	}

	res.R = r
	res.PValue = twoSidedPValue(r, len(samples))
	res.Interpretation = interpret(r)
	return res, nil
}

// twoSidedPValue converts r to a t statistic with n-2 degrees of freedom
// and returns the two-sided tail probability.
func twoSidedPValue(r float64, n int) float64 {
	df := float64(n - 2)
	denom := 1 - r*r
	if denom <= 0 {
		// Perfect correlation.
		return 0
	}
	t := math.Abs(r) * math.Sqrt(df/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(t))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// interpret maps r onto the reporting bands, sign-aware.
func interpret(r float64) string {
	switch {
	case r > 0.5:
		return InterpStrongPositive
	case r > 0.1:
		return InterpWeakPositive
	case r < -0.5:
		return InterpStrongNegative
	case r < -0.1:
		return InterpWeakNegative
	default:
		return InterpNone
	}
}
