package stats

import (
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/civicmaps/overlay/internal/overlay"
)

// minBucketRecords is the smallest qualifying sample for any bucket
// analysis; below it the report is skipped outright rather than producing
// a misleading partial result.
const minBucketRecords = 5

var (
	fiveLabels  = []string{"Lowest", "Low-Mid", "Mid", "Mid-High", "Highest"}
	threeLabels = []string{"Low", "Medium", "High"}
)

// Bucket is one equal-frequency partition of the attribute distribution.
type Bucket struct {
	Label       string
	N           int
	MeanDensity float64
}

// BucketResult is the quantile-bucket summary of density by attribute
// bracket.
type BucketResult struct {
	Attribute string
	Buckets   []Bucket
	// Skipped is set when the analysis could not run; Reason says why.
	Skipped bool
	Reason  string
}

// BucketByAttribute partitions records with a positive attribute value
// into five equal-frequency buckets and reports mean density per bucket.
// When the attribute has too few distinct values for five non-degenerate
// buckets it falls back to three; when even three degenerate, or fewer
// than five records qualify, the analysis is skipped and reported as such.
func BucketByAttribute(records []overlay.Record, attr string) *BucketResult {
	res := &BucketResult{Attribute: attr}

	var qualifying []sample
	for _, s := range analysisSet(records, attr) {
		if s.attr > 0 {
			qualifying = append(qualifying, s)
		}
	}

	if len(qualifying) < minBucketRecords {
		res.Skipped = true
		res.Reason = "insufficient data for bracket analysis (fewer than 5 records with a positive attribute value)"
		return res
	}

	values := make([]float64, len(qualifying))
	for i, s := range qualifying {
		values[i] = s.attr
	}
	sort.Float64s(values)

	bounds, labels := quantileBounds(values, 5, fiveLabels)
	if bounds == nil {
		zap.L().Warn("stats: cannot form 5 brackets, falling back to 3",
			zap.String("attribute", attr),
		)
		bounds, labels = quantileBounds(values, 3, threeLabels)
	}
	if bounds == nil {
		res.Skipped = true
		res.Reason = "insufficient data for bracket analysis (attribute distribution too degenerate for 3 brackets)"
		return res
	}

	sums := make([]float64, len(labels))
	counts := make([]int, len(labels))
	for _, s := range qualifying {
		b := bucketIndex(bounds, s.attr)
		sums[b] += s.density
		counts[b]++
	}

	for i, label := range labels {
		if counts[i] == 0 {
			continue
		}
		res.Buckets = append(res.Buckets, Bucket{
			Label:       label,
			N:           counts[i],
			MeanDensity: sums[i] / float64(counts[i]),
		})
	}

	return res
}

// quantileBounds returns the q-1 interior quantile boundaries for q
// equal-frequency buckets, or nil when the boundaries are degenerate
// (duplicate edges).
func quantileBounds(sorted []float64, q int, labels []string) ([]float64, []string) {
	bounds := make([]float64, 0, q-1)
	for i := 1; i < q; i++ {
		p := float64(i) / float64(q)
		bounds = append(bounds, stat.Quantile(p, stat.Empirical, sorted, nil))
	}

	// Boundaries must be strictly increasing, and the top bucket must be
	// non-empty, or the partition is degenerate.
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return nil, nil
		}
	}
	if bounds[len(bounds)-1] >= sorted[len(sorted)-1] {
		return nil, nil
	}
	return bounds, labels
}

// bucketIndex places a value into the bucket whose upper boundary first
// covers it; values above every boundary land in the last bucket.
func bucketIndex(bounds []float64, v float64) int {
	for i, b := range bounds {
		if v <= b {
			return i
		}
	}
	return len(bounds)
}
