package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

// AmountBins is how many equal-width buckets the amount distribution uses.
const AmountBins = 10

// AmountBucket counts normal and flagged rows whose amount falls in [Low, High).
// The last bucket also holds the largest amount.
type AmountBucket struct {
	Low     float64
	High    float64
	Normal  int
	Flagged int
}

// amountDistribution buckets the amount column separately for normal and
// flagged rows over the same edges.
func amountDistribution(df dataframe.DataFrame, flaggedRows []int) ([]AmountBucket, error) {
	if err := dataset.RequireColumns(df, "report", dataset.ColAmount); err != nil {
		return nil, err
	}
	isFlagged := make(map[int]bool, len(flaggedRows))
	for _, r := range flaggedRows {
		isFlagged[r] = true
	}

	var normal, flagged []float64
	for i, v := range df.Col(dataset.ColAmount).Float() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("report: amount row %d: %w", i, dataset.ErrNonFinite)
		}
		if isFlagged[i] {
			flagged = append(flagged, v)
		} else {
			normal = append(normal, v)
		}
	}
	if len(normal)+len(flagged) == 0 {
		return nil, nil
	}

	all := append(append([]float64(nil), normal...), flagged...)
	lo, hi := floats.Min(all), floats.Max(all)
	bins := AmountBins
	if lo == hi {
		bins = 1
	}
	dividers := make([]float64, bins+1)
	if bins == 1 {
		dividers[0] = lo
	} else {
		floats.Span(dividers, lo, hi)
	}
	// stat.Histogram bins are half-open; nudge the top edge past the maximum.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	normalCounts := histogram(normal, dividers)
	flaggedCounts := histogram(flagged, dividers)

	out := make([]AmountBucket, bins)
	for i := range out {
		out[i] = AmountBucket{
			Low:     dividers[i],
			High:    dividers[i+1],
			Normal:  int(normalCounts[i]),
			Flagged: int(flaggedCounts[i]),
		}
	}
	out[bins-1].High = hi
	return out, nil
}

func histogram(values, dividers []float64) []float64 {
	counts := make([]float64, len(dividers)-1)
	if len(values) == 0 {
		return counts
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Histogram(counts, dividers, sorted, nil)
}

// scoreStats returns the mean and the maximum of final_risk_score.
func scoreStats(df dataframe.DataFrame) (mean, highest float64) {
	scores := df.Col(dataset.ColFinalRiskScore).Float()
	if len(scores) == 0 {
		return 0, 0
	}
	return stat.Mean(scores, nil), floats.Max(scores)
}
