package service

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// StageComputeScores is the name reported in errors raised by RiskScorer.
const StageComputeScores = "compute_scores"

// RiskScorer is a domain service that turns behavioral features into a
// composite 0-100 risk score and a risk band per transaction.
type RiskScorer struct {
	features []valueobject.Feature
}

// NewRiskScorer creates a RiskScorer over the given features, in order.
// With no features it scores the default feature set.
func NewRiskScorer(features ...valueobject.Feature) *RiskScorer {
	if len(features) == 0 {
		features = valueobject.DefaultFeatures()
	}
	return &RiskScorer{features: append([]valueobject.Feature(nil), features...)}
}

// Features returns the features feeding the composite score.
func (s *RiskScorer) Features() []valueobject.Feature {
	return append([]valueobject.Feature(nil), s.features...)
}

// Name implements Stage.
func (s *RiskScorer) Name() string { return StageComputeScores }

// Apply implements Stage.
func (s *RiskScorer) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return s.Score(df)
}

// Score adds one <feature>_zscore column per feature, final_risk_score and
// risk_band. Mean and deviation come from the current table only, so the
// result depends on nothing but the input.
func (s *RiskScorer) Score(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := dataset.CheckNotEmpty(df); err != nil {
		return df, fmt.Errorf("%s: %w", StageComputeScores, err)
	}
	columns := make([]string, len(s.features))
	for i, f := range s.features {
		columns[i] = f.Column()
	}
	if err := dataset.RequireColumns(df, StageComputeScores, columns...); err != nil {
		return df, err
	}

	n := df.Nrow()
	composite := make([]float64, n)
	for _, f := range s.features {
		values, err := finiteColumn(df, StageComputeScores, f.Column())
		if err != nil {
			return df, err
		}
		scores := NormalizeColumn(values)
		for i, v := range scores {
			composite[i] += v
		}
		df = df.Mutate(series.New(scores, series.Float, f.ScoreColumn()))
	}

	bands := make([]string, n)
	for i := range composite {
		composite[i] = CompositeScore(composite[i], len(s.features))
		bands[i] = valueobject.RiskBandFromScore(composite[i]).String()
	}

	df = df.Mutate(series.New(composite, series.Float, dataset.ColFinalRiskScore)).
		Mutate(series.New(bands, series.String, dataset.ColRiskBand))
	if df.Err != nil {
		return df, fmt.Errorf("%s: attach score columns: %w", StageComputeScores, df.Err)
	}

	return df, nil
}

// NormalizeColumn maps every value to the standard normal CDF of its
// population z-score. A column with zero deviation scores 0 everywhere.
func NormalizeColumn(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if std == 0 {
		return out
	}
	for i, v := range values {
		out[i] = distuv.UnitNormal.CDF((v - mean) / std)
	}
	return out
}

// CompositeScore turns the sum of per-feature scores into the 0-100 scale.
func CompositeScore(sum float64, featureCount int) float64 {
	if featureCount == 0 {
		return 0
	}
	score := sum / float64(featureCount) * 100
	// Cap at the [0,100] range.
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
