package service

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// StageFlagSuspicious is the name reported in errors raised by TransactionFlagger.
const StageFlagSuspicious = "flag_suspicious"

// DefaultFlagThreshold is the lowest band treated as suspicious.
var DefaultFlagThreshold = valueobject.RiskBandHigh

// TransactionFlagger marks rows whose band reaches a configured threshold.
type TransactionFlagger struct {
	threshold valueobject.RiskBand
}

// NewTransactionFlagger creates a flagger. A zero threshold means DefaultFlagThreshold.
func NewTransactionFlagger(threshold valueobject.RiskBand) *TransactionFlagger {
	if threshold.IsZero() {
		threshold = DefaultFlagThreshold
	}
	return &TransactionFlagger{threshold: threshold}
}

// Threshold returns the lowest suspicious band.
func (f *TransactionFlagger) Threshold() valueobject.RiskBand {
	return f.threshold
}

// Name implements Stage.
func (f *TransactionFlagger) Name() string { return StageFlagSuspicious }

// Apply implements Stage.
func (f *TransactionFlagger) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return f.Flag(df)
}

// IsSuspicious is the per-row predicate; it looks at nothing but the band.
func (f *TransactionFlagger) IsSuspicious(band valueobject.RiskBand) bool {
	return band.AtLeast(f.threshold)
}

// Flag adds the boolean is_suspicious column. The band is read from
// risk_band, or derived from final_risk_score when the band column is absent.
func (f *TransactionFlagger) Flag(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := dataset.CheckNotEmpty(df); err != nil {
		return df, fmt.Errorf("%s: %w", StageFlagSuspicious, err)
	}

	bands, err := f.rowBands(df)
	if err != nil {
		return df, err
	}

	flags := make([]bool, len(bands))
	for i, band := range bands {
		flags[i] = f.IsSuspicious(band)
	}

	df = df.Mutate(series.New(flags, series.Bool, dataset.ColIsSuspicious))
	if df.Err != nil {
		return df, fmt.Errorf("%s: attach flag column: %w", StageFlagSuspicious, df.Err)
	}
	return df, nil
}

func (f *TransactionFlagger) rowBands(df dataframe.DataFrame) ([]valueobject.RiskBand, error) {
	if dataset.HasColumn(df, dataset.ColRiskBand) {
		labels := df.Col(dataset.ColRiskBand).Records()
		bands := make([]valueobject.RiskBand, len(labels))
		for i, label := range labels {
			band, err := valueobject.RiskBandFromString(label)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", StageFlagSuspicious, i, err)
			}
			bands[i] = band
		}
		return bands, nil
	}

	if !dataset.HasColumn(df, dataset.ColFinalRiskScore) {
		return nil, &dataset.MissingColumnError{Stage: StageFlagSuspicious, Column: dataset.ColRiskBand}
	}
	scores, err := finiteColumn(df, StageFlagSuspicious, dataset.ColFinalRiskScore)
	if err != nil {
		return nil, err
	}
	bands := make([]valueobject.RiskBand, len(scores))
	for i, score := range scores {
		bands[i] = valueobject.RiskBandFromScore(score)
	}
	return bands, nil
}
