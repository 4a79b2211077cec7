package valueobject

import (
	"fmt"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

// Feature identifies one behavioral column that feeds the composite score.
type Feature struct {
	column string
}

var (
	FeatureCountTransaction   = Feature{column: dataset.ColCountTransaction}
	FeatureAvgAmount          = Feature{column: dataset.ColAvgAmount}
	FeatureTotalAmount        = Feature{column: dataset.ColTotalAmount}
	FeatureMaxAmount          = Feature{column: dataset.ColMaxAmount}
	FeatureDailyVelocityCount = Feature{column: dataset.ColDailyVelocityCount}
	FeatureErrorBalanceOrig   = Feature{column: dataset.ColErrorBalanceOrig}
)

// DefaultFeatures is the ordered, equal-weighted feature set of the composite score.
func DefaultFeatures() []Feature {
	return []Feature{
		FeatureCountTransaction,
		FeatureAvgAmount,
		FeatureTotalAmount,
		FeatureMaxAmount,
		FeatureDailyVelocityCount,
		FeatureErrorBalanceOrig,
	}
}

// FeatureFromString resolves a column name to one of the enumerated features.
func FeatureFromString(s string) (Feature, error) {
	for _, f := range DefaultFeatures() {
		if f.column == s {
			return f, nil
		}
	}
	return Feature{}, fmt.Errorf("unknown scoring feature: %q", s)
}

// Column returns the source column name.
func (f Feature) Column() string {
	return f.column
}

// ScoreColumn returns the name of the normalized score column.
func (f Feature) ScoreColumn() string {
	return f.column + dataset.ScoreSuffix
}

func (f Feature) String() string {
	return f.column
}

// UnmarshalText decodes a feature column name.
func (f *Feature) UnmarshalText(text []byte) error {
	parsed, err := FeatureFromString(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
