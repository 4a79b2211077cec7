package service

import "github.com/go-gota/gota/dataframe"

// Stage is one step of the risk pipeline. A stage receives the whole table,
// adds its columns and returns the augmented table.
// FeatureBuilder, RiskScorer and TransactionFlagger implement this.
type Stage interface {
	Name() string
	Apply(df dataframe.DataFrame) (dataframe.DataFrame, error)
}
