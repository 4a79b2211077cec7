package service

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

// finiteColumn reads a numeric column and rejects NaN or Inf cells.
func finiteColumn(df dataframe.DataFrame, stage, column string) ([]float64, error) {
	values := df.Col(column).Float()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: column %q row %d: %w", stage, column, i, dataset.ErrNonFinite)
		}
	}
	return values, nil
}
