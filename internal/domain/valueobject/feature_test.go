package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

func TestDefaultFeatures_Order(t *testing.T) {
	var columns []string
	for _, f := range valueobject.DefaultFeatures() {
		columns = append(columns, f.Column())
	}
	assert.Equal(t, []string{
		"count_transaction",
		"avg_amount",
		"total_amount",
		"max_amount",
		"daily_velocity_count",
		"errorBalanceOrig",
	}, columns)
}

func TestFeature_ScoreColumn(t *testing.T) {
	assert.Equal(t, "avg_amount_zscore", valueobject.FeatureAvgAmount.ScoreColumn())
	assert.Equal(t, "errorBalanceOrig_zscore", valueobject.FeatureErrorBalanceOrig.ScoreColumn())
}

func TestFeatureFromString(t *testing.T) {
	f, err := valueobject.FeatureFromString("max_amount")
	require.NoError(t, err)
	assert.Equal(t, valueobject.FeatureMaxAmount, f)

	_, err = valueobject.FeatureFromString("z_score")
	require.Error(t, err)
}
