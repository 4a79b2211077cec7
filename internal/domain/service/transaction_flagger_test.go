package service_test

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/service"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

func bandTable(bands ...string) dataframe.DataFrame {
	return dataframe.New(series.New(bands, series.String, dataset.ColRiskBand))
}

func suspiciousFlags(t *testing.T, df dataframe.DataFrame) []bool {
	t.Helper()
	flags := make([]bool, df.Nrow())
	col := df.Col(dataset.ColIsSuspicious)
	for i := range flags {
		v, err := col.Elem(i).Bool()
		require.NoError(t, err)
		flags[i] = v
	}
	return flags
}

func TestTransactionFlagger_DefaultThreshold(t *testing.T) {
	flagger := service.NewTransactionFlagger(valueobject.RiskBand{})
	assert.True(t, flagger.Threshold().Equal(valueobject.RiskBandHigh))

	out, err := flagger.Flag(bandTable("Low Risk", "Medium Risk", "High Risk", "Critical Risk"))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, true}, suspiciousFlags(t, out))
}

func TestTransactionFlagger_ConfiguredThreshold(t *testing.T) {
	tests := []struct {
		threshold valueobject.RiskBand
		expected  []bool
	}{
		{valueobject.RiskBandLow, []bool{true, true, true, true}},
		{valueobject.RiskBandMedium, []bool{false, true, true, true}},
		{valueobject.RiskBandHigh, []bool{false, false, true, true}},
		{valueobject.RiskBandCritical, []bool{false, false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.threshold.String(), func(t *testing.T) {
			out, err := service.NewTransactionFlagger(tt.threshold).
				Flag(bandTable("Low Risk", "Medium Risk", "High Risk", "Critical Risk"))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, suspiciousFlags(t, out))
		})
	}
}

func TestTransactionFlagger_FallsBackToScore(t *testing.T) {
	df := dataframe.New(series.New([]float64{10, 69.99, 70, 95}, series.Float, dataset.ColFinalRiskScore))

	out, err := service.NewTransactionFlagger(valueobject.RiskBandHigh).Flag(df)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, true}, suspiciousFlags(t, out))
}

func TestTransactionFlagger_MissingColumns(t *testing.T) {
	df := dataframe.New(series.New([]float64{1, 2}, series.Float, dataset.ColAmount))

	_, err := service.NewTransactionFlagger(valueobject.RiskBandHigh).Flag(df)
	require.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestTransactionFlagger_InvalidBandLabel(t *testing.T) {
	_, err := service.NewTransactionFlagger(valueobject.RiskBandHigh).Flag(bandTable("Low Risk", "Severe"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid risk band")
}

func TestTransactionFlagger_EmptyInput(t *testing.T) {
	flagger := service.NewTransactionFlagger(valueobject.RiskBandHigh)

	_, err := flagger.Flag(dataframe.DataFrame{})
	require.ErrorIs(t, err, dataset.ErrEmptyInput)

	_, err = flagger.Flag(bandTable())
	require.ErrorIs(t, err, dataset.ErrEmptyInput)
}
