package service_test

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/service"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

func builtScenario(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df, err := service.NewFeatureBuilder().Build(scenarioLedger())
	require.NoError(t, err)
	return df
}

func TestRiskScorer_AddsScoreColumns(t *testing.T) {
	out, err := service.NewRiskScorer().Score(builtScenario(t))
	require.NoError(t, err)

	for _, f := range valueobject.DefaultFeatures() {
		assert.True(t, dataset.HasColumn(out, f.ScoreColumn()), "missing %s", f.ScoreColumn())
	}
	assert.True(t, dataset.HasColumn(out, dataset.ColFinalRiskScore))
	assert.True(t, dataset.HasColumn(out, dataset.ColRiskBand))
}

func TestRiskScorer_ScoreWithinRange(t *testing.T) {
	out, err := service.NewRiskScorer().Score(builtScenario(t))
	require.NoError(t, err)

	for i, score := range out.Col(dataset.ColFinalRiskScore).Float() {
		assert.GreaterOrEqual(t, score, 0.0, "row %d", i)
		assert.LessOrEqual(t, score, 100.0, "row %d", i)
	}
}

func TestRiskScorer_BandMatchesScore(t *testing.T) {
	out, err := service.NewRiskScorer().Score(builtScenario(t))
	require.NoError(t, err)

	scores := out.Col(dataset.ColFinalRiskScore).Float()
	bands := out.Col(dataset.ColRiskBand).Records()
	for i := range scores {
		assert.Equal(t, valueobject.RiskBandFromScore(scores[i]).String(), bands[i])
	}
}

func TestRiskScorer_DegenerateColumnScoresZero(t *testing.T) {
	// Every account has one transaction, so count_transaction and
	// daily_velocity_count are constant across the population.
	df := ledger(
		txRow{step: 1, amount: 100, account: "A", oldBalance: 1000, newBalance: 900},
		txRow{step: 1, amount: 300, account: "B", oldBalance: 1000, newBalance: 700},
		txRow{step: 1, amount: 900, account: "C", oldBalance: 1000, newBalance: 1000},
	)
	built, err := service.NewFeatureBuilder().Build(df)
	require.NoError(t, err)

	out, err := service.NewRiskScorer().Score(built)
	require.NoError(t, err)

	for _, f := range []valueobject.Feature{valueobject.FeatureCountTransaction, valueobject.FeatureDailyVelocityCount} {
		for i, v := range out.Col(f.ScoreColumn()).Float() {
			assert.Equal(t, 0.0, v, "%s row %d", f.ScoreColumn(), i)
		}
	}
	for i, score := range out.Col(dataset.ColFinalRiskScore).Float() {
		assert.False(t, math.IsNaN(score), "row %d is NaN", i)
	}
}

func TestRiskScorer_Deterministic(t *testing.T) {
	scorer := service.NewRiskScorer()
	built := builtScenario(t)

	first, err := scorer.Score(built)
	require.NoError(t, err)
	second, err := scorer.Score(built)
	require.NoError(t, err)
	again, err := scorer.Score(first)
	require.NoError(t, err)

	assert.Equal(t, first.Col(dataset.ColFinalRiskScore).Float(), second.Col(dataset.ColFinalRiskScore).Float())
	assert.Equal(t, first.Col(dataset.ColRiskBand).Records(), second.Col(dataset.ColRiskBand).Records())
	assert.Equal(t, first.Col(dataset.ColFinalRiskScore).Float(), again.Col(dataset.ColFinalRiskScore).Float())
}

func TestRiskScorer_FeatureSubset(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{0, 2}, series.Float, dataset.ColAvgAmount),
	)

	out, err := service.NewRiskScorer(valueobject.FeatureAvgAmount).Score(df)
	require.NoError(t, err)

	scores := out.Col(dataset.ColFinalRiskScore).Float()
	assert.InDelta(t, 15.865525393145707, scores[0], 1e-9)
	assert.InDelta(t, 84.13447460685429, scores[1], 1e-9)
	assert.Equal(t, []string{"Low Risk", "High Risk"}, out.Col(dataset.ColRiskBand).Records())
}

func TestRiskScorer_MissingFeatureColumns(t *testing.T) {
	_, err := service.NewRiskScorer().Score(scenarioLedger())
	require.ErrorIs(t, err, dataset.ErrMissingColumn)

	var missing *dataset.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, service.StageComputeScores, missing.Stage)
	assert.Equal(t, dataset.ColCountTransaction, missing.Column)
}

func TestRiskScorer_EmptyInput(t *testing.T) {
	_, err := service.NewRiskScorer().Score(dataframe.DataFrame{})
	require.ErrorIs(t, err, dataset.ErrEmptyInput)
}

func TestRiskScorer_DefaultFeatures(t *testing.T) {
	assert.Equal(t, valueobject.DefaultFeatures(), service.NewRiskScorer().Features())
}

func TestNormalizeColumn(t *testing.T) {
	t.Run("zero deviation", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 0}, service.NormalizeColumn([]float64{7, 7, 7}))
	})

	t.Run("symmetric values", func(t *testing.T) {
		out := service.NormalizeColumn([]float64{0, 1, 2})
		require.Len(t, out, 3)
		assert.InDelta(t, 0.5, out[1], 1e-12)
		assert.InDelta(t, 1.0, out[0]+out[2], 1e-12)
		assert.Less(t, out[0], out[1])
		assert.Less(t, out[1], out[2])
	})

	t.Run("empty column", func(t *testing.T) {
		assert.Empty(t, service.NormalizeColumn(nil))
	})
}

func TestCompositeScore(t *testing.T) {
	assert.Equal(t, 50.0, service.CompositeScore(3, 6))
	assert.Equal(t, 0.0, service.CompositeScore(0, 6))
	assert.Equal(t, 100.0, service.CompositeScore(6, 6))
	assert.Equal(t, 0.0, service.CompositeScore(1, 0))
}
