package service

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

// StageBuildFeatures is the name reported in errors raised by FeatureBuilder.
const StageBuildFeatures = "build_features"

// stepsPerDay converts the hourly step into a day bucket.
const stepsPerDay = 24

// AccountStats holds the amount statistics of one originating account.
type AccountStats struct {
	Count int
	Total float64
	Mean  float64
	Max   float64
	// StdDev is the population standard deviation of the account's amounts.
	StdDev float64
}

type velocityKey struct {
	account string
	day     int
}

// FeatureBuilder derives behavioral features per transaction and per
// originating account.
type FeatureBuilder struct{}

// NewFeatureBuilder creates a new FeatureBuilder instance.
func NewFeatureBuilder() *FeatureBuilder {
	return &FeatureBuilder{}
}

// Name implements Stage.
func (b *FeatureBuilder) Name() string { return StageBuildFeatures }

// Apply implements Stage.
func (b *FeatureBuilder) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return b.Build(df)
}

// Build adds day, the per-account amount aggregates, z_score,
// daily_velocity_count and errorBalanceOrig to the table.
func (b *FeatureBuilder) Build(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := dataset.CheckNotEmpty(df); err != nil {
		return df, fmt.Errorf("%s: %w", StageBuildFeatures, err)
	}
	if err := dataset.RequireColumns(df, StageBuildFeatures, dataset.FeatureInputColumns...); err != nil {
		return df, err
	}

	steps, err := finiteColumn(df, StageBuildFeatures, dataset.ColStep)
	if err != nil {
		return df, err
	}
	amounts, err := finiteColumn(df, StageBuildFeatures, dataset.ColAmount)
	if err != nil {
		return df, err
	}
	oldBalances, err := finiteColumn(df, StageBuildFeatures, dataset.ColOldBalanceOrig)
	if err != nil {
		return df, err
	}
	newBalances, err := finiteColumn(df, StageBuildFeatures, dataset.ColNewBalanceOrig)
	if err != nil {
		return df, err
	}
	accounts := df.Col(dataset.ColNameOrig).Records()

	n := df.Nrow()
	days := make([]int, n)
	for i, step := range steps {
		days[i] = DayBucket(step)
	}

	stats := AccountAggregates(accounts, amounts)

	var (
		counts    = make([]int, n)
		totals    = make([]float64, n)
		means     = make([]float64, n)
		maxes     = make([]float64, n)
		stdDevs   = make([]float64, n)
		zScores   = make([]float64, n)
		velocity  = make([]int, n)
		residuals = make([]float64, n)
	)

	perDay := make(map[velocityKey]int)
	for i, account := range accounts {
		perDay[velocityKey{account: account, day: days[i]}]++
	}

	for i, account := range accounts {
		s := stats[account]
		counts[i] = s.Count
		totals[i] = s.Total
		means[i] = s.Mean
		maxes[i] = s.Max
		stdDevs[i] = s.StdDev
		zScores[i] = ZScore(amounts[i], s.Mean, s.StdDev)
		velocity[i] = perDay[velocityKey{account: account, day: days[i]}]
		residuals[i] = BalanceError(oldBalances[i], amounts[i], newBalances[i])
	}

	df = df.Mutate(series.New(days, series.Int, dataset.ColDay)).
		Mutate(series.New(counts, series.Int, dataset.ColCountTransaction)).
		Mutate(series.New(totals, series.Float, dataset.ColTotalAmount)).
		Mutate(series.New(means, series.Float, dataset.ColAvgAmount)).
		Mutate(series.New(maxes, series.Float, dataset.ColMaxAmount)).
		Mutate(series.New(stdDevs, series.Float, dataset.ColStdAmount)).
		Mutate(series.New(zScores, series.Float, dataset.ColZScore)).
		Mutate(series.New(velocity, series.Int, dataset.ColDailyVelocityCount)).
		Mutate(series.New(residuals, series.Float, dataset.ColErrorBalanceOrig))
	if df.Err != nil {
		return df, fmt.Errorf("%s: attach feature columns: %w", StageBuildFeatures, df.Err)
	}

	return df, nil
}

// DayBucket maps an hourly step to its day: ceil(step / 24).
func DayBucket(step float64) int {
	return int(math.Ceil(step / stepsPerDay))
}

// AccountAggregates groups amounts by account in a single pass and computes
// count, sum, mean, max and population standard deviation per group.
func AccountAggregates(accounts []string, amounts []float64) map[string]AccountStats {
	grouped := make(map[string][]float64)
	for i, account := range accounts {
		grouped[account] = append(grouped[account], amounts[i])
	}

	out := make(map[string]AccountStats, len(grouped))
	for account, values := range grouped {
		mean, std := stat.PopMeanStdDev(values, nil)
		out[account] = AccountStats{
			Count:  len(values),
			Total:  floats.Sum(values),
			Mean:   mean,
			Max:    floats.Max(values),
			StdDev: std,
		}
	}
	return out
}

// ZScore returns (value - mean) / std, or NaN when std is zero.
func ZScore(value, mean, std float64) float64 {
	if std == 0 {
		return math.NaN()
	}
	return (value - mean) / std
}

// BalanceError returns newBalance + amount - oldBalance. Decimal arithmetic
// keeps a consistent ledger at exactly zero.
func BalanceError(oldBalance, amount, newBalance float64) float64 {
	return decimal.NewFromFloat(newBalance).
		Add(decimal.NewFromFloat(amount)).
		Sub(decimal.NewFromFloat(oldBalance)).
		InexactFloat64()
}
