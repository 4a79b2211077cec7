// Package dataset names the columns of the transaction table and the errors
// raised when a pipeline stage receives a table it cannot work with.
package dataset

// Raw ledger columns expected from the loader.
const (
	ColStep           = "step"
	ColType           = "type"
	ColAmount         = "amount"
	ColNameOrig       = "nameOrig"
	ColOldBalanceOrig = "oldbalanceOrg"
	ColNewBalanceOrig = "newbalanceOrig"
	ColNameDest       = "nameDest"
	ColOldBalanceDest = "oldbalanceDest"
	ColNewBalanceDest = "newbalanceDest"
	ColIsFraud        = "isFraud"
	ColIsFlaggedFraud = "isFlaggedFraud"
)

// Columns added by the feature builder.
const (
	ColDay                = "day"
	ColCountTransaction   = "count_transaction"
	ColTotalAmount        = "total_amount"
	ColAvgAmount          = "avg_amount"
	ColMaxAmount          = "max_amount"
	ColStdAmount          = "std_amount"
	ColZScore             = "z_score"
	ColDailyVelocityCount = "daily_velocity_count"
	ColErrorBalanceOrig   = "errorBalanceOrig"
)

// Columns added by the risk scorer and the flagger.
const (
	ColFinalRiskScore = "final_risk_score"
	ColRiskBand       = "risk_band"
	ColIsSuspicious   = "is_suspicious"
)

// ScoreSuffix is appended to a feature column name to form its normalized
// score column, e.g. "avg_amount_zscore".
const ScoreSuffix = "_zscore"

// FeatureInputColumns are the raw columns the feature builder reads.
var FeatureInputColumns = []string{
	ColStep,
	ColAmount,
	ColNameOrig,
	ColOldBalanceOrig,
	ColNewBalanceOrig,
}
