// Package report renders a flagged transaction table into the analyst
// deliverables: CSV extracts, a plain-text report, a PDF and a console digest.
package report

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/service"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// TopN is how many rows the ranked report sections list.
const TopN = 5

// RiskStatus grades a run by its alert rate.
type RiskStatus string

const (
	RiskStatusHigh   RiskStatus = "HIGH"
	RiskStatusMedium RiskStatus = "MEDIUM"
	RiskStatusLow    RiskStatus = "LOW"
)

// StatusForAlertRate maps an alert rate in percent to a status:
// above 5 is HIGH, above 2 is MEDIUM, anything else LOW.
func StatusForAlertRate(rate float64) RiskStatus {
	switch {
	case rate > 5:
		return RiskStatusHigh
	case rate > 2:
		return RiskStatusMedium
	default:
		return RiskStatusLow
	}
}

// Message is the analyst guidance printed next to the status.
func (s RiskStatus) Message() string {
	switch s {
	case RiskStatusHigh:
		return "Immediate review recommended."
	case RiskStatusMedium:
		return "Continuous monitoring advised."
	default:
		return "System operating within normal thresholds."
	}
}

// BandCount is one line of the band distribution.
type BandCount struct {
	Band    valueobject.RiskBand
	Count   int
	Percent float64
}

// AccountCount ranks an account by its flagged rows.
type AccountCount struct {
	AccountID string
	Flagged   int
}

// RankedTransaction is one row of the highest-score listing.
type RankedTransaction struct {
	AccountID string
	Band      valueobject.RiskBand
	Amount    float64
	Score     float64
}

// Summary holds every figure the report writers print.
type Summary struct {
	Status          RiskStatus
	Bands           []BandCount
	TopAccounts     []AccountCount
	TopTransactions []RankedTransaction
	Accounts        []model.AccountRiskSummary
	FlaggedRows     []int
	AmountBuckets   []AmountBucket
	Total           int
	Flagged         int
	AlertRate       float64
	AverageScore    float64
	HighestScore    float64
}

// Normal is the count of rows that were not flagged.
func (s Summary) Normal() int {
	return s.Total - s.Flagged
}

// Summarize reads a flagged table into a Summary.
func Summarize(df dataframe.DataFrame) (Summary, error) {
	outcome, err := service.Outcome(df)
	if err != nil {
		return Summary{}, err
	}
	accounts, err := service.SummarizeAccounts(df)
	if err != nil {
		return Summary{}, err
	}
	top, err := topTransactions(df, TopN)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Total:           outcome.TotalTransactions,
		Flagged:         len(outcome.Flagged),
		Accounts:        accounts,
		TopTransactions: top,
		Bands:           bandDistribution(outcome),
		TopAccounts:     topFlaggedAccounts(outcome.Flagged, TopN),
	}
	s.AlertRate = float64(s.Flagged) / float64(s.Total) * 100
	s.Status = StatusForAlertRate(s.AlertRate)
	for _, f := range outcome.Flagged {
		s.FlaggedRows = append(s.FlaggedRows, f.Row)
	}
	s.AverageScore, s.HighestScore = scoreStats(df)
	s.AmountBuckets, err = amountDistribution(df, s.FlaggedRows)
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

// bandDistribution lists the bands present, most frequent first.
func bandDistribution(outcome model.RunOutcome) []BandCount {
	var out []BandCount
	for _, band := range valueobject.AllRiskBands() {
		n := outcome.BandCounts[band.String()]
		if n == 0 {
			continue
		}
		out = append(out, BandCount{
			Band:    band,
			Count:   n,
			Percent: float64(n) / float64(outcome.TotalTransactions) * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// topFlaggedAccounts ranks accounts by flagged rows; ties keep table order.
func topFlaggedAccounts(flagged []model.FlaggedTransaction, n int) []AccountCount {
	index := make(map[string]int)
	var out []AccountCount
	for _, f := range flagged {
		i, ok := index[f.AccountID]
		if !ok {
			i = len(out)
			index[f.AccountID] = i
			out = append(out, AccountCount{AccountID: f.AccountID})
		}
		out[i].Flagged++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Flagged > out[j].Flagged })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// topTransactions returns the n highest-scoring rows; ties keep table order.
func topTransactions(df dataframe.DataFrame, n int) ([]RankedTransaction, error) {
	sorted := df.Arrange(dataframe.RevSort(dataset.ColFinalRiskScore))
	if sorted.Err != nil {
		return nil, fmt.Errorf("failed to rank transactions: %w", sorted.Err)
	}
	if sorted.Nrow() < n {
		n = sorted.Nrow()
	}

	accounts := sorted.Col(dataset.ColNameOrig).Records()
	amounts := sorted.Col(dataset.ColAmount).Float()
	scores := sorted.Col(dataset.ColFinalRiskScore).Float()
	labels := sorted.Col(dataset.ColRiskBand).Records()

	out := make([]RankedTransaction, n)
	for i := range out {
		band, err := valueobject.RiskBandFromString(labels[i])
		if err != nil {
			return nil, err
		}
		out[i] = RankedTransaction{
			AccountID: accounts[i],
			Band:      band,
			Amount:    amounts[i],
			Score:     scores[i],
		}
	}
	return out, nil
}
