package service

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

const stageSummarize = "summarize"

// scoredRow is the subset of a flagged table read by the summaries.
type scoredRow struct {
	account    string
	band       valueobject.RiskBand
	amount     float64
	score      float64
	step       int
	suspicious bool
}

func scoredRows(df dataframe.DataFrame) ([]scoredRow, error) {
	if err := dataset.CheckNotEmpty(df); err != nil {
		return nil, fmt.Errorf("%s: %w", stageSummarize, err)
	}
	if err := dataset.RequireColumns(df, stageSummarize,
		dataset.ColStep, dataset.ColAmount, dataset.ColNameOrig,
		dataset.ColFinalRiskScore, dataset.ColRiskBand, dataset.ColIsSuspicious,
	); err != nil {
		return nil, err
	}

	steps := df.Col(dataset.ColStep).Float()
	amounts := df.Col(dataset.ColAmount).Float()
	accounts := df.Col(dataset.ColNameOrig).Records()
	scores := df.Col(dataset.ColFinalRiskScore).Float()
	labels := df.Col(dataset.ColRiskBand).Records()
	flags := df.Col(dataset.ColIsSuspicious)

	rows := make([]scoredRow, len(accounts))
	for i := range rows {
		band, err := valueobject.RiskBandFromString(labels[i])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", stageSummarize, i, err)
		}
		suspicious, err := flags.Elem(i).Bool()
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", stageSummarize, i, err)
		}
		rows[i] = scoredRow{
			account:    accounts[i],
			band:       band,
			amount:     amounts[i],
			score:      scores[i],
			step:       int(steps[i]),
			suspicious: suspicious,
		}
	}
	return rows, nil
}

// Outcome condenses a flagged table into the figures a ScoringRun records.
func Outcome(df dataframe.DataFrame) (model.RunOutcome, error) {
	rows, err := scoredRows(df)
	if err != nil {
		return model.RunOutcome{}, err
	}

	out := model.RunOutcome{
		TotalTransactions: len(rows),
		BandCounts:        make(map[string]int),
	}
	for i, r := range rows {
		out.BandCounts[r.band.String()]++
		if r.suspicious {
			out.Flagged = append(out.Flagged, model.FlaggedTransaction{
				AccountID: r.account,
				RiskBand:  r.band,
				Amount:    r.amount,
				RiskScore: r.score,
				Row:       i,
				Step:      r.step,
			})
		}
	}
	return out, nil
}

// SummarizeAccounts returns one summary per originating account, ordered by
// account id: the maximum score, the band of the last row and row counts.
func SummarizeAccounts(df dataframe.DataFrame) ([]model.AccountRiskSummary, error) {
	rows, err := scoredRows(df)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string]*model.AccountRiskSummary)
	for _, r := range rows {
		s, ok := byAccount[r.account]
		if !ok {
			s = &model.AccountRiskSummary{AccountID: r.account, MaxRiskScore: r.score}
			byAccount[r.account] = s
		}
		s.Transactions++
		if r.score > s.MaxRiskScore {
			s.MaxRiskScore = r.score
		}
		s.LastBand = r.band
		if r.suspicious {
			s.FlaggedTransactions++
		}
	}

	out := make([]model.AccountRiskSummary, 0, len(byAccount))
	for _, s := range byAccount {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}
