package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
)

// RunSummary is the output DTO describing a completed scoring run.
type RunSummary struct {
	StartedAt           time.Time      `json:"started_at"`
	CompletedAt         time.Time      `json:"completed_at"`
	BandCounts          map[string]int `json:"band_counts"`
	Threshold           string         `json:"threshold"`
	TotalTransactions   int            `json:"total_transactions"`
	FlaggedTransactions int            `json:"flagged_transactions"`
	AlertRate           float64        `json:"alert_rate"`
	DurationMillis      int64          `json:"duration_ms"`
	RunID               uuid.UUID      `json:"run_id"`
}

// AccountSummary is the output DTO for one account of a run.
type AccountSummary struct {
	AccountID           string  `json:"account_id"`
	LastBand            string  `json:"last_band"`
	MaxRiskScore        float64 `json:"max_risk_score"`
	Transactions        int     `json:"transactions"`
	FlaggedTransactions int     `json:"flagged_transactions"`
}

// GetRunRequest is the input DTO for retrieving a run and a page of its accounts.
type GetRunRequest struct {
	RunID  uuid.UUID `json:"run_id"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// RunDetails is a run together with a page of its account summaries.
type RunDetails struct {
	Accounts []AccountSummary `json:"accounts"`
	Run      RunSummary       `json:"run"`
}

// FromRun maps a domain run to the response DTO.
func FromRun(r *model.ScoringRun) RunSummary {
	return RunSummary{
		RunID:               r.ID(),
		Threshold:           r.Threshold().String(),
		TotalTransactions:   r.TotalTransactions(),
		FlaggedTransactions: r.FlaggedTransactions(),
		AlertRate:           r.AlertRate(),
		BandCounts:          r.BandCounts(),
		StartedAt:           r.StartedAt(),
		CompletedAt:         r.CompletedAt(),
		DurationMillis:      r.Duration().Milliseconds(),
	}
}

// FromAccounts maps domain account summaries to DTOs.
func FromAccounts(accounts []model.AccountRiskSummary) []AccountSummary {
	out := make([]AccountSummary, len(accounts))
	for i, a := range accounts {
		out[i] = AccountSummary{
			AccountID:           a.AccountID,
			LastBand:            a.LastBand.String(),
			MaxRiskScore:        a.MaxRiskScore,
			Transactions:        a.Transactions,
			FlaggedTransactions: a.FlaggedTransactions,
		}
	}
	return out
}
