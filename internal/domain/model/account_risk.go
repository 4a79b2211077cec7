package model

import "github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"

// AccountRiskSummary condenses every scored row of one originating account.
type AccountRiskSummary struct {
	AccountID string
	// LastBand is the band of the account's last row in table order.
	LastBand            valueobject.RiskBand
	MaxRiskScore        float64
	Transactions        int
	FlaggedTransactions int
}
