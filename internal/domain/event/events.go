package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeTransactionFlagged is emitted for every transaction marked suspicious.
	EventTypeTransactionFlagged = "fraud.transaction.flagged"

	// EventTypeScoringRunCompleted is emitted once a scoring run has annotated its table.
	EventTypeScoringRunCompleted = "fraud.scoring_run.completed"
)

// TransactionFlagged is published when a transaction's risk band reaches the
// suspicious threshold.
type TransactionFlagged struct {
	FlaggedAt time.Time `json:"flagged_at"`
	AccountID string    `json:"account_id"`
	RiskBand  string    `json:"risk_band"`
	Amount    float64   `json:"amount"`
	RiskScore float64   `json:"risk_score"`
	Row       int       `json:"row"`
	Step      int       `json:"step"`
	RunID     uuid.UUID `json:"run_id"`
}

// EventType returns the event type identifier.
func (e TransactionFlagged) EventType() string {
	return EventTypeTransactionFlagged
}

// AggregateID keys flagged events by originating account.
func (e TransactionFlagged) AggregateID() string {
	return e.AccountID
}

// OccurredAt returns when the transaction was flagged.
func (e TransactionFlagged) OccurredAt() time.Time {
	return e.FlaggedAt
}

// ScoringRunCompleted summarizes a finished scoring run.
type ScoringRunCompleted struct {
	CompletedAt         time.Time      `json:"completed_at"`
	BandCounts          map[string]int `json:"band_counts"`
	Threshold           string         `json:"threshold"`
	TotalTransactions   int            `json:"total_transactions"`
	FlaggedTransactions int            `json:"flagged_transactions"`
	RunID               uuid.UUID      `json:"run_id"`
}

// EventType returns the event type identifier.
func (e ScoringRunCompleted) EventType() string {
	return EventTypeScoringRunCompleted
}

// AggregateID returns the run ID as the aggregate identifier.
func (e ScoringRunCompleted) AggregateID() string {
	return e.RunID.String()
}

// OccurredAt returns when the run completed.
func (e ScoringRunCompleted) OccurredAt() time.Time {
	return e.CompletedAt
}
