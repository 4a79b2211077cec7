package model

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/event"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/events"
)

// FlaggedTransaction is one suspicious row of a scored table.
type FlaggedTransaction struct {
	AccountID string
	RiskBand  valueobject.RiskBand
	Amount    float64
	RiskScore float64
	Row       int
	Step      int
}

// RunOutcome is what a finished pipeline pass reports back to its run.
type RunOutcome struct {
	BandCounts        map[string]int
	Flagged           []FlaggedTransaction
	TotalTransactions int
}

// ScoringRun is the aggregate root for one pass of the risk pipeline over a
// loaded ledger. It carries report data only; scoring never reads it back.
type ScoringRun struct {
	events.EventCollector

	startedAt           time.Time
	completedAt         time.Time
	bandCounts          map[string]int
	threshold           valueobject.RiskBand
	totalTransactions   int
	flaggedTransactions int
	id                  uuid.UUID
}

// NewScoringRun starts a run that flags rows at or above threshold.
func NewScoringRun(threshold valueobject.RiskBand) (*ScoringRun, error) {
	if threshold.IsZero() {
		return nil, errors.New("flag threshold is required")
	}
	return &ScoringRun{
		id:         uuid.New(),
		threshold:  threshold,
		startedAt:  time.Now().UTC(),
		bandCounts: make(map[string]int),
	}, nil
}

// Complete records the outcome of the pipeline and emits one
// TransactionFlagged event per suspicious row plus a ScoringRunCompleted event.
func (r *ScoringRun) Complete(outcome RunOutcome) error {
	if r.IsCompleted() {
		return fmt.Errorf("scoring run %s is already completed", r.id)
	}
	if outcome.TotalTransactions <= 0 {
		return errors.New("completed run must cover at least one transaction")
	}
	if len(outcome.Flagged) > outcome.TotalTransactions {
		return fmt.Errorf("flagged count %d exceeds total %d", len(outcome.Flagged), outcome.TotalTransactions)
	}

	r.completedAt = time.Now().UTC()
	r.totalTransactions = outcome.TotalTransactions
	r.flaggedTransactions = len(outcome.Flagged)
	r.bandCounts = maps.Clone(outcome.BandCounts)
	if r.bandCounts == nil {
		r.bandCounts = make(map[string]int)
	}

	for _, f := range outcome.Flagged {
		r.Record(event.TransactionFlagged{
			RunID:     r.id,
			AccountID: f.AccountID,
			Row:       f.Row,
			Step:      f.Step,
			Amount:    f.Amount,
			RiskScore: f.RiskScore,
			RiskBand:  f.RiskBand.String(),
			FlaggedAt: r.completedAt,
		})
	}

	r.Record(event.ScoringRunCompleted{
		RunID:               r.id,
		TotalTransactions:   r.totalTransactions,
		FlaggedTransactions: r.flaggedTransactions,
		BandCounts:          maps.Clone(r.bandCounts),
		Threshold:           r.threshold.String(),
		CompletedAt:         r.completedAt,
	})

	return nil
}

// ReconstructScoringRun rebuilds a run from persisted data (no validation, no events).
func ReconstructScoringRun(
	id uuid.UUID,
	threshold valueobject.RiskBand,
	totalTransactions, flaggedTransactions int,
	bandCounts map[string]int,
	startedAt, completedAt time.Time,
) *ScoringRun {
	return &ScoringRun{
		id:                  id,
		threshold:           threshold,
		totalTransactions:   totalTransactions,
		flaggedTransactions: flaggedTransactions,
		bandCounts:          bandCounts,
		startedAt:           startedAt,
		completedAt:         completedAt,
	}
}

// --- Accessors ---

func (r *ScoringRun) ID() uuid.UUID                   { return r.id }
func (r *ScoringRun) Threshold() valueobject.RiskBand { return r.threshold }
func (r *ScoringRun) StartedAt() time.Time            { return r.startedAt }
func (r *ScoringRun) CompletedAt() time.Time          { return r.completedAt }
func (r *ScoringRun) TotalTransactions() int          { return r.totalTransactions }
func (r *ScoringRun) FlaggedTransactions() int        { return r.flaggedTransactions }
func (r *ScoringRun) BandCounts() map[string]int      { return maps.Clone(r.bandCounts) }
func (r *ScoringRun) IsCompleted() bool               { return !r.completedAt.IsZero() }

// AlertRate returns the flagged share of transactions as a percentage.
func (r *ScoringRun) AlertRate() float64 {
	if r.totalTransactions == 0 {
		return 0
	}
	return float64(r.flaggedTransactions) / float64(r.totalTransactions) * 100
}

// Duration returns how long the run took; zero while it is still running.
func (r *ScoringRun) Duration() time.Duration {
	if !r.IsCompleted() {
		return 0
	}
	return r.completedAt.Sub(r.startedAt)
}
