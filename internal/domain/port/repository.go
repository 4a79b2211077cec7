package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/events"
)

// ErrRunNotFound is returned when no scoring run matches the requested id.
var ErrRunNotFound = errors.New("scoring run not found")

// RunRepository defines the persistence port for finished scoring runs and
// their per-account summaries. Report output only: scoring never reads it.
type RunRepository interface {
	// SaveRun persists a completed run together with its account summaries.
	SaveRun(ctx context.Context, run *model.ScoringRun, accounts []model.AccountRiskSummary) error

	// FindRun retrieves a run by its unique identifier.
	FindRun(ctx context.Context, id uuid.UUID) (*model.ScoringRun, error)

	// FindAccountSummaries retrieves the account summaries stored for a run.
	FindAccountSummaries(ctx context.Context, runID uuid.UUID, limit, offset int) ([]model.AccountRiskSummary, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}
