package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/events"
)

// --- Mock implementations ---

type mockRunRepository struct {
	savedRun      *model.ScoringRun
	savedAccounts []model.AccountRiskSummary
	saveFunc      func(ctx context.Context, run *model.ScoringRun, accounts []model.AccountRiskSummary) error
	findRunFunc   func(ctx context.Context, id uuid.UUID) (*model.ScoringRun, error)
	findAccFunc   func(ctx context.Context, runID uuid.UUID, limit, offset int) ([]model.AccountRiskSummary, error)
}

func (m *mockRunRepository) SaveRun(ctx context.Context, run *model.ScoringRun, accounts []model.AccountRiskSummary) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, run, accounts)
	}
	m.savedRun = run
	m.savedAccounts = accounts
	return nil
}

func (m *mockRunRepository) FindRun(ctx context.Context, id uuid.UUID) (*model.ScoringRun, error) {
	if m.findRunFunc != nil {
		return m.findRunFunc(ctx, id)
	}
	return nil, port.ErrRunNotFound
}

func (m *mockRunRepository) FindAccountSummaries(ctx context.Context, runID uuid.UUID, limit, offset int) ([]model.AccountRiskSummary, error) {
	if m.findAccFunc != nil {
		return m.findAccFunc(ctx, runID, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
