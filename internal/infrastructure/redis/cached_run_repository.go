package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// CachedRunRepository is a read-through cache in front of a port.RunRepository.
// Cache failures are logged and fall back to the wrapped repository.
type CachedRunRepository struct {
	next   port.RunRepository
	cache  Cache
	logger *slog.Logger
	ttl    time.Duration
}

// NewCachedRunRepository wraps next with cache.
func NewCachedRunRepository(next port.RunRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedRunRepository {
	return &CachedRunRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

type runEntry struct {
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	BandCounts  map[string]int `json:"band_counts"`
	Threshold   string         `json:"threshold"`
	Total       int            `json:"total"`
	Flagged     int            `json:"flagged"`
	ID          uuid.UUID      `json:"id"`
}

type accountEntry struct {
	AccountID    string  `json:"account_id"`
	LastBand     string  `json:"last_band"`
	MaxRiskScore float64 `json:"max_risk_score"`
	Transactions int     `json:"transactions"`
	Flagged      int     `json:"flagged"`
}

func runKey(id uuid.UUID) string {
	return "risk:run:" + id.String()
}

func accountsKey(id uuid.UUID, limit, offset int) string {
	return fmt.Sprintf("risk:run:%s:accounts:%d:%d", id, limit, offset)
}

// SaveRun saves through to the wrapped repository, then warms the run entry.
func (r *CachedRunRepository) SaveRun(ctx context.Context, run *model.ScoringRun, accounts []model.AccountRiskSummary) error {
	if err := r.next.SaveRun(ctx, run, accounts); err != nil {
		return err
	}
	r.store(ctx, runKey(run.ID()), newRunEntry(run))
	return nil
}

// FindRun serves a run from the cache, loading it on a miss.
func (r *CachedRunRepository) FindRun(ctx context.Context, id uuid.UUID) (*model.ScoringRun, error) {
	var entry runEntry
	if r.load(ctx, runKey(id), &entry) {
		run, err := entry.toModel()
		if err == nil {
			return run, nil
		}
		r.logger.WarnContext(ctx, "discarding unreadable cache entry", slog.String("run_id", id.String()), slog.Any("error", err))
	}

	run, err := r.next.FindRun(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, runKey(id), newRunEntry(run))
	return run, nil
}

// FindAccountSummaries serves a page of accounts from the cache, loading it on a miss.
func (r *CachedRunRepository) FindAccountSummaries(ctx context.Context, runID uuid.UUID, limit, offset int) ([]model.AccountRiskSummary, error) {
	key := accountsKey(runID, limit, offset)

	var entries []accountEntry
	if r.load(ctx, key, &entries) {
		accounts, err := accountsFromEntries(entries)
		if err == nil {
			return accounts, nil
		}
		r.logger.WarnContext(ctx, "discarding unreadable cache entry", slog.String("key", key), slog.Any("error", err))
	}

	accounts, err := r.next.FindAccountSummaries(ctx, runID, limit, offset)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, newAccountEntries(accounts))
	return accounts, nil
}

func (r *CachedRunRepository) load(ctx context.Context, key string, dst any) bool {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.WarnContext(ctx, "cache entry is not valid json", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (r *CachedRunRepository) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = r.cache.Set(ctx, key, data, r.ttl)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func newRunEntry(run *model.ScoringRun) runEntry {
	return runEntry{
		ID:          run.ID(),
		Threshold:   run.Threshold().String(),
		Total:       run.TotalTransactions(),
		Flagged:     run.FlaggedTransactions(),
		BandCounts:  run.BandCounts(),
		StartedAt:   run.StartedAt(),
		CompletedAt: run.CompletedAt(),
	}
}

func (e runEntry) toModel() (*model.ScoringRun, error) {
	threshold, err := valueobject.RiskBandFromString(e.Threshold)
	if err != nil {
		return nil, err
	}
	return model.ReconstructScoringRun(e.ID, threshold, e.Total, e.Flagged, e.BandCounts, e.StartedAt, e.CompletedAt), nil
}

func newAccountEntries(accounts []model.AccountRiskSummary) []accountEntry {
	out := make([]accountEntry, len(accounts))
	for i, a := range accounts {
		out[i] = accountEntry{
			AccountID:    a.AccountID,
			LastBand:     a.LastBand.String(),
			MaxRiskScore: a.MaxRiskScore,
			Transactions: a.Transactions,
			Flagged:      a.FlaggedTransactions,
		}
	}
	return out
}

func accountsFromEntries(entries []accountEntry) ([]model.AccountRiskSummary, error) {
	out := make([]model.AccountRiskSummary, len(entries))
	for i, e := range entries {
		band, err := valueobject.RiskBandFromString(e.LastBand)
		if err != nil {
			return nil, err
		}
		out[i] = model.AccountRiskSummary{
			AccountID:           e.AccountID,
			LastBand:            band,
			MaxRiskScore:        e.MaxRiskScore,
			Transactions:        e.Transactions,
			FlaggedTransactions: e.Flagged,
		}
	}
	return out, nil
}
