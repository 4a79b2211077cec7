package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
	pkgpostgres "github.com/MarwanRagab123/Bank-risk-analysis/pkg/postgres"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pkgpostgres.Querier
	pkgpostgres.TxBeginner
}

// RunRepository implements port.RunRepository using PostgreSQL.
type RunRepository struct {
	db DB
}

// NewRunRepository creates a new PostgreSQL-backed run repository.
func NewRunRepository(db DB) *RunRepository {
	return &RunRepository{db: db}
}

var accountColumns = []string{
	"run_id", "account_id", "last_band", "max_risk_score", "transactions", "flagged_transactions",
}

// SaveRun persists a run and bulk-copies its account summaries in one transaction.
func (r *RunRepository) SaveRun(ctx context.Context, run *model.ScoringRun, accounts []model.AccountRiskSummary) error {
	return pkgpostgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO scoring_runs (
				id, threshold, total_transactions, flagged_transactions,
				band_counts, started_at, completed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, query,
			run.ID(),
			run.Threshold().String(),
			run.TotalTransactions(),
			run.FlaggedTransactions(),
			run.BandCounts(),
			run.StartedAt(),
			run.CompletedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save scoring run: %w", err)
		}

		if len(accounts) == 0 {
			return nil
		}

		rows := make([][]any, len(accounts))
		for i, a := range accounts {
			rows[i] = []any{
				run.ID(), a.AccountID, a.LastBand.String(),
				a.MaxRiskScore, a.Transactions, a.FlaggedTransactions,
			}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"account_risk_summaries"}, accountColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("failed to save account summaries: %w", err)
		}
		return nil
	})
}

// FindRun retrieves a run by its unique identifier.
func (r *RunRepository) FindRun(ctx context.Context, id uuid.UUID) (*model.ScoringRun, error) {
	query := `
		SELECT id, threshold, total_transactions, flagged_transactions,
			band_counts, started_at, completed_at
		FROM scoring_runs
		WHERE id = $1
	`

	var (
		runID        uuid.UUID
		thresholdStr string
		total        int
		flagged      int
		bandCounts   map[string]int
		startedAt    time.Time
		completedAt  time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&runID, &thresholdStr, &total, &flagged,
		&bandCounts, &startedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", port.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to scan scoring run: %w", err)
	}

	threshold, err := valueobject.RiskBandFromString(thresholdStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse threshold: %w", err)
	}

	return model.ReconstructScoringRun(
		runID, threshold, total, flagged, bandCounts,
		startedAt.UTC(), completedAt.UTC(),
	), nil
}

// FindAccountSummaries retrieves a page of a run's accounts, riskiest first.
func (r *RunRepository) FindAccountSummaries(ctx context.Context, runID uuid.UUID, limit, offset int) ([]model.AccountRiskSummary, error) {
	query := `
		SELECT account_id, last_band, max_risk_score, transactions, flagged_transactions
		FROM account_risk_summaries
		WHERE run_id = $1
		ORDER BY max_risk_score DESC, account_id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, runID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query account summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.AccountRiskSummary, 0, limit)
	for rows.Next() {
		var (
			s       model.AccountRiskSummary
			bandStr string
		)
		if err := rows.Scan(&s.AccountID, &bandStr, &s.MaxRiskScore, &s.Transactions, &s.FlaggedTransactions); err != nil {
			return nil, fmt.Errorf("failed to scan account summary: %w", err)
		}
		if s.LastBand, err = valueobject.RiskBandFromString(bandStr); err != nil {
			return nil, fmt.Errorf("failed to parse band: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account summaries: %w", err)
	}

	return summaries, nil
}
