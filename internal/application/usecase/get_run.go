package usecase

import (
	"context"
	"fmt"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/dto"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GetRun is the use case for reading back a stored run and its accounts.
type GetRun struct {
	repo port.RunRepository
}

// NewGetRun creates a new GetRun use case.
func NewGetRun(repo port.RunRepository) *GetRun {
	return &GetRun{repo: repo}
}

// Execute retrieves the run and one page of its account summaries.
func (uc *GetRun) Execute(ctx context.Context, req dto.GetRunRequest) (dto.RunDetails, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)
	offset := max(req.Offset, 0)

	run, err := uc.repo.FindRun(ctx, req.RunID)
	if err != nil {
		return dto.RunDetails{}, fmt.Errorf("failed to find scoring run: %w", err)
	}

	accounts, err := uc.repo.FindAccountSummaries(ctx, req.RunID, limit, offset)
	if err != nil {
		return dto.RunDetails{}, fmt.Errorf("failed to find account summaries: %w", err)
	}

	return dto.RunDetails{
		Run:      dto.FromRun(run),
		Accounts: dto.FromAccounts(accounts),
	}, nil
}
