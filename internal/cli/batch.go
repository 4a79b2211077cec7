// Package cli implements the riskctl command: a one-shot batch run and the
// interactive step-by-step menu.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/usecase"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/csvio"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/report"
)

// BatchOptions configure a batch run.
type BatchOptions struct {
	Input string
	// SkipClean scores the table as loaded, without dropping incomplete or
	// duplicate rows.
	SkipClean bool
}

// Batch loads the ledger, scores it through the use case, writes every report
// and prints the console summary.
func Batch(ctx context.Context, opts BatchOptions, uc *usecase.RunAssessment, gen *report.Generator, out io.Writer, logger *slog.Logger) error {
	df, err := csvio.LoadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", opts.Input, err)
	}
	loaded := df.Nrow()

	if !opts.SkipClean {
		df, err = csvio.Clean(df)
		if err != nil {
			return fmt.Errorf("failed to clean data: %w", err)
		}
		logger.Info("data cleaned", "loaded_rows", loaded, "kept_rows", df.Nrow())
	}

	res, err := uc.Execute(ctx, df)
	if err != nil {
		return err
	}

	summary, err := report.Summarize(res.Table)
	if err != nil {
		return fmt.Errorf("failed to summarize run: %w", err)
	}
	paths, err := gen.Write(res.Table, summary)
	if err != nil {
		return err
	}

	if err := report.WriteConsoleSummary(out, summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "Run %s: %s risk. %s\n", res.Run.RunID, summary.Status, summary.Status.Message())
	fmt.Fprintf(out, "Reports saved in folder: %s\n", gen.Dir())
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
