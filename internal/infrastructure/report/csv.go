package report

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
)

// FlaggedTransactions returns the rows of df listed in s.FlaggedRows.
func FlaggedTransactions(df dataframe.DataFrame, s Summary) (dataframe.DataFrame, error) {
	rows := s.FlaggedRows
	if rows == nil {
		rows = []int{}
	}
	flagged := df.Subset(rows)
	if flagged.Err != nil {
		return flagged, fmt.Errorf("failed to select flagged transactions: %w", flagged.Err)
	}
	return flagged, nil
}

// WriteFlaggedCSV writes every flagged row with all of its columns.
func WriteFlaggedCSV(w io.Writer, df dataframe.DataFrame, s Summary) error {
	flagged, err := FlaggedTransactions(df, s)
	if err != nil {
		return err
	}
	if err := flagged.WriteCSV(w); err != nil {
		return fmt.Errorf("failed to write flagged transactions: %w", err)
	}
	return nil
}

// CustomerSummary is the per-account table: highest score and latest band.
func CustomerSummary(s Summary) dataframe.DataFrame {
	ids := make([]string, len(s.Accounts))
	maxScores := make([]float64, len(s.Accounts))
	bands := make([]string, len(s.Accounts))
	for i, a := range s.Accounts {
		ids[i] = a.AccountID
		maxScores[i] = a.MaxRiskScore
		bands[i] = a.LastBand.String()
	}
	return dataframe.New(
		series.New(ids, series.String, dataset.ColNameOrig),
		series.New(maxScores, series.Float, dataset.ColFinalRiskScore),
		series.New(bands, series.String, dataset.ColRiskBand),
	)
}

// WriteCustomerSummaryCSV writes CustomerSummary(s).
func WriteCustomerSummaryCSV(w io.Writer, s Summary) error {
	if err := CustomerSummary(s).WriteCSV(w); err != nil {
		return fmt.Errorf("failed to write customer summary: %w", err)
	}
	return nil
}
