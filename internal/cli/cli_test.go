package cli_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/usecase"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/cli"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/config"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/csvio"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/report"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeLedger(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newGenerator(t *testing.T) *report.Generator {
	t.Helper()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return report.NewGenerator(filepath.Join(t.TempDir(), "Reports"), discardLogger()).
		WithClock(func() time.Time { return fixed })
}

func TestBatch(t *testing.T) {
	rows := testutil.ScenarioRows()
	input := writeLedger(t, testutil.LedgerCSV(append(rows, rows[1])...))
	gen := newGenerator(t)
	uc := usecase.NewRunAssessment(config.DefaultPolicy().Pipeline(), nil, nil, discardLogger())

	var out bytes.Buffer
	err := cli.Batch(context.Background(), cli.BatchOptions{Input: input}, uc, gen, &out, discardLogger())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Total Transactions:    5")
	assert.Contains(t, out.String(), "Flagged as Suspicious: 1")
	assert.Contains(t, out.String(), "HIGH risk")
	for _, name := range []string{
		report.FlaggedCSVFile,
		report.CustomerSummaryCSVFile,
		report.TextReportFile,
		report.PDFReportFile,
	} {
		assert.FileExists(t, filepath.Join(gen.Dir(), name))
		assert.Contains(t, out.String(), name)
	}

	flagged, err := csvio.LoadFile(filepath.Join(gen.Dir(), report.FlaggedCSVFile))
	require.NoError(t, err)
	assert.Equal(t, 1, flagged.Nrow())
}

func TestBatch_SkipClean(t *testing.T) {
	rows := testutil.ScenarioRows()
	input := writeLedger(t, testutil.LedgerCSV(append(rows, rows[1])...))
	uc := usecase.NewRunAssessment(config.DefaultPolicy().Pipeline(), nil, nil, discardLogger())

	var out bytes.Buffer
	err := cli.Batch(context.Background(), cli.BatchOptions{Input: input, SkipClean: true}, uc, newGenerator(t), &out, discardLogger())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Total Transactions:    6")
}

func TestBatch_MissingFile(t *testing.T) {
	uc := usecase.NewRunAssessment(config.DefaultPolicy().Pipeline(), nil, nil, discardLogger())

	err := cli.Batch(context.Background(), cli.BatchOptions{Input: filepath.Join(t.TempDir(), "nope.csv")},
		uc, newGenerator(t), io.Discard, discardLogger())
	require.ErrorIs(t, err, csvio.ErrFileNotFound)
}

func TestSession_FullWalkthrough(t *testing.T) {
	input := writeLedger(t, testutil.ScenarioCSV())
	gen := newGenerator(t)

	var out bytes.Buffer
	session := cli.NewSession(config.DefaultPolicy().Pipeline(), gen, input,
		strings.NewReader("1\n2\n3\n4\n5\n7\n6\n0\n"), &out, discardLogger())
	require.NoError(t, session.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Data loaded successfully! 5 rows.")
	assert.Contains(t, text, "5 of 5 rows kept")
	assert.Contains(t, text, "Features built successfully!")
	assert.Contains(t, text, "Risk scores computed successfully!")
	assert.Contains(t, text, "Suspicious transactions flagged successfully!")
	assert.Contains(t, text, "Flagged as Suspicious: 1")
	assert.Contains(t, text, "Thank you for using the application!")
	assert.NotContains(t, text, "Error")
	assert.FileExists(t, filepath.Join(gen.Dir(), report.PDFReportFile))

	df, ok := session.Data()
	require.True(t, ok)
	testutil.RequireColumns(t, df, "final_risk_score", "risk_band", "is_suspicious")
}

func TestSession_ErrorsKeepMenuRunning(t *testing.T) {
	input := writeLedger(t, testutil.ScenarioCSV())

	var out bytes.Buffer
	session := cli.NewSession(config.DefaultPolicy().Pipeline(), newGenerator(t), input,
		strings.NewReader("3\nabc\n\n9\n1\n4\n7\n"), &out, discardLogger())
	require.NoError(t, session.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, cli.ErrNoData.Error())
	assert.Contains(t, text, "Please enter a valid number")
	assert.Contains(t, text, "Please enter a number from the menu")
	assert.Contains(t, text, "unknown menu option 9")
	// scoring before building features fails on the missing aggregates
	assert.Contains(t, text, "count_transaction")
	assert.Contains(t, text, "Data loaded successfully!")
}

func TestSession_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := cli.NewSession(config.DefaultPolicy().Pipeline(), newGenerator(t), "unused.csv",
		strings.NewReader("1\n"), io.Discard, discardLogger())
	require.ErrorIs(t, session.Run(ctx), context.Canceled)
}
