package report

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// Output file names written by Generator.
const (
	FlaggedCSVFile         = "flagged_transactions.csv"
	CustomerSummaryCSVFile = "customer_risk_summary.csv"
	TextReportFile         = "Report_Summary.txt"
	PDFReportFile          = "Transaction_Risk_Analysis_Report.pdf"
)

// Generator writes the full report set for a flagged table into a directory.
type Generator struct {
	logger *slog.Logger
	now    func() time.Time
	dir    string
}

// NewGenerator creates a Generator writing into dir.
func NewGenerator(dir string, logger *slog.Logger) *Generator {
	return &Generator{dir: dir, logger: logger, now: time.Now}
}

// WithClock overrides the timestamp printed in the reports.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Dir returns the output directory.
func (g *Generator) Dir() string {
	return g.dir
}

// Generate summarizes df and writes every report file, creating the output
// directory if needed. It returns the paths written, in write order.
func (g *Generator) Generate(df dataframe.DataFrame) ([]string, error) {
	s, err := Summarize(df)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize table: %w", err)
	}
	return g.Write(df, s)
}

// Write renders an existing Summary of df.
func (g *Generator) Write(df dataframe.DataFrame, s Summary) ([]string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	generatedAt := g.now()
	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{FlaggedCSVFile, func(w io.Writer) error { return WriteFlaggedCSV(w, df, s) }},
		{CustomerSummaryCSVFile, func(w io.Writer) error { return WriteCustomerSummaryCSV(w, s) }},
		{TextReportFile, func(w io.Writer) error { return WriteTextReport(w, s, generatedAt) }},
		{PDFReportFile, func(w io.Writer) error { return WritePDFReport(w, s, generatedAt) }},
	}

	paths := make([]string, 0, len(writers))
	for _, wr := range writers {
		var buf bytes.Buffer
		if err := wr.write(&buf); err != nil {
			return paths, err
		}
		path := filepath.Join(g.dir, wr.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		g.logger.Debug("report written", slog.String("path", path), slog.Int("bytes", buf.Len()))
		paths = append(paths, path)
	}

	g.logger.Info("reports generated",
		slog.String("dir", g.dir),
		slog.Int("transactions", s.Total),
		slog.Int("flagged", s.Flagged),
	)
	return paths, nil
}
