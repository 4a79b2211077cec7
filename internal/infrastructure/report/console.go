package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteConsoleSummary prints the short digest shown after an interactive run.
func WriteConsoleSummary(w io.Writer, s Summary) error {
	rule := strings.Repeat("=", 40)
	thin := strings.Repeat("-", 40)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "FRAUD ANALYSIS SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Transactions:    %s\n", groupThousands(s.Total))
	fmt.Fprintf(w, "Flagged as Suspicious: %s\n", groupThousands(s.Flagged))
	fmt.Fprintf(w, "Alert Rate:            %.2f%%\n", s.AlertRate)
	fmt.Fprintln(w, thin)

	fmt.Fprintln(w, "Risk Level Distribution")
	for _, b := range s.Bands {
		fmt.Fprintf(w, "  - %s: %s\n", b.Band, groupThousands(b.Count))
	}
	fmt.Fprintln(w, thin)

	fmt.Fprintf(w, "Top %d High-Risk Transactions:\n", len(s.TopTransactions))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "nameOrig\tamount\tfinal_risk_score\trisk_band\t")
	for _, t := range s.TopTransactions {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\t\n", t.AccountID, t.Amount, t.Score, t.Band)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write console summary: %w", err)
	}
	_, err := fmt.Fprintln(w, thin)
	return err
}
