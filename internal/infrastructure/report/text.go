package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

const reportWidth = 80

var recommendations = []string{
	"Review high-risk customers immediately.",
	"Apply enhanced monitoring on flagged accounts.",
	"Re-evaluate transaction limits for repeated offenders.",
	"Schedule periodic audits for model performance.",
}

// WriteTextReport renders the plain-text analyst report.
func WriteTextReport(w io.Writer, s Summary, generatedAt time.Time) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)

	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, center("TRANSACTION FRAUD & RISK ANALYSIS REPORT", reportWidth))
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "Generated On : %s\n", generatedAt.Format(time.DateTime))
	fmt.Fprintln(bw, "Prepared By  : Fraud Detection System")
	fmt.Fprintf(bw, "%s\n\n", rule)

	fmt.Fprintln(bw, "1. EXECUTIVE SUMMARY")
	fmt.Fprintln(bw, thin)
	fmt.Fprintf(bw, "This report analyzes %s transactions to detect\n", groupThousands(s.Total))
	fmt.Fprintln(bw, "potential fraudulent behavior using risk scoring and classification.")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "A total of %s transactions were flagged as suspicious,\n", groupThousands(s.Flagged))
	fmt.Fprintf(bw, "representing %.2f%% of all processed transactions.\n\n", s.AlertRate)
	fmt.Fprintf(bw, "RISK STATUS: %s - %s\n\n", s.Status, s.Status.Message())

	fmt.Fprintln(bw, "2. KEY METRICS OVERVIEW")
	fmt.Fprintln(bw, thin)
	fmt.Fprintf(bw, "%-30s: %12s\n", "Total Transactions", groupThousands(s.Total))
	fmt.Fprintf(bw, "%-30s: %12s\n", "Flagged Transactions", groupThousands(s.Flagged))
	fmt.Fprintf(bw, "%-30s: %11.2f%%\n\n", "Flagged Percentage", s.AlertRate)

	fmt.Fprintln(bw, "3. RISK BAND DISTRIBUTION")
	fmt.Fprintln(bw, thin)
	for _, b := range s.Bands {
		bar := strings.Repeat("#", int(b.Percent/2))
		fmt.Fprintf(bw, "%-13s | %-30s %8s (%5.2f%%)\n", b.Band, bar, groupThousands(b.Count), b.Percent)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "4. TOP CUSTOMERS WITH REPEATED SUSPICIOUS ACTIVITY")
	fmt.Fprintln(bw, thin)
	fmt.Fprintf(bw, "%-6s%-25s%20s\n", "Rank", "Customer ID", "Flagged Transactions")
	fmt.Fprintln(bw, thin)
	for i, a := range s.TopAccounts {
		fmt.Fprintf(bw, "%-6d%-25s%20d\n", i+1, a.AccountID, a.Flagged)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "5. HIGHEST RISK TRANSACTIONS")
	fmt.Fprintln(bw, thin)
	fmt.Fprintf(bw, "%-6s%-25s%15s%15s\n", "Rank", "Customer ID", "Risk Score", "Risk Band")
	fmt.Fprintln(bw, thin)
	for i, t := range s.TopTransactions {
		fmt.Fprintf(bw, "%-6d%-25s%15.2f%15s\n", i+1, t.AccountID, t.Score, t.Band)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "6. RECOMMENDATIONS")
	fmt.Fprintln(bw, thin)
	for _, r := range recommendations {
		fmt.Fprintf(bw, "- %s\n", r)
	}

	fmt.Fprintf(bw, "\n%s\n", rule)
	fmt.Fprintln(bw, center("END OF REPORT", reportWidth))
	fmt.Fprintln(bw, rule)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// groupThousands formats n with comma separators, e.g. 1234567 -> "1,234,567".
func groupThousands(n int) string {
	return printer.Sprintf("%d", n)
}
