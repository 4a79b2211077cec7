package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// topCustomersInPDF is how many accounts the PDF customer table lists.
const topCustomersInPDF = 10

type rgb struct{ r, g, b int }

var (
	colorHeading = rgb{52, 73, 94}
	colorTitle   = rgb{44, 62, 80}
	colorNormal  = rgb{46, 204, 113}
	colorFlagged = rgb{231, 76, 60}
	colorRow     = rgb{245, 245, 220}
	bandColors   = map[string]rgb{
		valueobject.RiskBandLow.String():      {46, 204, 113},
		valueobject.RiskBandMedium.String():   {243, 156, 18},
		valueobject.RiskBandHigh.String():     {231, 76, 60},
		valueobject.RiskBandCritical.String(): {142, 68, 173},
	}
)

// WritePDFReport renders the report as a Letter-sized PDF with bar charts.
func WritePDFReport(w io.Writer, s Summary, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(13, 13, 13)
	pdf.SetAutoPageBreak(true, 13)
	pdf.SetTitle("Transaction Risk Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	setText(pdf, colorTitle)
	pdf.CellFormat(0, 12, "Transaction Risk Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, rgb{})
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated On: %s | Total Transactions: %s",
		generatedAt.Format(time.DateTime), groupThousands(s.Total)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Executive Summary")
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"%s of %s transactions (%.2f%%) were flagged as suspicious. Risk status: %s. %s\n"+
			"Average Risk Score: %.2f\nHighest Risk Score: %.2f",
		groupThousands(s.Flagged), groupThousands(s.Total), s.AlertRate, s.Status, s.Status.Message(),
		s.AverageScore, s.HighestScore),
		"", "L", false)
	pdf.Ln(2)

	heading(pdf, "Key Metrics Overview")
	table(pdf, []float64{90, 60}, []string{"Metric", "Value"}, [][]string{
		{"Total Transactions", groupThousands(s.Total)},
		{"Flagged Transactions", groupThousands(s.Flagged)},
		{"Normal Transactions", groupThousands(s.Normal())},
		{"Alert Rate", fmt.Sprintf("%.2f%%", s.AlertRate)},
		{"Accounts Analyzed", groupThousands(len(s.Accounts))},
		{"Average Risk Score", fmt.Sprintf("%.2f", s.AverageScore)},
		{"Highest Risk Score", fmt.Sprintf("%.2f", s.HighestScore)},
	})

	heading(pdf, "Risk Band Distribution")
	bars := make([]bar, len(s.Bands))
	for i, b := range s.Bands {
		bars[i] = bar{label: b.Band.String(), value: float64(b.Count), color: bandColors[b.Band.String()]}
	}
	barChart(pdf, bars)

	heading(pdf, "Transaction Classification")
	barChart(pdf, []bar{
		{label: "Normal", value: float64(s.Normal()), color: colorNormal},
		{label: "Flagged", value: float64(s.Flagged), color: colorFlagged},
	})

	heading(pdf, "Transaction Amount Distribution")
	groups := make([]barGroup, len(s.AmountBuckets))
	for i, b := range s.AmountBuckets {
		groups[i] = barGroup{
			label: fmt.Sprintf("%.0f-%.0f", b.Low, b.High),
			bars: []bar{
				{label: "Normal", value: float64(b.Normal), color: colorNormal},
				{label: "Flagged", value: float64(b.Flagged), color: colorFlagged},
			},
		}
	}
	groupedBarChart(pdf, groups)

	heading(pdf, "High-Risk Customers")
	customers := topCustomers(s.Accounts, topCustomersInPDF)
	rows := make([][]string, len(customers))
	for i, a := range customers {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1), a.AccountID,
			fmt.Sprintf("%.2f", a.MaxRiskScore), a.LastBand.String(),
			fmt.Sprintf("%d", a.FlaggedTransactions),
		}
	}
	table(pdf, []float64{15, 55, 35, 40, 35}, []string{"Rank", "Customer ID", "Max Score", "Last Band", "Flagged"}, rows)

	heading(pdf, "Risk Band Summary")
	rows = make([][]string, len(s.Bands))
	for i, b := range s.Bands {
		rows[i] = []string{b.Band.String(), groupThousands(b.Count), fmt.Sprintf("%.2f%%", b.Percent)}
	}
	table(pdf, []float64{60, 45, 45}, []string{"Risk Band", "Count", "Percentage"}, rows)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf report: %w", err)
	}
	return nil
}

// topCustomers orders accounts by max score, highest first.
func topCustomers(accounts []model.AccountRiskSummary, n int) []model.AccountRiskSummary {
	out := append([]model.AccountRiskSummary(nil), accounts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MaxRiskScore > out[j].MaxRiskScore })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, colorHeading)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, rgb{})
}

func table(pdf *fpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 11)
	setFill(pdf, colorHeading)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, rgb{})
	setFill(pdf, colorRow)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

type bar struct {
	label string
	value float64
	color rgb
}

// barChart draws horizontal bars scaled to the largest value.
func barChart(pdf *fpdf.Fpdf, bars []bar) {
	const labelWidth, maxWidth, height = 35.0, 120.0, 7.0

	largest := 0.0
	for _, b := range bars {
		largest = max(largest, b.value)
	}

	for _, b := range bars {
		x, y := pdf.GetXY()
		pdf.CellFormat(labelWidth, height, b.label, "", 0, "L", false, 0, "")
		width := 0.0
		if largest > 0 {
			width = b.value / largest * maxWidth
		}
		setFill(pdf, b.color)
		pdf.Rect(x+labelWidth, y+1, width, height-2, "F")
		pdf.SetXY(x+labelWidth+width+2, y)
		pdf.CellFormat(30, height, fmt.Sprintf("%.0f", b.value), "", 1, "L", false, 0, "")
	}
}

type barGroup struct {
	label string
	bars  []bar
}

// groupedBarChart draws one thin bar per series inside each group, all scaled
// to the largest value, followed by a legend of the first group's series.
func groupedBarChart(pdf *fpdf.Fpdf, groups []barGroup) {
	const labelWidth, maxWidth, height, gap = 35.0, 120.0, 4.0, 2.0

	largest := 0.0
	for _, g := range groups {
		for _, b := range g.bars {
			largest = max(largest, b.value)
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	for _, g := range groups {
		x, y := pdf.GetXY()
		pdf.CellFormat(labelWidth, height*float64(len(g.bars)), g.label, "", 0, "L", false, 0, "")
		for i, b := range g.bars {
			by := y + float64(i)*height
			width := 0.0
			if largest > 0 {
				width = b.value / largest * maxWidth
			}
			setFill(pdf, b.color)
			pdf.Rect(x+labelWidth, by+0.5, width, height-1, "F")
			pdf.SetXY(x+labelWidth+width+2, by)
			pdf.CellFormat(30, height, fmt.Sprintf("%.0f", b.value), "", 0, "L", false, 0, "")
		}
		pdf.SetXY(x, y+height*float64(len(g.bars))+gap)
	}

	if len(groups) > 0 {
		x, y := pdf.GetXY()
		for _, b := range groups[0].bars {
			setFill(pdf, b.color)
			pdf.Rect(x, y+1, 4, 3, "F")
			pdf.SetXY(x+5, y)
			pdf.CellFormat(25, 5, b.label, "", 0, "L", false, 0, "")
			x += 30
		}
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "", 10)
}
