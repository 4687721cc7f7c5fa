package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/rpgo/dca-calculator/internal/domain"
)

const (
	pdfMarginLeft   = 18.0
	pdfMarginTop    = 18.0
	pdfMarginRight  = 18.0
	pdfMarginBottom = 18.0
	pdfPageWidth    = 210.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
	pdfChartHeight  = 70.0
)

// PDFFormatter renders a printable A4 report: headline figures, projection,
// a growth chart and the monthly table.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Dollar-Cost Averaging Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("%s per month from %s to %s",
		FormatCurrency(result.MonthlyContribution), FormatDate(result.StartDate), FormatDate(result.AsOfDate)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	s := Summarize(result)
	pdfSection(pdf, "Summary")
	pdfRow(pdf, "Months", fmt.Sprintf("%d", s.Months))
	pdfRow(pdf, "Total invested", FormatCurrency(s.TotalInvested))
	pdfRow(pdf, "Current value", FormatCurrency(s.CurrentValue))
	if s.Months > 0 {
		pdfRow(pdf, "Gain", fmt.Sprintf("%s (%s)", FormatCurrency(s.Gain), FormatPercentage(s.GainPercent)))
		pdfRow(pdf, "Total units", FormatUnits(result.TotalUnits))
		pdfRow(pdf, "Last price", FormatPrice(result.LastPrice))
	}

	if proj := result.Projection; proj != nil {
		pdf.Ln(4)
		pdfSection(pdf, fmt.Sprintf("Projection to age %d (%d years %d months)", proj.RetirementAge, proj.YearsToRetirement, proj.MonthsToRetirement))
		for _, sc := range proj.Scenarios {
			pdfRow(pdf, fmt.Sprintf("%s (%s)", sc.Name, FormatRate(sc.AnnualReturn)), FormatCurrency(sc.FutureValue))
		}
	}

	if len(result.Series) > 1 {
		pdf.Ln(4)
		pdfSection(pdf, "Growth")
		pdfChart(pdf, BuildChartSeries(result))
	}

	if len(result.Series) > 0 {
		pdf.AddPage()
		pdfSection(pdf, "Monthly Contributions")
		pdfSeriesTable(pdf, result.Series)
	}

	pdf.Ln(6)
	pdfSection(pdf, "Key Assumptions")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, a := range GenerateAssumptions(result.MonthlyContribution) {
		pdf.MultiCell(pdfContentWidth, 4.5, "- "+a, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func pdfRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(pdfContentWidth*0.6, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pdfContentWidth*0.4, 6, value, "", 1, "R", false, 0, "")
}

func pdfChart(pdf *fpdf.Fpdf, chart ChartSeries) {
	x0, y0 := pdf.GetX(), pdf.GetY()
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(x0, y0, pdfContentWidth, pdfChartHeight, "D")

	var top int64 = 1
	for i := range chart.Value {
		top = max(top, chart.Value[i], chart.Invested[i])
	}
	n := float64(len(chart.Labels) - 1)
	point := func(i int, v int64) (float64, float64) {
		return x0 + float64(i)/n*pdfContentWidth, y0 + pdfChartHeight - float64(v)/float64(top)*pdfChartHeight
	}
	line := func(values []int64, r, g, b int) {
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(0.4)
		for i := 1; i < len(values); i++ {
			x1, y1 := point(i-1, values[i-1])
			x2, y2 := point(i, values[i])
			pdf.Line(x1, y1, x2, y2)
		}
	}
	line(chart.Invested, 170, 170, 170)
	line(chart.Value, 31, 119, 180)
	pdf.SetLineWidth(0.2)

	pdf.SetXY(x0, y0+pdfChartHeight+1)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(pdfContentWidth/2, 4, chart.Labels[0], "", 0, "L", false, 0, "")
	pdf.CellFormat(pdfContentWidth/2, 4, chart.Labels[len(chart.Labels)-1], "", 1, "R", false, 0, "")
	pdf.CellFormat(pdfContentWidth, 4, "Grey: total invested. Blue: portfolio value.", "", 1, "L", false, 0, "")
}

func pdfSeriesTable(pdf *fpdf.Fpdf, series []domain.InvestmentPoint) {
	widths := []float64{22, 32, 28, 34, 29, 29}
	header := []string{"Month", "Price", "Units", "Total units", "Invested", "Value"}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(245, 247, 250)
		pdf.SetTextColor(0, 51, 102)
		for i, h := range header {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(50, 50, 50)
	}

	writeHeader()
	_, pageHeight := pdf.GetPageSize()
	for _, p := range series {
		if pdf.GetY()+5 > pageHeight-pdfMarginBottom {
			pdf.AddPage()
			writeHeader()
		}
		cells := []string{
			p.YearMonth.String(),
			FormatPrice(p.Price),
			FormatUnits(p.MonthlyUnits),
			FormatUnits(p.CumulativeUnits),
			FormatCurrency(p.CumulativeInvested),
			FormatCurrency(p.PortfolioValue),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 5, c, "LR", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.CellFormat(pdfContentWidth, 0, "", "T", 1, "", false, 0, "")
}
