package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/dca-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the summary followed by the month-by-month table.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED DOLLAR-COST AVERAGING ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(result.MonthlyContribution) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 45))
	writeHeadline(&buf, result)
	fmt.Fprintf(&buf, "Total units:    %s\n", FormatUnits(result.TotalUnits))
	fmt.Fprintf(&buf, "Last price:     %s\n", FormatPrice(result.LastPrice))
	if s := Summarize(result); !s.Multiple.IsZero() {
		fmt.Fprintf(&buf, "Multiple:       %sx\n", s.Multiple.StringFixed(2))
	}
	fmt.Fprintln(&buf)

	if result.Projection != nil {
		fmt.Fprintln(&buf, "RETIREMENT PROJECTION")
		fmt.Fprintln(&buf, strings.Repeat("=", 45))
		fmt.Fprintf(&buf, "Current age:    %.2f\n", result.Projection.CurrentAgeYears)
		writeProjection(&buf, result.Projection)
		fmt.Fprintln(&buf)
	}

	if len(result.Series) == 0 {
		fmt.Fprintln(&buf, "No contributions: the start date is after the latest closing price.")
		return buf.Bytes(), nil
	}

	fmt.Fprintln(&buf, "MONTHLY CONTRIBUTIONS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "%-8s %14s %12s %14s %14s %14s\n", "Month", "Price", "Units", "Total units", "Invested", "Value")
	fmt.Fprintln(&buf, strings.Repeat("-", 81))
	for _, p := range result.Series {
		fmt.Fprintf(&buf, "%-8s %14s %12s %14s %14s %14s\n",
			p.YearMonth.String(),
			FormatPrice(p.Price),
			FormatUnits(p.MonthlyUnits),
			FormatUnits(p.CumulativeUnits),
			FormatCurrency(p.CumulativeInvested),
			FormatCurrency(p.PortfolioValue),
		)
	}
	return buf.Bytes(), nil
}
