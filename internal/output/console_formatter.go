package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/dca-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "DOLLAR-COST AVERAGING SUMMARY")
	fmt.Fprintln(&buf, "================================")
	writeHeadline(&buf, result)
	if result.Projection != nil {
		fmt.Fprintln(&buf)
		writeProjection(&buf, result.Projection)
	}
	return buf.Bytes(), nil
}

func writeHeadline(buf *bytes.Buffer, result *domain.SimulationResult) {
	s := Summarize(result)
	fmt.Fprintf(buf, "Start date:     %s\n", FormatDate(result.StartDate))
	fmt.Fprintf(buf, "As of:          %s\n", FormatDate(result.AsOfDate))
	fmt.Fprintf(buf, "Months:         %d\n", s.Months)
	fmt.Fprintf(buf, "Total invested: %s\n", FormatCurrency(s.TotalInvested))
	fmt.Fprintf(buf, "Current value:  %s\n", FormatCurrency(s.CurrentValue))
	if s.Months > 0 {
		fmt.Fprintf(buf, "Gain:           %s (%s)\n", FormatCurrency(s.Gain), FormatPercentage(s.GainPercent))
	}
}

func writeProjection(buf *bytes.Buffer, p *domain.Projection) {
	fmt.Fprintf(buf, "Projected at age %d (in %d years %d months):\n", p.RetirementAge, p.YearsToRetirement, p.MonthsToRetirement)
	for _, sc := range p.Scenarios {
		fmt.Fprintf(buf, "  %-13s %7s  %s\n", sc.Name, FormatRate(sc.AnnualReturn), FormatCurrency(sc.FutureValue))
	}
}
