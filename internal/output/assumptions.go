package output

import (
	"fmt"

	"github.com/rpgo/dca-calculator/internal/calculation"
	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultMonthlyContribution)

// GenerateAssumptions creates the assumptions list for a given monthly contribution.
func GenerateAssumptions(contribution decimal.Decimal) []string {
	out := []string{
		fmt.Sprintf("%s invested at the first available closing price of each month", FormatCurrency(contribution)),
		"Months without a closing price are skipped, not filled",
		"Value measured at the latest available closing price",
		"Age measured in 365.25-day years",
	}
	for _, r := range calculation.ScenarioRates() {
		out = append(out, fmt.Sprintf("Projection (%s): %s annual return, compounded annually", r.Name, FormatRate(r.AnnualReturn)))
	}
	return out
}
