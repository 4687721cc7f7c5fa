package output

import (
	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary collects the headline figures every formatter shows.
type Summary struct {
	Months        int
	TotalInvested decimal.Decimal
	CurrentValue  decimal.Decimal
	Gain          decimal.Decimal
	GainPercent   decimal.Decimal
	// Multiple is CurrentValue / TotalInvested, zero when nothing was invested.
	Multiple decimal.Decimal
	// Best is the highest projected future value, nil without a projection.
	Best *domain.ProjectionScenario
}

// Summarize derives the headline figures from a result.
// Extracted from the formatters for testability.
func Summarize(result *domain.SimulationResult) Summary {
	s := Summary{
		Months:        result.Months(),
		TotalInvested: result.TotalInvested,
		CurrentValue:  result.CurrentValue,
		Gain:          result.Gain(),
		GainPercent:   result.GainPercent(),
	}
	if !result.TotalInvested.IsZero() {
		s.Multiple = result.CurrentValue.Div(result.TotalInvested)
	}
	if result.Projection != nil {
		for i := range result.Projection.Scenarios {
			sc := &result.Projection.Scenarios[i]
			if s.Best == nil || sc.FutureValue.GreaterThan(s.Best.FutureValue) {
				s.Best = sc
			}
		}
	}
	return s
}
