package calculation

import (
	"math"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioRate is a fixed historical-average annual index return
type ScenarioRate struct {
	Name         string
	AnnualReturn decimal.Decimal
}

// Historical S&P 500 averages. These are constants and are never fitted to the loaded series.
var scenarioRates = []ScenarioRate{
	{Name: "conservative", AnnualReturn: decimal.RequireFromString("0.0927")},
	{Name: "balanced", AnnualReturn: decimal.RequireFromString("0.1243")},
	{Name: "optimistic", AnnualReturn: decimal.RequireFromString("0.149")},
}

// ScenarioRates returns the three projection rates, lowest first.
func ScenarioRates() []ScenarioRate {
	return append([]ScenarioRate(nil), scenarioRates...)
}

// ProjectRetirement compounds currentValue annually until retirementAge.
// It returns nil when retirementAge is not beyond currentAgeYears, which
// callers must treat as "no projection" rather than zero growth.
func ProjectRetirement(currentValue decimal.Decimal, currentAgeYears float64, retirementAge int) *domain.Projection {
	remaining := float64(retirementAge) - currentAgeYears
	if remaining <= 0 {
		return nil
	}

	years := int(math.Floor(remaining))
	months := int(math.Round((remaining - float64(years)) * 12))
	if months == 12 {
		years++
		months = 0
	}
	horizon := float64(years) + float64(months)/12

	projection := &domain.Projection{
		RetirementAge:      retirementAge,
		CurrentAgeYears:    currentAgeYears,
		YearsToRetirement:  years,
		MonthsToRetirement: months,
		Scenarios:          make([]domain.ProjectionScenario, 0, len(scenarioRates)),
	}
	for _, rate := range scenarioRates {
		growth := math.Pow(1+rate.AnnualReturn.InexactFloat64(), horizon)
		projection.Scenarios = append(projection.Scenarios, domain.ProjectionScenario{
			Name:         rate.Name,
			AnnualReturn: rate.AnnualReturn,
			FutureValue:  currentValue.Mul(decimal.NewFromFloat(growth)),
		})
	}
	return projection
}
