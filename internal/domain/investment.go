package domain

import (
	"time"

	"github.com/rpgo/dca-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PriceObservation is one monthly closing price of the tracked index
type PriceObservation struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// YearMonth returns the calendar month the observation belongs to
func (p PriceObservation) YearMonth() dateutil.YearMonth {
	return dateutil.YearMonthOf(p.Date)
}

// SimulationParameters holds the caller-supplied inputs of a single run
type SimulationParameters struct {
	StartDate           time.Time       `yaml:"start_date" json:"start_date"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	// RetirementAge is optional; nil means no projection is requested.
	RetirementAge *int `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
}

// InvestmentPoint is the portfolio state after one monthly contribution
type InvestmentPoint struct {
	YearMonth       dateutil.YearMonth `json:"year_month"`
	Price           decimal.Decimal    `json:"price"`
	MonthlyUnits    decimal.Decimal    `json:"monthly_units"`
	CumulativeUnits decimal.Decimal    `json:"cumulative_units"`
	// PortfolioValue and CumulativeInvested are rounded to whole currency units.
	PortfolioValue     decimal.Decimal `json:"portfolio_value"`
	CumulativeInvested decimal.Decimal `json:"cumulative_invested"`
}

// ProjectionScenario is one fixed-rate growth projection of the current value
type ProjectionScenario struct {
	Name         string          `json:"name"`
	AnnualReturn decimal.Decimal `json:"annual_return"`
	FutureValue  decimal.Decimal `json:"future_value"`
}

// Projection describes growth of the current value up to a retirement age
type Projection struct {
	RetirementAge      int                  `json:"retirement_age"`
	CurrentAgeYears    float64              `json:"current_age_years"`
	YearsToRetirement  int                  `json:"years_to_retirement"`
	MonthsToRetirement int                  `json:"months_to_retirement"`
	Scenarios          []ProjectionScenario `json:"scenarios"`
}

// SimulationResult is the outcome of a dollar-cost-averaging run
type SimulationResult struct {
	StartDate           time.Time         `json:"start_date"`
	AsOfDate            time.Time         `json:"as_of_date"`
	MonthlyContribution decimal.Decimal   `json:"monthly_contribution"`
	TotalInvested       decimal.Decimal   `json:"total_invested"`
	CurrentValue        decimal.Decimal   `json:"current_value"`
	TotalUnits          decimal.Decimal   `json:"total_units"`
	LastPrice           decimal.Decimal   `json:"last_price"`
	Series              []InvestmentPoint `json:"series"`
	Projection          *Projection       `json:"projection,omitempty"`
}

// Months returns the number of monthly contributions in the result
func (r *SimulationResult) Months() int { return len(r.Series) }

// Gain returns current value minus total invested
func (r *SimulationResult) Gain() decimal.Decimal {
	return r.CurrentValue.Sub(r.TotalInvested)
}

// GainPercent returns the gain relative to total invested, in percent.
// Zero when nothing was invested.
func (r *SimulationResult) GainPercent() decimal.Decimal {
	if r.TotalInvested.IsZero() {
		return decimal.Zero
	}
	return r.Gain().Div(r.TotalInvested).Mul(decimal.NewFromInt(100))
}
