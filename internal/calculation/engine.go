package calculation

import (
	"fmt"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
)

// CalculationEngine orchestrates a dollar-cost-averaging run and its retirement projection.
// It holds no per-run state, so one engine may serve concurrent callers.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate validates params, simulates contributions over observations and,
// when a retirement age is set, projects the current value to that age.
// A start date after the last observation yields an empty result whose
// projection, if requested, compounds zero from a negative age.
func (ce *CalculationEngine) Calculate(params domain.SimulationParameters, observations []domain.PriceObservation) (*domain.SimulationResult, error) {
	if params.StartDate.IsZero() {
		return nil, ErrInvalidDate
	}
	if params.RetirementAge != nil && *params.RetirementAge < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeRetirementAge, *params.RetirementAge)
	}

	result, err := Simulate(observations, params.StartDate, params.MonthlyContribution)
	if err != nil {
		return nil, err
	}

	ce.Logger.Debugf("start date: %s", dateutil.FormatDayMonthYear(params.StartDate))
	ce.Logger.Debugf("end date: %s", dateutil.FormatDayMonthYear(result.AsOfDate))
	ce.Logger.Debugf("total months: %d", result.Months())
	ce.Logger.Debugf("total invested: %s, total units: %s", result.TotalInvested.StringFixed(2), result.TotalUnits.StringFixed(6))

	if params.RetirementAge == nil {
		return result, nil
	}

	age := AgeInYears(params.StartDate, result.AsOfDate)
	result.Projection = ProjectRetirement(result.CurrentValue, age, *params.RetirementAge)
	if result.Projection == nil {
		ce.Logger.Infof("retirement age %d not beyond current age %.2f, no projection", *params.RetirementAge, age)
	}
	return result, nil
}
