package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
	money "github.com/rpgo/dca-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ValidateStartDate reports whether day/month/year form a real calendar date.
// Missing (zero) fields and overflowed dates such as 30 February are rejected.
func ValidateStartDate(day, month, year int) bool {
	return dateutil.IsValidDate(day, month, year)
}

// StartDateFromFields builds a start date, returning ErrInvalidDate when the fields are not a real date
func StartDateFromFields(day, month, year int) (time.Time, error) {
	if !ValidateStartDate(day, month, year) {
		return time.Time{}, fmt.Errorf("%w: %02d/%02d/%04d", ErrInvalidDate, day, month, year)
	}
	return dateutil.Date(year, month, day), nil
}

// ParseStartDate reads a dd/mm/yyyy start date under the same rule as StartDateFromFields
func ParseStartDate(s string) (time.Time, error) {
	t, err := dateutil.ParseDayMonthYear(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return StartDateFromFields(t.Day(), int(t.Month()), t.Year())
}

// Simulate invests monthlyContribution once per calendar month from startDate
// through the last observation and reports the accumulated position.
//
// The end boundary is the date of the final observation. A start date after
// it yields a zero result with an empty series. Only the first observation of
// each calendar month is used and months without observations are skipped.
// Series values are rounded to whole currency units; totals keep full precision.
func Simulate(observations []domain.PriceObservation, startDate time.Time, monthlyContribution decimal.Decimal) (*domain.SimulationResult, error) {
	if len(observations) == 0 {
		return nil, ErrEmptySeries
	}
	if !monthlyContribution.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrNonPositiveContribution, monthlyContribution.String())
	}

	last := observations[len(observations)-1]
	result := &domain.SimulationResult{
		StartDate:           startDate,
		AsOfDate:            last.Date,
		MonthlyContribution: monthlyContribution,
		TotalInvested:       decimal.Zero,
		CurrentValue:        decimal.Zero,
		TotalUnits:          decimal.Zero,
		LastPrice:           last.Close,
		Series:              []domain.InvestmentPoint{},
	}
	if startDate.After(last.Date) {
		return result, nil
	}

	units := decimal.Zero
	var prevMonth dateutil.YearMonth
	for _, obs := range observations {
		if obs.Date.Before(startDate) || obs.Date.After(last.Date) {
			continue
		}
		month := obs.YearMonth()
		if month == prevMonth {
			continue
		}
		if !obs.Close.IsPositive() {
			return nil, fmt.Errorf("%w: %s closed at %s", ErrNonPositivePrice, month, obs.Close.String())
		}

		bought := monthlyContribution.Div(obs.Close)
		units = units.Add(bought)
		invested := monthlyContribution.Mul(decimal.NewFromInt(int64(len(result.Series) + 1)))

		result.Series = append(result.Series, domain.InvestmentPoint{
			YearMonth:          month,
			Price:              obs.Close,
			MonthlyUnits:       bought,
			CumulativeUnits:    units,
			PortfolioValue:     money.NewMoneyFromDecimal(units.Mul(obs.Close)).RoundWhole().Decimal,
			CumulativeInvested: money.NewMoneyFromDecimal(invested).RoundWhole().Decimal,
		})
		prevMonth = month
	}

	result.TotalUnits = units
	result.TotalInvested = monthlyContribution.Mul(decimal.NewFromInt(int64(len(result.Series))))
	result.CurrentValue = units.Mul(last.Close)
	return result, nil
}

// AgeInYears returns elapsed days between the dates divided by 365.25.
// This approximates age; it is not calendar-exact and is only used to
// split the time left until retirement into whole years and months.
func AgeInYears(startDate, asOfDate time.Time) float64 {
	return dateutil.YearsUntilDate(startDate, asOfDate)
}
