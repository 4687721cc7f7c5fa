package prices

import (
	"fmt"
	"math"
	"time"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes a loaded price series. It is informational only and
// never feeds the projection rates.
type Statistics struct {
	Count               int                  `json:"count"`
	First               time.Time            `json:"first"`
	Last                time.Time            `json:"last"`
	Min                 decimal.Decimal      `json:"min"`
	Max                 decimal.Decimal      `json:"max"`
	MeanMonthlyReturn   float64              `json:"mean_monthly_return"`
	StdDevMonthlyReturn float64              `json:"std_dev_monthly_return"`
	MissingMonths       []dateutil.YearMonth `json:"missing_months"`
	DuplicateMonths     []dateutil.YearMonth `json:"duplicate_months"`
}

// Dataset is a loaded price series with metadata
type Dataset struct {
	Name         string                    `json:"name"`
	Source       string                    `json:"source"`
	Observations []domain.PriceObservation `json:"observations"`
	Statistics   Statistics                `json:"statistics"`
}

// SeriesManager loads the price file once and serves it read-only afterwards
type SeriesManager struct {
	DataPath string   `json:"data_path"`
	Series   *Dataset `json:"series"`
	IsLoaded bool     `json:"is_loaded"`
}

// NewSeriesManager creates a manager for the CSV file at dataPath
func NewSeriesManager(dataPath string) *SeriesManager {
	return &SeriesManager{
		DataPath: dataPath,
		IsLoaded: false,
	}
}

// Load parses the price file. Subsequent calls are no-ops.
func (sm *SeriesManager) Load() error {
	if sm.IsLoaded {
		return nil
	}

	observations, err := LoadFile(sm.DataPath)
	if err != nil {
		return fmt.Errorf("failed to load price data: %w", err)
	}

	sm.Series = &Dataset{
		Name:         "index",
		Source:       sm.DataPath,
		Observations: observations,
		Statistics:   CalculateStatistics(observations),
	}
	sm.IsLoaded = true
	return nil
}

// Observations returns the loaded series
func (sm *SeriesManager) Observations() ([]domain.PriceObservation, error) {
	if !sm.IsLoaded || sm.Series == nil {
		return nil, ErrNotLoaded
	}
	return sm.Series.Observations, nil
}

// Latest returns the final observation of the loaded series
func (sm *SeriesManager) Latest() (domain.PriceObservation, error) {
	observations, err := sm.Observations()
	if err != nil {
		return domain.PriceObservation{}, err
	}
	return observations[len(observations)-1], nil
}

// CalculateStatistics computes summary measures for observations
func CalculateStatistics(observations []domain.PriceObservation) Statistics {
	if len(observations) == 0 {
		return Statistics{}
	}

	stats := Statistics{
		Count: len(observations),
		First: observations[0].Date,
		Last:  observations[len(observations)-1].Date,
		Min:   observations[0].Close,
		Max:   observations[0].Close,
	}

	returns := make([]float64, 0, len(observations))
	for i, o := range observations {
		if o.Close.LessThan(stats.Min) {
			stats.Min = o.Close
		}
		if o.Close.GreaterThan(stats.Max) {
			stats.Max = o.Close
		}
		if i == 0 {
			continue
		}

		prev, cur := observations[i-1].YearMonth(), o.YearMonth()
		switch gap := dateutil.MonthsBetween(prev, cur); {
		case gap == 0:
			stats.DuplicateMonths = append(stats.DuplicateMonths, cur)
			continue
		case gap > 1:
			for m := prev.Next(); m != cur; m = m.Next() {
				stats.MissingMonths = append(stats.MissingMonths, m)
			}
		}

		if prevClose := observations[i-1].Close; prevClose.IsPositive() {
			r, _ := o.Close.Div(prevClose).Sub(decimal.NewFromInt(1)).Float64()
			returns = append(returns, r)
		}
	}

	if len(returns) > 0 {
		stats.MeanMonthlyReturn = stat.Mean(returns, nil)
	}
	if len(returns) > 1 {
		stats.StdDevMonthlyReturn = stat.StdDev(returns, nil)
	}
	return stats
}

// AnnualizedReturn converts the mean monthly return to a compound annual rate
func (s Statistics) AnnualizedReturn() float64 {
	return math.Pow(1+s.MeanMonthlyReturn, 12) - 1
}

// ValidateDataQuality reports gaps and suspicious moves in the loaded series
func (sm *SeriesManager) ValidateDataQuality() ([]string, error) {
	if !sm.IsLoaded || sm.Series == nil {
		return nil, ErrNotLoaded
	}

	var issues []string
	stats := sm.Series.Statistics

	if len(stats.MissingMonths) > 0 {
		issues = append(issues, fmt.Sprintf("Missing months: %v", stats.MissingMonths))
	}
	if len(stats.DuplicateMonths) > 0 {
		issues = append(issues, fmt.Sprintf("Months with more than one observation (only the first is used): %v", stats.DuplicateMonths))
	}

	// Month-over-month moves beyond +50% or -40% usually indicate a typo
	obs := sm.Series.Observations
	upper := decimal.RequireFromString("1.5")
	lower := decimal.RequireFromString("0.6")
	for i := 1; i < len(obs); i++ {
		ratio := obs[i].Close.Div(obs[i-1].Close)
		if ratio.GreaterThan(upper) || ratio.LessThan(lower) {
			issues = append(issues, fmt.Sprintf("Extreme move at %s: %s -> %s",
				dateutil.FormatDayMonthYear(obs[i].Date), obs[i-1].Close.String(), obs[i].Close.String()))
		}
	}

	return issues, nil
}
