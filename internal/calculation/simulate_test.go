package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hundred = decimal.NewFromInt(100)

func obs(day, month, year int, close string) domain.PriceObservation {
	return domain.PriceObservation{
		Date:  dateutil.Date(year, month, day),
		Close: decimal.RequireFromString(close),
	}
}

func threeMonthSeries() []domain.PriceObservation {
	return []domain.PriceObservation{
		obs(1, 1, 2000, "100"),
		obs(1, 2, 2000, "110"),
		obs(1, 3, 2000, "121"),
	}
}

func TestSimulate_ThreeMonthScenario(t *testing.T) {
	result, err := Simulate(threeMonthSeries(), dateutil.Date(2000, 1, 1), hundred)
	require.NoError(t, err)
	require.Len(t, result.Series, 3)

	expected := []struct {
		month    string
		units    float64
		value    string
		invested string
	}{
		{"2000-01", 1.0, "100", "100"},
		{"2000-02", 1.909090, "210", "200"},
		{"2000-03", 2.735537, "331", "300"},
	}
	for i, want := range expected {
		point := result.Series[i]
		assert.Equal(t, want.month, point.YearMonth.String())
		assert.InDelta(t, want.units, point.CumulativeUnits.InexactFloat64(), 1e-6)
		assert.Equal(t, want.value, point.PortfolioValue.String(), "value at %s", want.month)
		assert.Equal(t, want.invested, point.CumulativeInvested.String(), "invested at %s", want.month)
	}

	assert.True(t, result.TotalInvested.Equal(decimal.NewFromInt(300)), "total invested %s", result.TotalInvested)
	assert.Equal(t, "331.00", result.CurrentValue.StringFixed(2))
	assert.Equal(t, dateutil.Date(2000, 3, 1), result.AsOfDate)
	assert.True(t, result.LastPrice.Equal(decimal.NewFromInt(121)))
	assert.True(t, result.TotalUnits.Equal(result.Series[2].CumulativeUnits))
}

func TestSimulate_Preconditions(t *testing.T) {
	_, err := Simulate(nil, dateutil.Date(2000, 1, 1), hundred)
	assert.True(t, errors.Is(err, ErrEmptySeries))

	_, err = Simulate([]domain.PriceObservation{}, dateutil.Date(2000, 1, 1), hundred)
	assert.True(t, errors.Is(err, ErrEmptySeries))

	for _, c := range []string{"0", "-100"} {
		_, err = Simulate(threeMonthSeries(), dateutil.Date(2000, 1, 1), decimal.RequireFromString(c))
		assert.True(t, errors.Is(err, ErrNonPositiveContribution), "contribution %s", c)
	}

	bad := threeMonthSeries()
	bad[1].Close = decimal.Zero
	_, err = Simulate(bad, dateutil.Date(2000, 1, 1), hundred)
	assert.True(t, errors.Is(err, ErrNonPositivePrice))

	// A bad price before the start date is never read.
	result, err := Simulate(bad, dateutil.Date(2000, 3, 1), hundred)
	require.NoError(t, err)
	assert.Len(t, result.Series, 1)
}

func TestSimulate_Boundaries(t *testing.T) {
	t.Run("start equals last observation", func(t *testing.T) {
		result, err := Simulate(threeMonthSeries(), dateutil.Date(2000, 3, 1), hundred)
		require.NoError(t, err)
		require.Len(t, result.Series, 1)
		assert.True(t, result.TotalInvested.Equal(hundred))
		assert.Equal(t, "100.00", result.CurrentValue.StringFixed(2))
	})

	t.Run("start after last observation", func(t *testing.T) {
		result, err := Simulate(threeMonthSeries(), dateutil.Date(2000, 3, 2), hundred)
		require.NoError(t, err)
		assert.Empty(t, result.Series)
		assert.NotNil(t, result.Series)
		assert.True(t, result.TotalInvested.IsZero())
		assert.True(t, result.CurrentValue.IsZero())
		assert.True(t, result.TotalUnits.IsZero())
		assert.Equal(t, dateutil.Date(2000, 3, 1), result.AsOfDate)
	})

	t.Run("start mid-month skips that month", func(t *testing.T) {
		result, err := Simulate(threeMonthSeries(), dateutil.Date(2000, 1, 15), hundred)
		require.NoError(t, err)
		require.Len(t, result.Series, 2)
		assert.Equal(t, "2000-02", result.Series[0].YearMonth.String())
	})

	t.Run("start long before first observation", func(t *testing.T) {
		result, err := Simulate(threeMonthSeries(), dateutil.Date(1950, 6, 30), hundred)
		require.NoError(t, err)
		assert.Len(t, result.Series, 3)
	})
}

func TestSimulate_OneContributionPerMonth(t *testing.T) {
	series := []domain.PriceObservation{
		obs(1, 1, 2000, "100"),
		obs(31, 1, 2000, "50"),
		obs(1, 2, 2000, "100"),
	}
	result, err := Simulate(series, dateutil.Date(2000, 1, 1), hundred)
	require.NoError(t, err)
	require.Len(t, result.Series, 2)
	assert.True(t, result.Series[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.TotalInvested.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "2.000000", result.TotalUnits.StringFixed(6))
}

func TestSimulate_MissingMonthsAreSkipped(t *testing.T) {
	series := []domain.PriceObservation{
		obs(1, 1, 2000, "100"),
		obs(1, 4, 2000, "200"),
	}
	result, err := Simulate(series, dateutil.Date(2000, 1, 1), hundred)
	require.NoError(t, err)
	require.Len(t, result.Series, 2)
	assert.Equal(t, "2000-04", result.Series[1].YearMonth.String())
	assert.True(t, result.TotalInvested.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "300.00", result.CurrentValue.StringFixed(2))
}

func longSeries() []domain.PriceObservation {
	var series []domain.PriceObservation
	price := decimal.NewFromInt(80)
	step := []string{"1.031", "0.962", "1.017", "1.004", "0.988", "1.046", "0.991"}
	for i := 0; i < 300; i++ {
		ym := dateutil.YearMonth{Year: 1980, Month: time.January}
		for j := 0; j < i; j++ {
			ym = ym.Next()
		}
		series = append(series, domain.PriceObservation{
			Date:  dateutil.Date(ym.Year, int(ym.Month), 28),
			Close: price.Round(2),
		})
		price = price.Mul(decimal.RequireFromString(step[i%len(step)]))
	}
	return series
}

func TestSimulate_Invariants(t *testing.T) {
	series := longSeries()
	starts := []time.Time{
		dateutil.Date(1970, 1, 1),
		dateutil.Date(1980, 1, 28),
		dateutil.Date(1985, 7, 4),
		dateutil.Date(1999, 2, 28),
		dateutil.Date(2004, 12, 28),
	}
	contribution := decimal.RequireFromString("137.50")

	for _, start := range starts {
		t.Run(dateutil.FormatDayMonthYear(start), func(t *testing.T) {
			result, err := Simulate(series, start, contribution)
			require.NoError(t, err)
			require.NotEmpty(t, result.Series)

			n := decimal.NewFromInt(int64(len(result.Series)))
			assert.True(t, result.TotalInvested.Equal(contribution.Mul(n)))

			last := series[len(series)-1]
			assert.True(t, result.CurrentValue.Equal(result.TotalUnits.Mul(last.Close)))

			for i := 1; i < len(result.Series); i++ {
				prev, cur := result.Series[i-1], result.Series[i]
				assert.True(t, cur.CumulativeUnits.GreaterThan(prev.CumulativeUnits), "units must grow at %s", cur.YearMonth)
				assert.True(t, cur.CumulativeInvested.GreaterThanOrEqual(prev.CumulativeInvested), "invested must not shrink at %s", cur.YearMonth)
				assert.Greater(t, cur.YearMonth.Index(), prev.YearMonth.Index())
			}
			assert.False(t, result.Series[0].YearMonth.Index() < dateutil.YearMonthOf(start).Index())
		})
	}
}

func TestSimulate_Idempotent(t *testing.T) {
	series := longSeries()
	start := dateutil.Date(1983, 3, 3)
	first, err := Simulate(series, start, hundred)
	require.NoError(t, err)
	second, err := Simulate(series, start, hundred)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStartDateFromFields(t *testing.T) {
	got, err := StartDateFromFields(29, 2, 2020)
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2020, 2, 29), got)

	_, err = StartDateFromFields(30, 2, 2020)
	assert.True(t, errors.Is(err, ErrInvalidDate))

	assert.False(t, ValidateStartDate(30, 2, 2020))
	assert.True(t, ValidateStartDate(29, 2, 2020))
	assert.False(t, ValidateStartDate(0, 0, 0))
}

func TestParseStartDate(t *testing.T) {
	got, err := ParseStartDate("29/02/2020")
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2020, 2, 29), got)

	for _, raw := range []string{"30/02/2020", "01/01/0000", "2020-01-01", ""} {
		_, err := ParseStartDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}

func TestAgeInYears(t *testing.T) {
	age := AgeInYears(dateutil.Date(1964, 12, 26), dateutil.Date(2025, 1, 31))
	assert.InDelta(t, 60.0986, age, 0.0001)

	// Approximation: an exact calendar year is slightly less than one.
	assert.Less(t, AgeInYears(dateutil.Date(2001, 1, 1), dateutil.Date(2002, 1, 1)), 1.0)
}
