package prices

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rpgo/dca-calculator/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesManager(t *testing.T) {
	sm := NewSeriesManager(writeFile(t, sampleCSV))
	require.NotNil(t, sm)
	assert.False(t, sm.IsLoaded, "manager should not be loaded initially")

	_, err := sm.Observations()
	assert.True(t, errors.Is(err, ErrNotLoaded))

	require.NoError(t, sm.Load())
	assert.True(t, sm.IsLoaded)
	require.NoError(t, sm.Load(), "second load is a no-op")

	observations, err := sm.Observations()
	require.NoError(t, err)
	assert.Len(t, observations, 3)

	latest, err := sm.Latest()
	require.NoError(t, err)
	assert.Equal(t, dateutil.Date(2000, 4, 1), latest.Date)
	assert.Equal(t, sm.DataPath, sm.Series.Source)
}

func TestSeriesManager_LoadFailure(t *testing.T) {
	sm := NewSeriesManager(writeFile(t, "Month,Closing\n"))
	err := sm.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.False(t, sm.IsLoaded)

	_, err = sm.ValidateDataQuality()
	assert.True(t, errors.Is(err, ErrNotLoaded))
}

func TestCalculateStatistics(t *testing.T) {
	content := "Month,Closing\n" +
		"01/01/2000,100\n" +
		"01/02/2000,110\n" +
		"15/02/2000,112\n" +
		"01/05/2000,99\n"
	sm := NewSeriesManager(writeFile(t, content))
	require.NoError(t, sm.Load())

	stats := sm.Series.Statistics
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, "99", stats.Min.String())
	assert.Equal(t, "112", stats.Max.String())
	assert.Equal(t, dateutil.Date(2000, 1, 1), stats.First)
	assert.Equal(t, dateutil.Date(2000, 5, 1), stats.Last)

	assert.Equal(t, []dateutil.YearMonth{{Year: 2000, Month: time.February}}, stats.DuplicateMonths)
	assert.Equal(t, []dateutil.YearMonth{
		{Year: 2000, Month: time.March},
		{Year: 2000, Month: time.April},
	}, stats.MissingMonths)

	// Returns: 110/100-1 and 99/112-1; the duplicate month contributes none.
	want := (0.1 + (99.0/112.0 - 1)) / 2
	assert.InDelta(t, want, stats.MeanMonthlyReturn, 1e-12)
	assert.Greater(t, stats.StdDevMonthlyReturn, 0.0)
	assert.InDelta(t, math.Pow(1+want, 12)-1, stats.AnnualizedReturn(), 1e-12)

	issues, err := sm.ValidateDataQuality()
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], "2000-03 2000-04")
	assert.Contains(t, issues[1], "2000-02")
}

func TestValidateDataQuality_ExtremeMove(t *testing.T) {
	sm := NewSeriesManager(writeFile(t, "Month,Closing\n01/01/2000,100\n01/02/2000,1000\n01/03/2000,1010\n"))
	require.NoError(t, sm.Load())

	issues, err := sm.ValidateDataQuality()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "Extreme move at 01/02/2000")
}

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := CalculateStatistics(nil)
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.StdDevMonthlyReturn)
}
