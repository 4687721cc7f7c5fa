package integration

import (
	"testing"

	"github.com/rpgo/dca-calculator/internal/calculation"
	"github.com/rpgo/dca-calculator/internal/config"
	"github.com/rpgo/dca-calculator/internal/prices"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndCalculation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	sm := prices.NewSeriesManager(cfg.Data.PricesPath)
	require.NoError(t, sm.Load())
	observations, err := sm.Observations()
	require.NoError(t, err)
	assert.Len(t, observations, 36)

	engine := calculation.NewCalculationEngine()
	result, err := engine.Calculate(cfg.Parameters(), observations)
	require.NoError(t, err)

	// Start on 15/03/2018 skips the March observation dated the 1st.
	assert.Equal(t, 33, result.Months())
	assert.True(t, result.TotalInvested.Equal(decimal.NewFromInt(3300)))
	assert.Equal(t, "2018-04", result.Series[0].YearMonth.String())
	assert.Equal(t, "2020-12", result.Series[len(result.Series)-1].YearMonth.String())
	assert.True(t, result.CurrentValue.GreaterThan(decimal.Zero))

	require.NotNil(t, result.Projection)
	assert.Len(t, result.Projection.Scenarios, 3)
	for i := 1; i < len(result.Projection.Scenarios); i++ {
		assert.True(t, result.Projection.Scenarios[i].FutureValue.GreaterThan(result.Projection.Scenarios[i-1].FutureValue))
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))
}

func TestDataQuality(t *testing.T) {
	sm := prices.NewSeriesManager("../testdata/prices.csv")
	require.NoError(t, sm.Load())

	issues, err := sm.ValidateDataQuality()
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 36, sm.Series.Statistics.Count)
	assert.Empty(t, sm.Series.Statistics.MissingMonths)
}
