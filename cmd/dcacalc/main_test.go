package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Month,Closing
01/01/2000,100
01/02/2000,110
01/03/2000,121
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "off"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestSimulate_Console(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)

	out, _, err := execute(t, "simulate", "--data", data, "--day", "1", "--month", "1", "--year", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "Total invested: $300")
	assert.Contains(t, out, "Current value:  $331")
	assert.NotContains(t, out, "Projected")
}

func TestSimulate_BirthDateAndProjection(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)

	out, _, err := execute(t, "simulate", "--data", data, "--birth-date", "01/01/2000", "--retirement-age", "65", "--format", "json")
	require.NoError(t, err)

	var body struct {
		TotalInvested string `json:"total_invested"`
		Projection    *struct {
			YearsToRetirement int `json:"years_to_retirement"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "300", body.TotalInvested)
	require.NotNil(t, body.Projection)
	assert.Equal(t, 64, body.Projection.YearsToRetirement)
}

func TestSimulate_InvalidDateExitsQuietly(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)

	for _, args := range [][]string{
		{"--day", "30", "--month", "2", "--year", "2000"},
		{"--birth-date", "31/04/1990"},
		{"--birth-date", "01/01/0000"},
		{},
	} {
		out, errOut, err := execute(t, append([]string{"simulate", "--data", data}, args...)...)
		require.NoError(t, err, args)
		assert.Empty(t, out, args)
		assert.Contains(t, errOut, "No result", args)
	}
}

func TestSimulate_MissingData(t *testing.T) {
	_, _, err := execute(t, "simulate", "--data", filepath.Join(t.TempDir(), "none.csv"), "--birth-date", "01/01/2000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load price data")
}

func TestSimulate_BadMonthly(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)

	_, _, err := execute(t, "simulate", "--data", data, "--birth-date", "01/01/2000", "--monthly", "0")
	require.Error(t, err)

	_, _, err = execute(t, "simulate", "--data", data, "--birth-date", "01/01/2000", "--monthly", "ten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --monthly")
}

func TestSimulate_Config(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)
	cfg := writeTemp(t, "run.yaml", `
person:
  birth_date: "01/01/2000"
  retirement_age: 60
investment:
  monthly_contribution: "200"
data:
  prices_path: "`+data+`"
output:
  format: csv
`)

	out, _, err := execute(t, "simulate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Month,Price")
	assert.Contains(t, out, "2000-03")
	assert.Contains(t, out, ",600,662")

	// Flags override the file.
	out, _, err = execute(t, "simulate", "--config", cfg, "--monthly", "100", "--format", "console")
	require.NoError(t, err)
	assert.Contains(t, out, "Total invested: $300")
	assert.Contains(t, out, "Projected at age 60")
}

func TestSimulate_ConfigWithoutBirthDate(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)
	cfg := writeTemp(t, "run.yaml", "person:\n  retirement_age: 65\n")

	out, _, err := execute(t, "simulate", "--data", data, "--config", cfg, "--birth-date", "01/01/2000")
	require.NoError(t, err)
	assert.Contains(t, out, "Total invested: $300")
	assert.Contains(t, out, "Projected at age 65")

	out, errOut, err := execute(t, "simulate", "--data", data, "--config", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No result")
}

func TestSimulate_ConfigInvalidBirthDate(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)
	cfg := writeTemp(t, "run.yaml", "person:\n  birth_date: \"30/02/2020\"\n")

	out, errOut, err := execute(t, "simulate", "--data", data, "--config", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No result")
	assert.Contains(t, errOut, "birth_date")
}

func TestSimulate_OutputFiles(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)
	dir := t.TempDir()

	target := filepath.Join(dir, "report.html")
	out, _, err := execute(t, "simulate", "--data", data, "--birth-date", "01/01/2000", "--format", "html", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)
	assert.FileExists(t, target)

	reports := filepath.Join(dir, "all")
	_, _, err = execute(t, "simulate", "--data", data, "--birth-date", "01/01/2000", "--format", "all", "--output", reports)
	require.NoError(t, err)
	entries, err := os.ReadDir(reports)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestPricesAddAndInfo(t *testing.T) {
	data := writeTemp(t, "prices.csv", sampleCSV)

	out, _, err := execute(t, "prices", "add", "--data", data, "--date", "01/04/2000", "--close", "133.1")
	require.NoError(t, err)
	assert.Contains(t, out, "added 01/04/2000 133.10")

	out, _, err = execute(t, "prices", "add", "--data", data, "--date", "01/04/2000", "--close", "140")
	require.NoError(t, err)
	assert.Contains(t, out, "already present")

	out, _, err = execute(t, "prices", "info", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Observations:      4")
	assert.Contains(t, out, "Last:              01/04/2000")
	assert.Contains(t, out, "Data quality:      ok")

	out, _, err = execute(t, "prices", "info", "--data", data, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"count": 4`)
}

func TestPricesAdd_RequiresFlags(t *testing.T) {
	_, _, err := execute(t, "prices", "add", "--date", "01/04/2000")
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	out, _, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "console-verbose")
	assert.Contains(t, out, "verbose")
	assert.Contains(t, out, "all")
}
