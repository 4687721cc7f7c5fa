package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/dca-calculator/internal/domain"
)

// CSVSeriesExporter writes one row per monthly contribution, oldest first.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string { return "csv" }

func (c CSVSeriesExporter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Price", "MonthlyUnits", "CumulativeUnits", "CumulativeInvested", "PortfolioValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range result.Series {
		row := []string{
			p.YearMonth.String(),
			p.Price.StringFixed(2),
			p.MonthlyUnits.StringFixed(8),
			p.CumulativeUnits.StringFixed(8),
			p.CumulativeInvested.StringFixed(0),
			p.PortfolioValue.StringFixed(0),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
