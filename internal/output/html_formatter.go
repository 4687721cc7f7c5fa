package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"

	"github.com/rpgo/dca-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with the chart series embedded as JSON.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"price": FormatPrice,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"units": FormatUnits,
	"date":  FormatDate,
	"json": func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		return template.JS(b), err
	},
}).Parse(htmlTemplateSource))

// ChartSeries is the two-line chart payload: cumulative invested and portfolio value per month.
type ChartSeries struct {
	Labels   []string `json:"labels"`
	Invested []int64  `json:"invested"`
	Value    []int64  `json:"value"`
}

// BuildChartSeries converts the result series into chart-ready arrays, oldest first.
func BuildChartSeries(result *domain.SimulationResult) ChartSeries {
	cs := ChartSeries{
		Labels:   make([]string, 0, len(result.Series)),
		Invested: make([]int64, 0, len(result.Series)),
		Value:    make([]int64, 0, len(result.Series)),
	}
	for _, p := range result.Series {
		cs.Labels = append(cs.Labels, p.YearMonth.String())
		cs.Invested = append(cs.Invested, p.CumulativeInvested.IntPart())
		cs.Value = append(cs.Value, p.PortfolioValue.IntPart())
	}
	return cs
}

func (h HTMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.SimulationResult
		Summary     Summary
		Assumptions []string
		Chart       ChartSeries
	}{result, Summarize(result), GenerateAssumptions(result.MonthlyContribution), BuildChartSeries(result)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
