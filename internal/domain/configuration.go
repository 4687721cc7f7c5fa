package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/rpgo/dca-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidStartDate reports a start date that is missing or not a real calendar date.
var ErrInvalidStartDate = errors.New("invalid start date")

// DefaultMonthlyContribution is the fixed monthly amount invested when none is configured
var DefaultMonthlyContribution = decimal.NewFromInt(100)

// Person describes whose savings are simulated
type Person struct {
	Name          string    `yaml:"name,omitempty" json:"name,omitempty"`
	BirthDate     time.Time `yaml:"birth_date" json:"birth_date"` // dd/mm/yyyy in YAML
	RetirementAge *int      `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
}

// UnmarshalYAML reads the birth date in dd/mm/yyyy form
func (p *Person) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Name          string `yaml:"name"`
		BirthDate     string `yaml:"birth_date"`
		RetirementAge *int   `yaml:"retirement_age,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	p.Name = aux.Name
	p.RetirementAge = aux.RetirementAge
	if aux.BirthDate != "" {
		birth, err := dateutil.ParseDayMonthYear(aux.BirthDate)
		if err != nil {
			return fmt.Errorf("birth_date: %w: %v", ErrInvalidStartDate, err)
		}
		if !dateutil.IsValidDate(birth.Day(), int(birth.Month()), birth.Year()) {
			return fmt.Errorf("birth_date: %w: %q", ErrInvalidStartDate, aux.BirthDate)
		}
		p.BirthDate = birth
	}
	return nil
}

// MarshalYAML writes the birth date back in dd/mm/yyyy form
func (p Person) MarshalYAML() (interface{}, error) {
	out := map[string]interface{}{
		"birth_date": dateutil.FormatDayMonthYear(p.BirthDate),
	}
	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.RetirementAge != nil {
		out["retirement_age"] = *p.RetirementAge
	}
	return out, nil
}

// InvestmentSettings configures the contribution plan
type InvestmentSettings struct {
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
}

// UnmarshalYAML converts the contribution string into a decimal
func (s *InvestmentSettings) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		MonthlyContribution *string `yaml:"monthly_contribution,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	if aux.MonthlyContribution != nil {
		val, err := decimal.NewFromString(*aux.MonthlyContribution)
		if err != nil {
			return fmt.Errorf("monthly_contribution: %w", err)
		}
		s.MonthlyContribution = val
	}
	return nil
}

// DataSettings locates the price series
type DataSettings struct {
	PricesPath string `yaml:"prices_path" json:"prices_path"`
}

// OutputSettings selects report rendering
type OutputSettings struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Configuration is the complete run file
type Configuration struct {
	Person     Person             `yaml:"person" json:"person"`
	Investment InvestmentSettings `yaml:"investment" json:"investment"`
	Data       DataSettings       `yaml:"data" json:"data"`
	Output     OutputSettings     `yaml:"output" json:"output"`
}

// Parameters converts the configuration into simulation inputs
func (c *Configuration) Parameters() SimulationParameters {
	contribution := c.Investment.MonthlyContribution
	if contribution.IsZero() {
		contribution = DefaultMonthlyContribution
	}
	return SimulationParameters{
		StartDate:           c.Person.BirthDate,
		MonthlyContribution: contribution,
		RetirementAge:       c.Person.RetirementAge,
	}
}
