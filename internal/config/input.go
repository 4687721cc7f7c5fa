package config

import (
	"fmt"
	"os"

	"github.com/rpgo/dca-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// MaxRetirementAge bounds the accepted retirement age
const MaxRetirementAge = 120

// InputParser handles parsing of run configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a run configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validatePerson(&config.Person); err != nil {
		return fmt.Errorf("person validation failed: %w", err)
	}

	if config.Investment.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly contribution must be positive")
	}

	return nil
}

// validatePerson checks the retirement age. The birth date may be left out
// and supplied at run time instead.
func (ip *InputParser) validatePerson(person *domain.Person) error {
	if person.RetirementAge != nil {
		age := *person.RetirementAge
		if age < 0 || age > MaxRetirementAge {
			return fmt.Errorf("retirement age must be between 0 and %d, got %d", MaxRetirementAge, age)
		}
	}
	return nil
}

// SaveConfiguration writes config back to a YAML file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
