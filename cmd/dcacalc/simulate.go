package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/dca-calculator/internal/calculation"
	"github.com/rpgo/dca-calculator/internal/config"
	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/internal/logging"
	"github.com/rpgo/dca-calculator/internal/output"
	"github.com/rpgo/dca-calculator/internal/prices"
)

type simulateOptions struct {
	birthDate     string
	day           int
	month         int
	year          int
	retirementAge int
	monthly       string
	format        string
	configPath    string
	outputPath    string
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Invest a fixed amount every month since a date and report the result",
		Example: `  dcacalc simulate --birth-date 26/12/1964 --retirement-age 67
  dcacalc simulate --day 5 --month 4 --year 1990 --format html --output report.html
  dcacalc simulate --config run.yaml --format all --output reports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.birthDate, "birth-date", "", "start date as dd/mm/yyyy")
	f.IntVar(&opts.day, "day", 0, "start day")
	f.IntVar(&opts.month, "month", 0, "start month")
	f.IntVar(&opts.year, "year", 0, "start year")
	f.IntVar(&opts.retirementAge, "retirement-age", 0, "age to project the current value to")
	f.StringVar(&opts.monthly, "monthly", domain.DefaultMonthlyContribution.String(), "monthly contribution")
	f.StringVarP(&opts.format, "format", "f", "console", "output format (see 'dcacalc formats'), or all")
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML run configuration")
	f.StringVarP(&opts.outputPath, "output", "o", "", "write the report to this file (a directory for --format all)")
	cmd.MarkFlagsMutuallyExclusive("birth-date", "day")
	cmd.MarkFlagsMutuallyExclusive("birth-date", "month")
	cmd.MarkFlagsMutuallyExclusive("birth-date", "year")
	return cmd
}

func runSimulate(cmd *cobra.Command, a *app, opts *simulateOptions) error {
	var cfg domain.Configuration
	if opts.configPath != "" {
		loaded, err := config.NewInputParser().LoadFromFile(opts.configPath)
		if errors.Is(err, calculation.ErrInvalidDate) {
			fmt.Fprintf(cmd.ErrOrStderr(), "No result: %s has no real birth_date (dd/mm/yyyy)\n", opts.configPath)
			return nil
		}
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	params, err := simulationParameters(cmd, opts, &cfg)
	if errors.Is(err, calculation.ErrInvalidDate) {
		fmt.Fprintln(cmd.ErrOrStderr(), "No result: enter a real start date, e.g. --birth-date 26/12/1964")
		return nil
	}
	if err != nil {
		return err
	}

	dataPath := a.dataPath
	if !cmd.Flags().Changed("data") && cfg.Data.PricesPath != "" {
		dataPath = cfg.Data.PricesPath
	}
	sm := prices.NewSeriesManager(dataPath)
	if err := sm.Load(); err != nil {
		return err
	}
	observations, err := sm.Observations()
	if err != nil {
		return err
	}
	a.log.Debug().Str("path", dataPath).Int("observations", len(observations)).Msg("price series loaded")

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewEngineLogger(a.log))
	result, err := engine.Calculate(params, observations)
	if errors.Is(err, calculation.ErrInvalidDate) {
		fmt.Fprintln(cmd.ErrOrStderr(), "No result: enter a real start date")
		return nil
	}
	if err != nil {
		return err
	}

	format := opts.format
	if !cmd.Flags().Changed("format") && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	outputPath := opts.outputPath
	if !cmd.Flags().Changed("output") && cfg.Output.Path != "" {
		outputPath = cfg.Output.Path
	}
	return writeResult(cmd, result, format, outputPath)
}

// simulationParameters merges flags over the run configuration; flags win.
func simulationParameters(cmd *cobra.Command, opts *simulateOptions, cfg *domain.Configuration) (domain.SimulationParameters, error) {
	params := cfg.Parameters()
	flags := cmd.Flags()

	switch {
	case opts.birthDate != "":
		start, err := calculation.ParseStartDate(opts.birthDate)
		if err != nil {
			return params, err
		}
		params.StartDate = start
	case flags.Changed("day") || flags.Changed("month") || flags.Changed("year") || params.StartDate.IsZero():
		start, err := calculation.StartDateFromFields(opts.day, opts.month, opts.year)
		if err != nil {
			return params, err
		}
		params.StartDate = start
	}

	if flags.Changed("retirement-age") {
		age := opts.retirementAge
		params.RetirementAge = &age
	}

	if flags.Changed("monthly") || cfg.Investment.MonthlyContribution.IsZero() {
		monthly, err := decimal.NewFromString(opts.monthly)
		if err != nil {
			return params, fmt.Errorf("invalid --monthly %q: %w", opts.monthly, err)
		}
		params.MonthlyContribution = monthly
	}
	return params, nil
}

func writeResult(cmd *cobra.Command, result *domain.SimulationResult, format, outputPath string) error {
	if output.NormalizeFormatName(format) == output.AllFormats {
		dir := outputPath
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		files, err := output.GenerateReport(result, format, dir)
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", f)
		}
		return err
	}

	if outputPath != "" {
		if err := output.WriteReport(result, format, outputPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", outputPath)
		return nil
	}

	data, err := output.Render(result, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
