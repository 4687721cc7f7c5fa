package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/dca-calculator/internal/domain"
	"github.com/rpgo/dca-calculator/internal/output"
	"github.com/rpgo/dca-calculator/internal/prices"
	"github.com/rpgo/dca-calculator/pkg/dateutil"
)

func newPricesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Inspect or extend the monthly closing price file",
	}
	cmd.AddCommand(newPricesInfoCmd(a), newPricesAddCmd(a))
	return cmd
}

func newPricesInfoCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize the price file and report data quality issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sm := prices.NewSeriesManager(a.dataPath)
			if err := sm.Load(); err != nil {
				return err
			}
			issues, err := sm.ValidateDataQuality()
			if err != nil {
				return err
			}
			for _, issue := range issues {
				a.log.Warn().Str("path", a.dataPath).Msg(issue)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Source     string            `json:"source"`
					Statistics prices.Statistics `json:"statistics"`
					Issues     []string          `json:"issues"`
				}{sm.DataPath, sm.Series.Statistics, issues})
			}
			writePriceInfo(cmd.OutOrStdout(), sm.Series, issues)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func writePriceInfo(w io.Writer, ds *prices.Dataset, issues []string) {
	s := ds.Statistics
	fmt.Fprintf(w, "Source:            %s\n", ds.Source)
	fmt.Fprintf(w, "Observations:      %d\n", s.Count)
	fmt.Fprintf(w, "First:             %s\n", output.FormatDate(s.First))
	fmt.Fprintf(w, "Last:              %s\n", output.FormatDate(s.Last))
	fmt.Fprintf(w, "Min close:         %s\n", output.FormatPrice(s.Min))
	fmt.Fprintf(w, "Max close:         %s\n", output.FormatPrice(s.Max))
	fmt.Fprintf(w, "Mean monthly move: %.3f%% (sd %.3f%%)\n", s.MeanMonthlyReturn*100, s.StdDevMonthlyReturn*100)
	fmt.Fprintf(w, "Annualized:        %.2f%%\n", s.AnnualizedReturn()*100)
	if len(issues) == 0 {
		fmt.Fprintln(w, "Data quality:      ok")
		return
	}
	fmt.Fprintln(w, "Data quality:")
	for _, issue := range issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
}

func newPricesAddCmd(a *app) *cobra.Command {
	var date, closing string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Append a monthly closing price unless that date is already present",
		Example: "  dcacalc prices add --date 01/10/2026 --close 6688.46",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := dateutil.ParseDayMonthYear(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}
			value, err := decimal.NewFromString(closing)
			if err != nil {
				return fmt.Errorf("invalid --close %q: %w", closing, err)
			}

			added, err := prices.AppendObservation(a.dataPath, domain.PriceObservation{Date: when, Close: value})
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already present in %s\n", dateutil.FormatDayMonthYear(when), a.dataPath)
				return nil
			}
			a.log.Info().Str("path", a.dataPath).Str("date", dateutil.FormatDayMonthYear(when)).Str("close", value.String()).Msg("closing price appended")
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s to %s\n", dateutil.FormatDayMonthYear(when), value.StringFixed(2), a.dataPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "observation date as dd/mm/yyyy")
	cmd.Flags().StringVar(&closing, "close", "", "closing price")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("close")
	return cmd
}
