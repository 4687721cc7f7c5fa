package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rpgo/dca-calculator/internal/config"
	"github.com/rpgo/dca-calculator/internal/logging"
)

// app carries settings shared by every subcommand.
type app struct {
	env      config.Environment
	dataPath string
	logLevel string
	pretty   bool
	log      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dcacalc",
		Short:         "Dollar-cost averaging calculator",
		Long:          "Simulates investing a fixed amount into an index every month since a birth date and projects the result to retirement.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnvironment()
			if err != nil {
				return err
			}
			a.env = env
			if !cmd.Flags().Changed("data") {
				a.dataPath = env.DataPath
			}
			if !cmd.Flags().Changed("log-level") {
				a.logLevel = env.LogLevel
			}
			a.log = logging.New(logging.Config{
				Level:  a.logLevel,
				Pretty: a.pretty,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dataPath, "data", config.DefaultDataPath, "price CSV file (Month,Closing)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error, off")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", true, "human-readable log output")

	root.AddCommand(
		newSimulateCmd(a),
		newPricesCmd(a),
		newServeCmd(a),
		newFormatsCmd(),
	)
	return root
}
