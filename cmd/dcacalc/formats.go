package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/dca-calculator/internal/output"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Formats: %s, %s\n", strings.Join(output.AvailableFormatterNames(), ", "), output.AllFormats)
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(w, "  %-12s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
			return nil
		},
	}
}
