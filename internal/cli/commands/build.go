package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"qbrankings/internal/fetch"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	var fetchMissing bool

	cmd := &cobra.Command{
		Use:   "build <begin> <end> <outfile>",
		Short: "Build the analytic CSV from staged source pages",
		Long: `Parse the staged pages for every season in the inclusive range, merge the
sources on player identity, and write the analytic CSV. The output is
deterministic: same staged inputs, byte-identical file.`,
		Example: `  # Build from already-staged pages
  qbrankings build 2002 2017 qb_stats.csv

  # Download anything missing, then build
  qbrankings build 2002 2017 qb_stats.csv --fetch`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			begin, end, err := seasonRange(args)
			if err != nil {
				return err
			}

			builder, err := newBuilder(cmd.Context())
			if err != nil {
				return err
			}
			if fetchMissing {
				builder.Fetcher = fetch.New(fetch.WithLogger(getLogger(cmd.Context())))
			}

			rows, err := builder.BuildCSV(cmd.Context(), begin, end, args[2])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", rows, args[2])
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetchMissing, "fetch", false, "Download missing seasons before building")

	return cmd
}
