package commands

import (
	"time"

	"github.com/spf13/cobra"

	"qbrankings/internal/fetch"
	"qbrankings/internal/source"
)

// NewDownloadCommand creates the download command.
func NewDownloadCommand() *cobra.Command {
	var force bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "download <begin> <end>",
		Short: "Download source stat pages into the staging directory",
		Long: `Download the Pro Football Reference, Football Outsiders, and Over the Cap
pages for every season in the inclusive range and stage them as local HTML
files. Seasons already staged are skipped unless --force is given.`,
		Example: `  # Stage the 2002-2017 seasons
  qbrankings download 2002 2017

  # Re-download one season that staged badly
  qbrankings download 2015 2015 --force`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			begin, end, err := seasonRange(args)
			if err != nil {
				return err
			}

			years := make([]int, 0, end-begin+1)
			for year := begin; year <= end; year++ {
				years = append(years, year)
			}

			cfg := getConfig(cmd.Context())
			client := fetch.New(
				fetch.WithLogger(getLogger(cmd.Context())),
				fetch.WithTimeout(timeout),
			)
			return client.Download(cmd.Context(), cfg.RawDir, source.All, years, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-download seasons that are already staged")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Per-request timeout")

	return cmd
}
