package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qbrankings/internal/season"
	"qbrankings/internal/store"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <csvfile>",
		Short: "Load an analytic CSV into the relational store",
		Long: `Read an analytic CSV produced by build and insert it into the qb_season
table. Inserts are plain INSERTs inside one transaction: a primary-key
conflict with already-loaded rows fails the load and rolls everything back.

Each load is tracked as a run in the runs table.`,
		Example: `  # Load into the default sqlite database
  qbrankings load qb_stats.csv

  # Load into postgres
  qbrankings load qb_stats.csv --store-driver postgres --store-dsn "$QB_DSN"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)
			logger := getLogger(ctx)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			recs, err := season.ReadCSV(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			s, err := store.Open(ctx, store.Config{
				Driver: cfg.Store.Driver,
				Path:   cfg.Store.Path,
				DSN:    cfg.Store.DSN,
			}, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx); err != nil {
				return err
			}

			run, err := s.CreateRun(ctx)
			if err != nil {
				return err
			}

			if err := s.InsertSeasons(ctx, recs); err != nil {
				if cerr := s.CompleteRun(ctx, run.ID, store.RunStatusFailed, 0, err.Error()); cerr != nil {
					logger.Warn("could not record failed run", "run", run.ID, "error", cerr)
				}
				return err
			}
			if err := s.CompleteRun(ctx, run.ID, store.RunStatusSuccess, int64(len(recs)), ""); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows (run %s)\n", len(recs), run.ID)
			return nil
		},
	}

	return cmd
}
