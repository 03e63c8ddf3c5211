// Package cli provides the command-line interface for qbrankings.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"qbrankings/internal/cli/commands"
	"qbrankings/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "qbrankings",
		Short: "qbrankings - NFL quarterback stats pipeline",
		Long: `qbrankings downloads quarterback stat pages, normalizes them into one
analytic table keyed on player identity and season, and loads the result
into a CSV file and a relational database.

Sources: Pro Football Reference (passing), Football Outsiders (DYAR/DVOA),
and Over the Cap (salary cap values).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := context.WithValue(cmd.Context(), commands.ConfigKey{}, cfg)
			ctx = context.WithValue(ctx, commands.LoggerKey{}, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
NFL quarterback stats pipeline
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./qbrankings.yaml)")
	rootCmd.PersistentFlags().String("raw-dir", "", "Staging directory for downloaded pages")
	rootCmd.PersistentFlags().String("filter", "", `Row inclusion expression (default: pos == "QB")`)
	rootCmd.PersistentFlags().String("team-xwalk", "", "Override for the embedded team name crosswalk CSV")
	rootCmd.PersistentFlags().String("designations", "", "Elite/system/fraud crosswalk CSV")
	rootCmd.PersistentFlags().String("store-driver", "", "Database driver (sqlite|duckdb|postgres)")
	rootCmd.PersistentFlags().String("store-path", "", "Database file for file-based drivers")
	rootCmd.PersistentFlags().String("store-dsn", "", "Postgres connection string")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewDownloadCommand())
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewLoadCommand())
	rootCmd.AddCommand(commands.NewShowCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
