// Package commands implements the qbrankings subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"qbrankings/internal/cli/config"
	"qbrankings/internal/filter"
	"qbrankings/internal/pipeline"
	"qbrankings/internal/xwalk"
)

// ConfigKey is the context key the root command stores the loaded config
// under.
type ConfigKey struct{}

// LoggerKey is the context key the root command stores the logger under.
type LoggerKey struct{}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		RawDir: config.DefaultRawDir,
		Store: config.StoreConfig{
			Driver: config.DefaultDriver,
			Path:   config.DefaultStorePath,
		},
	}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// seasonRange parses and validates <begin> <end> positional arguments.
func seasonRange(args []string) (int, int, error) {
	begin, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("begin season %q is not a year", args[0])
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("end season %q is not a year", args[1])
	}
	if begin > end {
		return 0, 0, fmt.Errorf("season range %d-%d is backwards", begin, end)
	}
	return begin, end, nil
}

// newBuilder assembles the pipeline from the loaded config.
func newBuilder(ctx context.Context) (*pipeline.Builder, error) {
	cfg := getConfig(ctx)

	pred, err := filter.Compile(cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	teams, err := xwalk.LoadTeamNames(cfg.TeamXwalk)
	if err != nil {
		return nil, err
	}

	var designations xwalk.Designations
	if cfg.Designations != "" {
		if designations, err = xwalk.LoadDesignations(cfg.Designations); err != nil {
			return nil, err
		}
	}

	return &pipeline.Builder{
		RawDir:       cfg.RawDir,
		Predicate:    pred,
		Teams:        teams,
		Designations: designations,
		Logger:       getLogger(ctx),
	}, nil
}
