// Package pipeline wires the stages together: staged HTML in, analytic
// records out. Stages run sequentially per season so a failure points at
// exactly one source, season, and row.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"qbrankings/internal/fetch"
	"qbrankings/internal/filter"
	"qbrankings/internal/htmltable"
	"qbrankings/internal/merge"
	"qbrankings/internal/season"
	"qbrankings/internal/source"
	"qbrankings/internal/xwalk"
)

// Builder turns staged source pages into merged season records.
type Builder struct {
	// RawDir is the staging directory the fetcher writes to and the
	// parsers read from.
	RawDir string
	// Fetcher, when set, downloads missing pages before parsing.
	// Nil means offline: a missing staged file is an error.
	Fetcher *fetch.Client
	// Predicate decides which base-source rows are included.
	Predicate *filter.Predicate
	// Teams resolves Over the Cap mascot names to team codes.
	Teams *xwalk.TeamNames
	// Designations is the optional elite/system/fraud crosswalk.
	Designations xwalk.Designations
	// Sources defaults to source.All.
	Sources []source.Descriptor
	// Logger defaults to a discard logger.
	Logger *slog.Logger
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *Builder) sources() []source.Descriptor {
	if b.Sources == nil {
		return source.All
	}
	return b.Sources
}

// Seasons builds every season in the inclusive [begin, end] range, in
// order, and returns the combined records.
func (b *Builder) Seasons(ctx context.Context, begin, end int) ([]season.Record, error) {
	if begin > end {
		return nil, fmt.Errorf("season range %d-%d is backwards", begin, end)
	}

	if b.Fetcher != nil {
		years := make([]int, 0, end-begin+1)
		for year := begin; year <= end; year++ {
			years = append(years, year)
		}
		if err := b.Fetcher.Download(ctx, b.RawDir, b.sources(), years, false); err != nil {
			return nil, err
		}
	}

	var out []season.Record
	for year := begin; year <= end; year++ {
		recs, err := b.season(ctx, year)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}

	b.logger().Info("built seasons", "begin", begin, "end", end, "rows", len(out))
	return out, nil
}

// season parses and merges one year.
func (b *Builder) season(ctx context.Context, year int) ([]season.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pfrTbl, err := b.readTable(source.PFR, year)
	if err != nil {
		return nil, err
	}
	pfr, err := source.ParsePFR(pfrTbl, year)
	if err != nil {
		return nil, err
	}

	foTbl, err := b.readTable(source.FO, year)
	if err != nil {
		return nil, err
	}
	fo, err := source.ParseFO(foTbl, year)
	if err != nil {
		return nil, err
	}

	otcTbl, err := b.readTable(source.OTC, year)
	if err != nil {
		return nil, err
	}
	otc, err := source.ParseOTC(otcTbl, year, b.Teams)
	if err != nil {
		return nil, err
	}

	return merge.Season(year, pfr, fo, otc, merge.Options{
		Predicate:    b.Predicate,
		Designations: b.Designations,
		Logger:       b.logger(),
	})
}

// readTable extracts one source's stat table from its staged page.
func (b *Builder) readTable(src source.Descriptor, year int) (*htmltable.Table, error) {
	path := filepath.Join(b.RawDir, src.RawFile(year))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s %d is not staged (run download first): %w", src.Name, year, err)
	}
	defer f.Close()

	tbl, err := htmltable.Extract(f, src.TableSelector)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", src.Name, year, err)
	}
	b.logger().Debug("extracted table", "source", src.Name, "year", year, "rows", tbl.Len())
	return tbl, nil
}

// BuildCSV runs Seasons and writes the analytic CSV. It returns the number
// of rows written. Output goes through a temp file so readers never see a
// half-written table.
func (b *Builder) BuildCSV(ctx context.Context, begin, end int, outPath string) (int, error) {
	recs, err := b.Seasons(ctx, begin, end)
	if err != nil {
		return 0, err
	}

	tmp := outPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := season.WriteCSV(f, recs); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", outPath, err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		return 0, fmt.Errorf("finalize %s: %w", outPath, err)
	}

	b.logger().Info("wrote analytic file", "path", outPath, "rows", len(recs))
	return len(recs), nil
}
