// Package merge reconciles one season's normalized per-source records into
// season records. Pro Football Reference defines the base population (after
// the inclusion filter); Football Outsiders and Over the Cap columns join
// on the canonical identity key. The union is left-biased: a key the base
// has but a source lacks keeps its row with that source's columns null, so
// coverage gaps stay visible instead of dropping records.
package merge

import (
	"errors"
	"fmt"
	"log/slog"

	"qbrankings/internal/filter"
	"qbrankings/internal/identity"
	"qbrankings/internal/season"
	"qbrankings/internal/source"
	"qbrankings/internal/xwalk"
)

// ErrKeyCollision reports two rows competing for the same (identity, season)
// slot. Collisions are surfaced, never resolved by picking a winner.
var ErrKeyCollision = errors.New("merge-key collision")

// Options configures one merge run.
type Options struct {
	// Predicate decides which base-source rows qualify for the table.
	Predicate *filter.Predicate
	// Designations is the optional elite/system/fraud crosswalk, joined on
	// player name only.
	Designations xwalk.Designations
	// Logger defaults to a discard logger.
	Logger *slog.Logger
}

// Season merges one year of per-source records.
func Season(year int, pfr []source.PFRRecord, fo []source.FORecord, otc []source.OTCRecord, opts Options) ([]season.Record, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Predicate == nil {
		return nil, fmt.Errorf("merge %d: no inclusion predicate", year)
	}

	foByKey, err := indexFO(year, fo)
	if err != nil {
		return nil, err
	}
	otcByKey, err := indexOTC(year, otc)
	if err != nil {
		return nil, err
	}

	seen := make(map[identity.Key]struct{}, len(pfr))
	out := make([]season.Record, 0, len(pfr))

	for i := range pfr {
		p := &pfr[i]

		include, err := opts.Predicate.Include(filter.Env{
			Player:       p.Key.Player,
			Team:         p.Key.Team,
			Year:         year,
			Pos:          p.Pos,
			Games:        orZero(p.Games),
			GamesStarted: orZero(p.GamesStarted),
			Att:          orZero(p.Att),
			Cmp:          orZero(p.Cmp),
		})
		if err != nil {
			return nil, fmt.Errorf("merge %d: %w", year, err)
		}
		if !include {
			continue
		}

		if _, dup := seen[p.Key]; dup {
			return nil, fmt.Errorf("merge %d: %w: %s in base source", year, ErrKeyCollision, p.Key)
		}
		seen[p.Key] = struct{}{}

		rec := fromPFR(p)

		if f, ok := foByKey[p.Key]; ok {
			attachFO(&rec, f)
		} else {
			logger.Debug("no fo coverage", "year", year, "key", p.Key.String())
		}
		if o, ok := otcByKey[p.Key]; ok {
			rec.SalaryCapValue = &o.SalaryCapValue
		} else {
			logger.Debug("no otc coverage", "year", year, "key", p.Key.String())
		}
		if d, ok := opts.Designations[p.Key.Player]; ok {
			rec.Elite, rec.System, rec.Fraud = d.Elite, d.System, d.Fraud
		}

		out = append(out, rec)
	}

	logger.Info("merged season",
		"year", year,
		"base_rows", len(pfr),
		"included", len(out),
		"fo_rows", len(fo),
		"otc_rows", len(otc),
	)
	return out, nil
}

func indexFO(year int, fo []source.FORecord) (map[identity.Key]*source.FORecord, error) {
	m := make(map[identity.Key]*source.FORecord, len(fo))
	for i := range fo {
		if _, dup := m[fo[i].Key]; dup {
			return nil, fmt.Errorf("merge %d: %w: %s in fo", year, ErrKeyCollision, fo[i].Key)
		}
		m[fo[i].Key] = &fo[i]
	}
	return m, nil
}

func indexOTC(year int, otc []source.OTCRecord) (map[identity.Key]*source.OTCRecord, error) {
	m := make(map[identity.Key]*source.OTCRecord, len(otc))
	for i := range otc {
		if _, dup := m[otc[i].Key]; dup {
			return nil, fmt.Errorf("merge %d: %w: %s in otc", year, ErrKeyCollision, otc[i].Key)
		}
		m[otc[i].Key] = &otc[i]
	}
	return m, nil
}

func fromPFR(p *source.PFRRecord) season.Record {
	return season.Record{
		Player:   p.Key.Player,
		FullName: p.FullName,
		Team:     p.Key.Team,
		Year:     p.Year,

		Age:                p.Age,
		Games:              p.Games,
		GamesStarted:       p.GamesStarted,
		QBWins:             p.QBWins,
		Att:                p.Att,
		Cmp:                p.Cmp,
		CmpPct:             p.CmpPct,
		Yds:                p.Yds,
		YdsPerGame:         p.YdsPerGame,
		YdsPerAtt:          p.YdsPerAtt,
		YdsPerCmp:          p.YdsPerCmp,
		Sacks:              p.Sacks,
		SackYds:            p.SackYds,
		SackPct:            p.SackPct,
		AdjYdsPerAtt:       p.AdjYdsPerAtt,
		NetYdsPerAtt:       p.NetYdsPerAtt,
		AdjNetYdsPerAtt:    p.AdjNetYdsPerAtt,
		TD:                 p.TD,
		TDPct:              p.TDPct,
		Int:                p.Int,
		IntPct:             p.IntPct,
		FourthQtrComebacks: p.FourthQtrComebacks,
		GameWinningDrives:  p.GameWinningDrives,
		QBRating:           p.Rating,
		QBR:                p.QBR,
	}
}

func attachFO(rec *season.Record, f *source.FORecord) {
	rec.DPICount = f.DPICount
	rec.DPIYards = f.DPIYards
	rec.DYAR = f.DYAR
	rec.YAR = f.YAR
	rec.DVOA = f.DVOA
	rec.VOA = f.VOA
	rec.EfctvYds = f.EfctvYds
}

func orZero(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
