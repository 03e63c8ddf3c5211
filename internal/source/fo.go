package source

import (
	"fmt"

	"qbrankings/internal/clean"
	"qbrankings/internal/htmltable"
	"qbrankings/internal/identity"
)

// FORecord is one normalized row of Football Outsiders' QB efficiency
// table. DVOA and VOA arrive as %-suffixed strings and are stored as
// fractions ("12.3%" -> 0.123).
type FORecord struct {
	Key  identity.Key
	Year int

	DYAR     *int64
	YAR      *int64
	DVOA     *float64
	VOA      *float64
	EfctvYds *int64

	// DPI arrives combined as "count/yards" and is split here.
	DPICount *int64
	DPIYards *int64
}

var foRequired = []string{"Player", "Team", "DYAR", "YAR", "DVOA", "VOA", "EYds", "DPI"}

// ParseFO normalizes one season of the Football Outsiders QB table. Some
// seasons ship the real column names as the first body row under a
// decorative header; those tables are detected and the header promoted
// before parsing.
func ParseFO(tbl *htmltable.Table, year int) ([]FORecord, error) {
	if !tbl.HasColumn("Player") {
		promoted, err := tbl.Promote()
		if err != nil {
			return nil, fmt.Errorf("fo %d: %w: %v", year, ErrColumnLayout, err)
		}
		tbl = promoted
	}
	for _, col := range foRequired {
		if !tbl.HasColumn(col) {
			return nil, layoutErr(FO, year, col)
		}
	}

	seen := make(map[identity.Key]struct{}, tbl.Len())
	var out []FORecord

	for i := 0; i < tbl.Len(); i++ {
		player, _ := tbl.Cell(i, "Player")
		if player == "" || player == "Player" {
			continue
		}
		team, _ := tbl.Cell(i, "Team")

		rec, err := parseFORow(tbl, i, player, team, year)
		if err != nil {
			return nil, fmt.Errorf("fo %d row %d (%s): %w", year, i, player, err)
		}

		if _, dup := seen[rec.Key]; dup {
			return nil, dupErr(FO, year, rec.Key)
		}
		seen[rec.Key] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}

func parseFORow(tbl *htmltable.Table, i int, player, team string, year int) (FORecord, error) {
	key, err := identity.NewKey(player, team)
	if err != nil {
		return FORecord{}, err
	}
	rec := FORecord{Key: key, Year: year}

	ints := map[string]**int64{
		"DYAR": &rec.DYAR,
		"YAR":  &rec.YAR,
		"EYds": &rec.EfctvYds,
	}
	for col, dst := range ints {
		cell, _ := tbl.Cell(i, col)
		v, err := clean.Int(cell)
		if err != nil {
			return FORecord{}, fmt.Errorf("column %s: %w", col, err)
		}
		*dst = v
	}

	pcts := map[string]**float64{
		"DVOA": &rec.DVOA,
		"VOA":  &rec.VOA,
	}
	for col, dst := range pcts {
		cell, _ := tbl.Cell(i, col)
		v, err := clean.Percent(cell)
		if err != nil {
			return FORecord{}, fmt.Errorf("column %s: %w", col, err)
		}
		*dst = v
	}

	if dpi, _ := tbl.Cell(i, "DPI"); dpi != "" {
		countStr, yardsStr, err := clean.SplitPair(dpi, "/")
		if err != nil {
			return FORecord{}, fmt.Errorf("column DPI: %w", err)
		}
		if rec.DPICount, err = clean.Int(countStr); err != nil {
			return FORecord{}, fmt.Errorf("column DPI count: %w", err)
		}
		if rec.DPIYards, err = clean.Int(yardsStr); err != nil {
			return FORecord{}, fmt.Errorf("column DPI yards: %w", err)
		}
	}

	return rec, nil
}
