package source

import (
	"fmt"
	"strings"

	"qbrankings/internal/clean"
	"qbrankings/internal/htmltable"
	"qbrankings/internal/identity"
)

// PFRRecord is one normalized row of Pro Football Reference's passing table.
// Stat fields are pointers: an empty cell is nil, not zero. Percent-valued
// PFR columns (Cmp%, TD%, ...) arrive as bare numbers and are kept on that
// scale; only %-suffixed strings elsewhere become fractions.
type PFRRecord struct {
	Key      identity.Key
	FullName string
	Pos      string
	Year     int

	Age          *int64
	Games        *int64
	GamesStarted *int64
	// QBWins is derived from the W-L-T record, ties worth half a win.
	QBWins *float64

	Cmp    *int64
	Att    *int64
	CmpPct *float64
	Yds    *int64
	TD     *int64
	TDPct  *float64
	Int    *int64
	IntPct *float64

	YdsPerAtt    *float64
	AdjYdsPerAtt *float64
	YdsPerCmp    *float64
	YdsPerGame   *float64

	Rating *float64
	QBR    *float64

	Sacks           *int64
	SackYds         *int64
	SackPct         *float64
	NetYdsPerAtt    *float64
	AdjNetYdsPerAtt *float64

	FourthQtrComebacks *int64
	GameWinningDrives  *int64
}

// pfrRequired are the columns the parser cannot work without. QBR, 4QC and
// GWD are absent in older seasons and stay optional.
var pfrRequired = []string{
	"Player", "Tm", "Age", "Pos", "G", "GS", "QBrec",
	"Cmp", "Att", "Cmp%", "Yds", "TD", "TD%", "Int", "Int%",
	"Y/A", "AY/A", "Y/C", "Y/G", "Rate",
	"Sk", "Yds.1", "Sk%", "NY/A", "ANY/A",
}

// ParsePFR normalizes one season of the PFR passing table.
func ParsePFR(tbl *htmltable.Table, year int) ([]PFRRecord, error) {
	for _, col := range pfrRequired {
		if !tbl.HasColumn(col) {
			return nil, layoutErr(PFR, year, col)
		}
	}

	seen := make(map[identity.Key]struct{}, tbl.Len())
	var out []PFRRecord

	for i := 0; i < tbl.Len(); i++ {
		player, _ := tbl.Cell(i, "Player")
		team, _ := tbl.Cell(i, "Tm")

		// Long tables repeat the header mid-body; skip those rows and the
		// league-average footer rows, which carry no player.
		if player == "" || player == "Player" || team == "Tm" {
			continue
		}

		rec, err := parsePFRRow(tbl, i, player, team, year)
		if err != nil {
			return nil, fmt.Errorf("pfr %d row %d (%s): %w", year, i, player, err)
		}

		if _, dup := seen[rec.Key]; dup {
			return nil, dupErr(PFR, year, rec.Key)
		}
		seen[rec.Key] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}

func parsePFRRow(tbl *htmltable.Table, i int, player, team string, year int) (PFRRecord, error) {
	key, err := identity.NewKey(player, team)
	if err != nil {
		return PFRRecord{}, err
	}

	// PFR spells fill-in starters' position lowercase ("qb"); fold case so
	// the inclusion filter sees one vocabulary.
	pos, _ := tbl.Cell(i, "Pos")
	rec := PFRRecord{
		Key:      key,
		FullName: cleanFullName(player),
		Pos:      strings.ToUpper(strings.TrimSpace(pos)),
		Year:     year,
	}

	ints := map[string]**int64{
		"Age":   &rec.Age,
		"G":     &rec.Games,
		"GS":    &rec.GamesStarted,
		"Cmp":   &rec.Cmp,
		"Att":   &rec.Att,
		"Yds":   &rec.Yds,
		"TD":    &rec.TD,
		"Int":   &rec.Int,
		"Sk":    &rec.Sacks,
		"Yds.1": &rec.SackYds,
		"4QC":   &rec.FourthQtrComebacks,
		"GWD":   &rec.GameWinningDrives,
	}
	floats := map[string]**float64{
		"Cmp%":  &rec.CmpPct,
		"TD%":   &rec.TDPct,
		"Int%":  &rec.IntPct,
		"Y/A":   &rec.YdsPerAtt,
		"AY/A":  &rec.AdjYdsPerAtt,
		"Y/C":   &rec.YdsPerCmp,
		"Y/G":   &rec.YdsPerGame,
		"Rate":  &rec.Rating,
		"QBR":   &rec.QBR,
		"Sk%":   &rec.SackPct,
		"NY/A":  &rec.NetYdsPerAtt,
		"ANY/A": &rec.AdjNetYdsPerAtt,
	}

	for col, dst := range ints {
		if !tbl.HasColumn(col) {
			continue
		}
		cell, _ := tbl.Cell(i, col)
		v, err := clean.Int(cell)
		if err != nil {
			return PFRRecord{}, fmt.Errorf("column %s: %w", col, err)
		}
		*dst = v
	}
	for col, dst := range floats {
		if !tbl.HasColumn(col) {
			continue
		}
		cell, _ := tbl.Cell(i, col)
		v, err := clean.Float(cell)
		if err != nil {
			return PFRRecord{}, fmt.Errorf("column %s: %w", col, err)
		}
		*dst = v
	}

	// Non-quarterbacks who threw a pass have no W-L-T record.
	if qbrec, _ := tbl.Cell(i, "QBrec"); qbrec != "" {
		wins, err := clean.WinsFromRecord(qbrec)
		if err != nil {
			return PFRRecord{}, fmt.Errorf("column QBrec: %w", err)
		}
		rec.QBWins = &wins
	}

	return rec, nil
}

// cleanFullName strips the award annotations PFR appends to player names
// while keeping the presentable full-name form.
func cleanFullName(player string) string {
	out := make([]rune, 0, len(player))
	for _, r := range player {
		if r == '*' || r == '+' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
