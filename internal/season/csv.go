package season

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// WriteCSV serializes records deterministically: the fixed Header, then
// rows ordered by season, player, team. The input slice is not mutated.
func WriteCSV(w io.Writer, recs []Record) error {
	ordered := make([]Record, len(recs))
	copy(ordered, recs)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := &ordered[i], &ordered[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		return a.Team < b.Team
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range ordered {
		if err := cw.Write(ordered[i].fields()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an analytic CSV produced by WriteCSV back into records
// with identical types and values.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}
	if len(rows[0]) != len(Header) {
		return nil, fmt.Errorf("csv has %d columns, want %d", len(rows[0]), len(Header))
	}
	for i, name := range Header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("csv column %d is %q, want %q", i, rows[0][i], name)
		}
	}

	recs := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec, err := fromFields(row)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", n+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func fromFields(row []string) (Record, error) {
	var rec Record
	var err error

	rec.Player = row[0]
	rec.FullName = row[1]
	rec.Team = row[2]
	if rec.Player == "" || rec.Team == "" {
		return Record{}, fmt.Errorf("empty player identity")
	}
	if rec.Year, err = strconv.Atoi(row[3]); err != nil {
		return Record{}, fmt.Errorf("year: %w", err)
	}

	ints := map[int]**int64{
		4: &rec.Age, 5: &rec.Games, 6: &rec.GamesStarted,
		8: &rec.Att, 9: &rec.Cmp, 11: &rec.Yds,
		15: &rec.Sacks, 16: &rec.SackYds,
		18: &rec.DPICount, 19: &rec.DPIYards,
		23: &rec.TD, 25: &rec.Int,
		27: &rec.FourthQtrComebacks, 28: &rec.GameWinningDrives,
		31: &rec.DYAR, 32: &rec.YAR,
		35: &rec.EfctvYds, 36: &rec.SalaryCapValue,
	}
	floats := map[int]**float64{
		7: &rec.QBWins, 10: &rec.CmpPct,
		12: &rec.YdsPerGame, 13: &rec.YdsPerAtt, 14: &rec.YdsPerCmp,
		17: &rec.SackPct,
		20: &rec.AdjYdsPerAtt, 21: &rec.NetYdsPerAtt, 22: &rec.AdjNetYdsPerAtt,
		24: &rec.TDPct, 26: &rec.IntPct,
		29: &rec.QBRating, 30: &rec.QBR,
		33: &rec.DVOA, 34: &rec.VOA,
		37: &rec.Elite, 38: &rec.System, 39: &rec.Fraud,
	}

	for i, dst := range ints {
		if row[i] == "" {
			continue
		}
		v, err := strconv.ParseInt(row[i], 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("column %s: %w", Header[i], err)
		}
		*dst = &v
	}
	for i, dst := range floats {
		if row[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return Record{}, fmt.Errorf("column %s: %w", Header[i], err)
		}
		*dst = &v
	}

	return rec, nil
}
