// Package season defines the final analytic record, one row per player
// identity per season, and its CSV codec. The CSV output is deterministic:
// fixed column order, rows sorted by season then player, values formatted
// so a read-back reproduces them exactly.
package season

import (
	"strconv"

	"qbrankings/internal/identity"
)

// Record is one player-season of the merged analytic table. Identity
// fields are always present; every stat is nullable because each source
// may lack coverage for a key the base source has.
type Record struct {
	Player   string
	FullName string
	Team     string
	Year     int

	// Pro Football Reference.
	Age                *int64
	Games              *int64
	GamesStarted       *int64
	QBWins             *float64
	Att                *int64
	Cmp                *int64
	CmpPct             *float64
	Yds                *int64
	YdsPerGame         *float64
	YdsPerAtt          *float64
	YdsPerCmp          *float64
	Sacks              *int64
	SackYds            *int64
	SackPct            *float64
	AdjYdsPerAtt       *float64
	NetYdsPerAtt       *float64
	AdjNetYdsPerAtt    *float64
	TD                 *int64
	TDPct              *float64
	Int                *int64
	IntPct             *float64
	FourthQtrComebacks *int64
	GameWinningDrives  *int64
	QBRating           *float64
	QBR                *float64

	// Football Outsiders.
	DPICount *int64
	DPIYards *int64
	DYAR     *int64
	YAR      *int64
	DVOA     *float64
	VOA      *float64
	EfctvYds *int64

	// Over the Cap.
	SalaryCapValue *int64

	// Designation crosswalk.
	Elite  *float64
	System *float64
	Fraud  *float64
}

// Key returns the record's join identity.
func (r *Record) Key() identity.Key {
	return identity.Key{Player: r.Player, Team: r.Team}
}

// Header is the documented column order of the analytic CSV and the
// relational table. Do not reorder: downstream consumers key on it.
var Header = []string{
	"player",
	"player_full_name",
	"team",
	"year",
	"age",
	"games",
	"games_started",
	"qb_wins",
	"att",
	"cmp",
	"cmp_pct",
	"yds",
	"yds_per_game",
	"yds_per_att",
	"yds_per_cmp",
	"sacks",
	"sack_yds",
	"sack_pct",
	"dpi_count",
	"dpi_yards",
	"adj_yds_per_att",
	"net_yds_per_att",
	"adj_net_yds_per_att",
	"td",
	"td_pct",
	"int",
	"int_pct",
	"fourth_qtr_comebacks",
	"game_winning_drives",
	"qb_rating",
	"qbr",
	"dyar",
	"yar",
	"dvoa",
	"voa",
	"efctv_yds",
	"salary_cap_value",
	"elite",
	"system",
	"fraud",
}

// fields returns the record's values in Header order as CSV cells.
// Nil stats serialize as empty cells, never as zeros.
func (r *Record) fields() []string {
	return []string{
		r.Player,
		r.FullName,
		r.Team,
		strconv.Itoa(r.Year),
		fmtInt(r.Age),
		fmtInt(r.Games),
		fmtInt(r.GamesStarted),
		fmtFloat(r.QBWins),
		fmtInt(r.Att),
		fmtInt(r.Cmp),
		fmtFloat(r.CmpPct),
		fmtInt(r.Yds),
		fmtFloat(r.YdsPerGame),
		fmtFloat(r.YdsPerAtt),
		fmtFloat(r.YdsPerCmp),
		fmtInt(r.Sacks),
		fmtInt(r.SackYds),
		fmtFloat(r.SackPct),
		fmtInt(r.DPICount),
		fmtInt(r.DPIYards),
		fmtFloat(r.AdjYdsPerAtt),
		fmtFloat(r.NetYdsPerAtt),
		fmtFloat(r.AdjNetYdsPerAtt),
		fmtInt(r.TD),
		fmtFloat(r.TDPct),
		fmtInt(r.Int),
		fmtFloat(r.IntPct),
		fmtInt(r.FourthQtrComebacks),
		fmtInt(r.GameWinningDrives),
		fmtFloat(r.QBRating),
		fmtFloat(r.QBR),
		fmtInt(r.DYAR),
		fmtInt(r.YAR),
		fmtFloat(r.DVOA),
		fmtFloat(r.VOA),
		fmtInt(r.EfctvYds),
		fmtInt(r.SalaryCapValue),
		fmtFloat(r.Elite),
		fmtFloat(r.System),
		fmtFloat(r.Fraud),
	}
}

// Values returns the record in Header order as driver-level values for a
// relational insert. Nil stats stay nil and load as SQL NULL.
func (r *Record) Values() []any {
	return []any{
		r.Player,
		r.FullName,
		r.Team,
		r.Year,
		r.Age,
		r.Games,
		r.GamesStarted,
		r.QBWins,
		r.Att,
		r.Cmp,
		r.CmpPct,
		r.Yds,
		r.YdsPerGame,
		r.YdsPerAtt,
		r.YdsPerCmp,
		r.Sacks,
		r.SackYds,
		r.SackPct,
		r.DPICount,
		r.DPIYards,
		r.AdjYdsPerAtt,
		r.NetYdsPerAtt,
		r.AdjNetYdsPerAtt,
		r.TD,
		r.TDPct,
		r.Int,
		r.IntPct,
		r.FourthQtrComebacks,
		r.GameWinningDrives,
		r.QBRating,
		r.QBR,
		r.DYAR,
		r.YAR,
		r.DVOA,
		r.VOA,
		r.EfctvYds,
		r.SalaryCapValue,
		r.Elite,
		r.System,
		r.Fraud,
	}
}

func fmtInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// fmtFloat uses the shortest representation that round-trips exactly.
func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
