package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbrankings/internal/htmltable"
)

var pfrHeader = []string{
	"Rk", "Player", "Tm", "Age", "Pos", "G", "GS", "QBrec",
	"Cmp", "Att", "Cmp%", "Yds", "TD", "TD%", "Int", "Int%",
	"Y/A", "AY/A", "Y/C", "Y/G", "Rate", "QBR",
	"Sk", "Yds", "Sk%", "NY/A", "ANY/A", "4QC", "GWD",
}

func pfrRow(player, team, pos, qbrec string) []string {
	return []string{
		"1", player, team, "38", pos, "16", "16", qbrec,
		"402", "624", "64.4", "4770", "28", "4.5", "2", "0.3",
		"7.6", "8.1", "11.9", "298.1", "102.2", "69.6",
		"27", "173", "4.1", "7.1", "7.5", "2", "3",
	}
}

func TestParsePFR(t *testing.T) {
	tbl := htmltable.New(pfrHeader, [][]string{
		pfrRow("Tom Brady*", "NWE", "QB", "11-5-0"),
		// Interior header row, repeated on long tables.
		pfrHeader,
		pfrRow("Drew Brees", "NOR", "QB", "7-9-0"),
	})

	recs, err := ParsePFR(tbl, 2015)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	brady := recs[0]
	assert.Equal(t, "T. BRADY|NE", brady.Key.String())
	assert.Equal(t, "Tom Brady", brady.FullName)
	assert.Equal(t, "QB", brady.Pos)
	assert.Equal(t, 2015, brady.Year)

	require.NotNil(t, brady.QBWins)
	assert.Equal(t, 11.0, *brady.QBWins)
	require.NotNil(t, brady.Cmp)
	assert.Equal(t, int64(402), *brady.Cmp)
	require.NotNil(t, brady.CmpPct)
	assert.Equal(t, 64.4, *brady.CmpPct)
	require.NotNil(t, brady.SackYds)
	assert.Equal(t, int64(173), *brady.SackYds, "second Yds column is sack yardage")

	assert.Equal(t, "D. BREES|NO", recs[1].Key.String())
}

func TestParsePFRNonQBRow(t *testing.T) {
	// A wide receiver with a trick-play attempt has no W-L-T record and
	// mostly empty cells; the row still normalizes with nil stats.
	row := []string{
		"2", "Julian Edelman", "NWE", "29", "WR", "16", "0", "",
		"1", "1", "100.0", "36", "1", "100.0", "0", "0.0",
		"36.0", "56.0", "36.0", "2.3", "158.3", "",
		"0", "0", "0.0", "36.0", "56.0", "", "",
	}
	tbl := htmltable.New(pfrHeader, [][]string{row})

	recs, err := ParsePFR(tbl, 2015)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "WR", rec.Pos)
	assert.Nil(t, rec.QBWins)
	assert.Nil(t, rec.QBR)
	assert.Nil(t, rec.FourthQtrComebacks)
	assert.NotEmpty(t, rec.Key.Player, "identity is never empty")
}

func TestParsePFRDuplicateKey(t *testing.T) {
	tbl := htmltable.New(pfrHeader, [][]string{
		pfrRow("Tom Brady", "NWE", "QB", "11-5-0"),
		pfrRow("tom brady", "NE", "QB", "3-1-0"),
	})

	_, err := ParsePFR(tbl, 2015)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Contains(t, err.Error(), "T. BRADY|NE")
}

func TestParsePFRColumnLayout(t *testing.T) {
	tbl := htmltable.New([]string{"Player", "Tm"}, nil)
	_, err := ParsePFR(tbl, 2015)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnLayout))
	assert.Contains(t, err.Error(), "pfr 2015")
}

func TestParsePFRBadRecord(t *testing.T) {
	tbl := htmltable.New(pfrHeader, [][]string{
		pfrRow("Tom Brady", "NWE", "QB", "19-5-0"),
	})
	_, err := ParsePFR(tbl, 2015)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QBrec")
}
