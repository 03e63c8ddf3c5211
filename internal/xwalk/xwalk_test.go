package xwalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTeamNamesEmbedded(t *testing.T) {
	tn, err := LoadTeamNames("")
	require.NoError(t, err)

	team, err := tn.Team("Patriots")
	require.NoError(t, err)
	assert.Equal(t, "NE", team)

	// Case-insensitive lookup.
	team, err = tn.Team("patriots")
	require.NoError(t, err)
	assert.Equal(t, "NE", team)

	// Both Washington names map to the same code.
	team, err = tn.Team("Commanders")
	require.NoError(t, err)
	assert.Equal(t, "WAS", team)
}

func TestTeamFuzzyFallback(t *testing.T) {
	tn, err := LoadTeamNames("")
	require.NoError(t, err)

	// Minor spelling drift resolves to the closest mascot.
	team, err := tn.Team("Patroits")
	require.NoError(t, err)
	assert.Equal(t, "NE", team)

	// Something unrecognizable is an error, not a guess.
	_, err = tn.Team("Spaceships")
	require.Error(t, err)

	_, err = tn.Team("")
	require.Error(t, err)
}

func TestLoadTeamNamesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xwalk.csv")
	require.NoError(t, os.WriteFile(path, []byte("mascot,team\nOilers,TEN\n"), 0o644))

	tn, err := LoadTeamNames(path)
	require.NoError(t, err)

	team, err := tn.Team("Oilers")
	require.NoError(t, err)
	assert.Equal(t, "TEN", team)
}

func TestLoadDesignations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esf.csv")
	csv := "player,elite,system,fraud\nTom Brady,1,0,0\nAlex Smith,0,1,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	d, err := LoadDesignations(path)
	require.NoError(t, err)
	require.Len(t, d, 2)

	brady, ok := d["T. BRADY"]
	require.True(t, ok, "names are canonicalized on load")
	require.NotNil(t, brady.Elite)
	assert.Equal(t, 1.0, *brady.Elite)

	smith := d["A. SMITH"]
	require.NotNil(t, smith.System)
	assert.Equal(t, 1.0, *smith.System)
	assert.Nil(t, smith.Fraud, "empty cell stays nil")
}

func TestLoadDesignationsMissingFile(t *testing.T) {
	_, err := LoadDesignations(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
