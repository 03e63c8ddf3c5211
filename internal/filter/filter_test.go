package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPredicate(t *testing.T) {
	p, err := Compile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultExpr, p.Expr())

	ok, err := p.Include(Env{Player: "T. BRADY", Pos: "QB"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Include(Env{Player: "J. EDELMAN", Pos: "WR"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMinimumStartsPredicate(t *testing.T) {
	p, err := Compile(`pos == "QB" and games_started >= 8`)
	require.NoError(t, err)

	ok, err := p.Include(Env{Pos: "QB", GamesStarted: 16})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Include(Env{Pos: "QB", GamesStarted: 3})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttemptThresholdPredicate(t *testing.T) {
	p, err := Compile(`att >= 100 or games_started >= 4`)
	require.NoError(t, err)

	ok, err := p.Include(Env{Att: 150})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Include(Env{Att: 20, GamesStarted: 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompileError(t *testing.T) {
	_, err := Compile(`pos ==`)
	require.Error(t, err)

	// Names outside the record environment fail statically too.
	_, err = Compile(`dvoa > 0`)
	require.Error(t, err)
}

func TestEvaluationError(t *testing.T) {
	// Errors at evaluation time name the offending player.
	p, err := Compile(`att // games > 20`)
	require.NoError(t, err)

	_, err = p.Include(Env{Player: "T. BRADY", Att: 100, Games: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "T. BRADY")
}
