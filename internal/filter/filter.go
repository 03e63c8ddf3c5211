// Package filter evaluates the configurable inclusion predicate that
// decides which player-seasons qualify for the final table. The predicate
// is a Starlark expression over the base source's fields, so the policy
// (minimum starts, primary starters only, everyone) lives in configuration
// instead of code.
package filter

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// DefaultExpr keeps the original pipeline's behavior: starting quarterbacks
// only, as designated by the position column.
const DefaultExpr = `pos == "QB"`

// Env is the per-record environment the expression sees. Numeric fields
// from empty cells evaluate as 0 inside the predicate.
type Env struct {
	Player       string
	Team         string
	Year         int
	Pos          string
	Games        int64
	GamesStarted int64
	Att          int64
	Cmp          int64
}

// envParams must match the Env fields exposed to the expression.
const envParams = "player, team, year, pos, games, games_started, att, cmp"

// Predicate is a compiled inclusion filter. Compile once per run; Include
// is then cheap per record.
type Predicate struct {
	expr string
	fn   starlark.Callable
}

// Compile wraps the expression in a Starlark function and compiles it.
// An empty expression compiles DefaultExpr.
func Compile(expr string) (*Predicate, error) {
	if expr == "" {
		expr = DefaultExpr
	}

	src := fmt.Sprintf("def include(%s):\n    return (%s)\n", envParams, expr)
	thread := &starlark.Thread{Name: "filter"}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, "filter.star", src, nil)
	if err != nil {
		return nil, fmt.Errorf("compile filter expression %q: %w", expr, err)
	}

	fn, ok := globals["include"].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("compile filter expression %q: no callable produced", expr)
	}
	return &Predicate{expr: expr, fn: fn}, nil
}

// Expr returns the source expression, for logging.
func (p *Predicate) Expr() string {
	return p.expr
}

// Include evaluates the predicate against one record's environment.
func (p *Predicate) Include(env Env) (bool, error) {
	thread := &starlark.Thread{Name: "filter"}
	args := starlark.Tuple{
		starlark.String(env.Player),
		starlark.String(env.Team),
		starlark.MakeInt(env.Year),
		starlark.String(env.Pos),
		starlark.MakeInt64(env.Games),
		starlark.MakeInt64(env.GamesStarted),
		starlark.MakeInt64(env.Att),
		starlark.MakeInt64(env.Cmp),
	}
	v, err := starlark.Call(thread, p.fn, args, nil)
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q for %s: %w", p.expr, env.Player, err)
	}
	return bool(v.Truth()), nil
}
