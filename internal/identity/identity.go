// Package identity canonicalizes player names and team codes so rows from
// different sources can be joined. No shared numeric player ID exists across
// Pro Football Reference, Football Outsiders, and Over the Cap, so the join
// key is a canonical name/team composite.
package identity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.AmericanEnglish)

// teamAliases folds the sources' divergent team codes into one vocabulary.
// Pro Football Reference spells out three letters (NWE) where Football
// Outsiders abbreviates (NE), and relocated franchises keep their new code
// so a player's rows join across the move.
var teamAliases = map[string]string{
	// Pro Football Reference long forms.
	"NWE": "NE",
	"NOR": "NO",
	"GNB": "GB",
	"KAN": "KC",
	"SFO": "SF",
	"TAM": "TB",
	"JAC": "JAX",
	// Relocations.
	"STL": "LAR",
	"SDG": "LAC",
}

// Key identifies one player on one team. Its string form is the join key
// used by the merger and the output table, e.g. "J. SMITH|NE".
type Key struct {
	Player string
	Team   string
}

func (k Key) String() string {
	return k.Player + "|" + k.Team
}

// NewKey canonicalizes raw name and team strings into a Key.
func NewKey(rawName, rawTeam string) (Key, error) {
	player, err := CanonicalName(rawName)
	if err != nil {
		return Key{}, err
	}
	team := CanonicalTeam(rawTeam)
	if team == "" {
		return Key{}, fmt.Errorf("empty team for player %q", rawName)
	}
	return Key{Player: player, Team: team}, nil
}

// CanonicalName reduces a raw player name to the canonical
// "first initial, period, last name" form, uppercased with punctuation and
// annotation characters removed: "J. Smith", "j smith" and "J.Smith*" all
// become "J. SMITH".
//
// It is a pure, total function over non-empty names; an empty or
// all-punctuation name is an error, never an empty key.
func CanonicalName(raw string) (string, error) {
	// Periods become token breaks so the Football Outsiders "T.Brady" form
	// splits into initial and last name like everyone else's.
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.':
			return ' '
		case '*', '+', '\'':
			return -1
		}
		return r
	}, raw)

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return "", fmt.Errorf("player name %q is empty after cleaning", raw)
	}
	if len(tokens) == 1 {
		// Mononym rows (usually scraping artifacts); keep whole token.
		return upper.String(tokens[0]), nil
	}

	initial := string([]rune(tokens[0])[0])
	last := strings.Join(tokens[1:], " ")
	return upper.String(initial + ". " + last), nil
}

// CanonicalTeam uppercases a team code and folds source-specific spellings
// and relocated franchises into the canonical code.
func CanonicalTeam(raw string) string {
	team := strings.ToUpper(strings.TrimSpace(raw))
	if mapped, ok := teamAliases[team]; ok {
		return mapped
	}
	return team
}
