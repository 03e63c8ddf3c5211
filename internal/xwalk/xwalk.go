// Package xwalk loads the external crosswalk files the merge step depends
// on: the team-name crosswalk that maps Over the Cap's mascot names to team
// codes, and the optional elite/system/fraud designation file.
package xwalk

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antzucaro/matchr"

	"qbrankings/internal/clean"
	"qbrankings/internal/identity"
)

//go:embed team_name_xwalk.csv
var defaultTeamXwalk embed.FS

// fuzzyThreshold is the minimum Jaro-Winkler similarity for accepting a
// mascot that has no exact crosswalk row. Below it we refuse to guess.
const fuzzyThreshold = 0.9

// TeamNames maps mascot names ("Patriots") to canonical team codes ("NE").
type TeamNames struct {
	byMascot map[string]string
}

// LoadTeamNames reads a mascot crosswalk CSV with a "mascot,team" header.
// An empty path loads the embedded default table.
func LoadTeamNames(path string) (*TeamNames, error) {
	var r io.ReadCloser
	var err error
	if path == "" {
		r, err = defaultTeamXwalk.Open("team_name_xwalk.csv")
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open team name crosswalk: %w", err)
	}
	defer r.Close()

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read team name crosswalk: %w", err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, fmt.Errorf("team name crosswalk is empty or malformed")
	}

	byMascot := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		mascot := strings.ToLower(strings.TrimSpace(rec[0]))
		byMascot[mascot] = identity.CanonicalTeam(rec[1])
	}
	return &TeamNames{byMascot: byMascot}, nil
}

// Team resolves a mascot name to a team code. Mascots without an exact row
// fall back to the closest Jaro-Winkler match above fuzzyThreshold, which
// absorbs minor spelling drift on the source pages without guessing wildly.
func (t *TeamNames) Team(mascot string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(mascot))
	if needle == "" {
		return "", fmt.Errorf("empty mascot name")
	}
	if team, ok := t.byMascot[needle]; ok {
		return team, nil
	}

	var bestMascot string
	var bestScore float64
	for known := range t.byMascot {
		score := matchr.JaroWinkler(needle, known, false)
		if score > bestScore {
			bestScore = score
			bestMascot = known
		}
	}
	if bestScore >= fuzzyThreshold {
		return t.byMascot[bestMascot], nil
	}
	return "", fmt.Errorf("mascot %q not in team name crosswalk (closest %q at %.2f)", mascot, bestMascot, bestScore)
}

// Designation is one row of the elite/system/fraud crosswalk: a hand-curated
// label set keyed on player name only, merged onto every season of that
// player.
type Designation struct {
	Elite  *float64
	System *float64
	Fraud  *float64
}

// Designations maps canonical player names to their designation row.
type Designations map[string]Designation

// LoadDesignations reads the elite/system/fraud CSV. The file carries a
// "player,elite,system,fraud" header; player names are in full-name form
// and are canonicalized here for the merge.
func LoadDesignations(path string) (Designations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open designation crosswalk: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read designation crosswalk: %w", err)
	}
	if len(records) < 1 || len(records[0]) < 4 {
		return nil, fmt.Errorf("designation crosswalk is empty or malformed")
	}

	out := make(Designations, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 4 {
			return nil, fmt.Errorf("designation crosswalk row %d has %d fields, want 4", i+2, len(rec))
		}
		name, err := identity.CanonicalName(rec[0])
		if err != nil {
			return nil, fmt.Errorf("designation crosswalk row %d: %w", i+2, err)
		}
		var d Designation
		if d.Elite, err = clean.Float(rec[1]); err != nil {
			return nil, fmt.Errorf("designation crosswalk row %d elite: %w", i+2, err)
		}
		if d.System, err = clean.Float(rec[2]); err != nil {
			return nil, fmt.Errorf("designation crosswalk row %d system: %w", i+2, err)
		}
		if d.Fraud, err = clean.Float(rec[3]); err != nil {
			return nil, fmt.Errorf("designation crosswalk row %d fraud: %w", i+2, err)
		}
		out[name] = d
	}
	return out, nil
}
