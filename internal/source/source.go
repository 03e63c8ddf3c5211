// Package source parses one season of one provider's scraped stat table
// into typed, normalized records. Each provider gets its own parser because
// the column vocabularies, name formats, and encodings differ; the merger
// joins the results on the canonical identity key.
package source

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey reports two rows with the same player identity inside a
// single source's table for one season. This is a data problem to surface,
// never to silently dedup.
var ErrDuplicateKey = errors.New("duplicate player identity within source")

// ErrColumnLayout reports a table whose columns do not match what the
// parser expects, usually because the source changed its page shape.
var ErrColumnLayout = errors.New("unexpected column layout")

// Descriptor names a source and locates its data: the page URL for a given
// season and the staging file the downloader writes it to.
type Descriptor struct {
	// Name is the short source identifier used in logs and filenames.
	Name string
	// URLTemplate is the page URL with a single %d verb for the year.
	URLTemplate string
	// TableSelector is the CSS selector of the stat table on the page.
	// Empty means "largest table on the page".
	TableSelector string
}

var (
	// PFR is Pro Football Reference's season passing table.
	PFR = Descriptor{
		Name:          "pfr",
		URLTemplate:   "https://www.pro-football-reference.com/years/%d/passing.htm",
		TableSelector: "table#passing",
	}

	// FO is Football Outsiders' QB efficiency table (DYAR/DVOA).
	FO = Descriptor{
		Name:        "fo",
		URLTemplate: "https://www.footballoutsiders.com/stats/qb%d",
	}

	// OTC is Over the Cap's quarterback salary table.
	OTC = Descriptor{
		Name:        "otc",
		URLTemplate: "https://overthecap.com/position/quarterback/%d/",
	}
)

// All lists every source in pipeline order.
var All = []Descriptor{PFR, FO, OTC}

// URL returns the page URL for one season.
func (d Descriptor) URL(year int) string {
	return fmt.Sprintf(d.URLTemplate, year)
}

// RawFile returns the staging filename for one season.
func (d Descriptor) RawFile(year int) string {
	return fmt.Sprintf("qb_%s_%d.html", d.Name, year)
}

// layoutErr wraps ErrColumnLayout with the offending source and season.
func layoutErr(d Descriptor, year int, missing string) error {
	return fmt.Errorf("%s %d: %w: missing column %q", d.Name, year, ErrColumnLayout, missing)
}

// dupErr wraps ErrDuplicateKey with the offending source, season, and key.
func dupErr(d Descriptor, year int, key fmt.Stringer) error {
	return fmt.Errorf("%s %d: %w: %s", d.Name, year, ErrDuplicateKey, key)
}
