// Package clean provides cell-level coercion for scraped stat tables.
//
// Source sites present numbers as text with annotation characters (trailing
// "*" or "+" on award winners, "%" suffixes, "$" and thousands separators on
// salaries). These helpers strip that noise and convert to typed values.
// Empty or missing cells always map to nil, never to zero.
package clean

import (
	"fmt"
	"strconv"
	"strings"
)

// maxSeasonGames bounds the total games encoded in a won-loss-tied record.
// The regular season has been 17 games since 2021.
const maxSeasonGames = 17

// stripAnnotations removes characters that sources append to numeric cells
// without changing the underlying value.
func stripAnnotations(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '*', '+', ',', '$':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// Int converts a numeric-looking cell to an int64.
// Empty cells return (nil, nil).
func Int(s string) (*int64, error) {
	cleaned := stripAnnotations(s)
	if cleaned == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		// Some sources render integer columns as "12.0".
		f, ferr := strconv.ParseFloat(cleaned, 64)
		if ferr != nil || f != float64(int64(f)) {
			return nil, fmt.Errorf("cannot parse %q as integer", s)
		}
		v = int64(f)
	}
	return &v, nil
}

// Float converts a numeric-looking cell to a float64.
// Empty cells return (nil, nil).
func Float(s string) (*float64, error) {
	cleaned := stripAnnotations(s)
	if cleaned == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as float", s)
	}
	return &v, nil
}

// Percent converts a percentage cell such as "12.3%" to the fraction 0.123.
// A cell without the "%" suffix is still treated as a percentage value.
// Empty cells return (nil, nil).
func Percent(s string) (*float64, error) {
	cleaned := stripAnnotations(s)
	if cleaned == "" {
		return nil, nil
	}
	cleaned = strings.TrimSuffix(cleaned, "%")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as percentage", s)
	}
	v /= 100
	return &v, nil
}

// WinsFromRecord converts a "W-L-T" record string into a win count, with
// ties worth half a win. The combined game count must land in [1, 17] or
// the record is considered malformed.
func WinsFromRecord(record string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(record), "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("record %q does not have three components", record)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("record %q has non-numeric component %q", record, p)
		}
		vals[i] = v
	}
	wins := vals[0] + vals[2]*0.5
	total := vals[0] + vals[1] + vals[2]
	if total < 1 || total > maxSeasonGames {
		return 0, fmt.Errorf("record %q spans %.0f games, outside [1, %d]", record, total, maxSeasonGames)
	}
	return wins, nil
}

// SplitPair splits a combined cell such as "26/384" into its two components.
func SplitPair(s, sep string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(s), sep, 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("cell %q is not a %q-separated pair", s, sep)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
