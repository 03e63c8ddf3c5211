// Package htmltable extracts stat tables from scraped HTML pages into a
// generic string table, before any per-source typing or cleaning happens.
package htmltable

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is one HTML table flattened to a header row plus string cells.
// Cell values are exactly as presented by the source.
type Table struct {
	Header []string
	Rows   [][]string

	cols map[string]int
}

// Extract parses HTML from r and returns the table matched by selector.
// With an empty selector it falls back to the table with the most rows,
// which is the stat table on every page this pipeline scrapes.
func Extract(r io.Reader, selector string) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var sel *goquery.Selection
	if selector != "" {
		sel = doc.Find(selector).First()
		if sel.Length() == 0 {
			return nil, fmt.Errorf("no table matches selector %q", selector)
		}
	} else {
		best := -1
		doc.Find("table").Each(func(_ int, t *goquery.Selection) {
			if n := t.Find("tr").Length(); n > best {
				best = n
				sel = t
			}
		})
		if sel == nil {
			return nil, fmt.Errorf("page contains no tables")
		}
	}

	return fromSelection(sel)
}

func fromSelection(table *goquery.Selection) (*Table, error) {
	var header []string
	var rows [][]string

	// Multi-row <thead> groups span categories above the real column names;
	// the last header row is the one with the per-column labels.
	table.Find("thead tr").Each(func(_ int, tr *goquery.Selection) {
		var h []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			h = append(h, strings.TrimSpace(cell.Text()))
		})
		if len(h) > 0 {
			header = h
		}
	})

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	// Tables without thead/tbody markup: first row is the header.
	if header == nil {
		table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				header = append(header, strings.TrimSpace(cell.Text()))
			})
			return false
		})
		table.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}
			var row []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	return New(header, rows), nil
}

// New builds a Table from a header and rows, disambiguating repeated column
// names the way the sources' CSV exports do: the second "Yds" becomes
// "Yds.1", the third "Yds.2", and so on.
func New(header []string, rows [][]string) *Table {
	seen := make(map[string]int, len(header))
	named := make([]string, len(header))
	for i, name := range header {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			named[i] = name
		} else {
			named[i] = fmt.Sprintf("%s.%d", name, n)
		}
	}

	cols := make(map[string]int, len(named))
	for i, name := range named {
		cols[name] = i
	}

	return &Table{Header: named, Rows: rows, cols: cols}
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Cell returns the named column's value in the given row. Rows shorter than
// the header (trailing empty cells dropped by the source) yield "".
func (t *Table) Cell(row int, name string) (string, error) {
	i, ok := t.cols[name]
	if !ok {
		return "", fmt.Errorf("table has no column %q", name)
	}
	cells := t.Rows[row]
	if i >= len(cells) {
		return "", nil
	}
	return cells[i], nil
}

// Promote makes the first data row the header row. Some Football Outsiders
// seasons ship the column names as the first <tbody> row under a decorative
// header.
func (t *Table) Promote() (*Table, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("cannot promote header of empty table")
	}
	return New(t.Rows[0], t.Rows[1:]), nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
