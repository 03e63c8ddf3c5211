package source

import (
	"fmt"

	"qbrankings/internal/clean"
	"qbrankings/internal/htmltable"
	"qbrankings/internal/identity"
	"qbrankings/internal/xwalk"
)

// OTCRecord is one normalized row of Over the Cap's quarterback salary
// table: the player's maximum salary cap value for the season on one team.
type OTCRecord struct {
	Key  identity.Key
	Year int

	SalaryCapValue int64
}

var otcRequired = []string{"Player", "Team", "Salary Cap Value"}

// ParseOTC normalizes one season of the Over the Cap table. The site names
// teams by mascot ("Patriots"), resolved to team codes through the
// crosswalk. A player carrying several contract rows on one team (signing
// plus restructure) collapses to the row with the highest cap value, so
// post-aggregation duplicates cannot occur by construction; the aggregation
// itself is the documented source semantic, not silent dedup.
func ParseOTC(tbl *htmltable.Table, year int, teams *xwalk.TeamNames) ([]OTCRecord, error) {
	for _, col := range otcRequired {
		if !tbl.HasColumn(col) {
			return nil, layoutErr(OTC, year, col)
		}
	}

	maxByKey := make(map[identity.Key]int64, tbl.Len())
	var order []identity.Key

	for i := 0; i < tbl.Len(); i++ {
		player, _ := tbl.Cell(i, "Player")
		if player == "" || player == "Player" {
			continue
		}
		mascot, _ := tbl.Cell(i, "Team")

		team, err := teams.Team(mascot)
		if err != nil {
			return nil, fmt.Errorf("otc %d row %d (%s): %w", year, i, player, err)
		}
		key, err := identity.NewKey(player, team)
		if err != nil {
			return nil, fmt.Errorf("otc %d row %d (%s): %w", year, i, player, err)
		}

		cell, _ := tbl.Cell(i, "Salary Cap Value")
		salary, err := clean.Int(cell)
		if err != nil {
			return nil, fmt.Errorf("otc %d row %d (%s): salary: %w", year, i, player, err)
		}
		if salary == nil {
			continue
		}

		if prev, ok := maxByKey[key]; !ok {
			maxByKey[key] = *salary
			order = append(order, key)
		} else if *salary > prev {
			maxByKey[key] = *salary
		}
	}

	out := make([]OTCRecord, 0, len(order))
	for _, key := range order {
		out = append(out, OTCRecord{Key: key, Year: year, SalaryCapValue: maxByKey[key]})
	}
	return out, nil
}
