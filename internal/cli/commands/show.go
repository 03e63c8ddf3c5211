package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"qbrankings/internal/season"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <csvfile>",
		Short: "Print an analytic CSV as a table",
		Long: `Render the headline columns of an analytic CSV for a quick eyeball check
of a build. Rows print in file order (season, then player).`,
		Example: `  qbrankings show qb_stats.csv
  qbrankings show qb_stats.csv --limit 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			recs, err := season.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{
				"Player", "Team", "Year", "G", "GS", "Wins",
				"Att", "Yds", "TD", "Int", "Rate", "DVOA", "Cap Value",
			})

			shown := 0
			for i := range recs {
				if limit > 0 && shown >= limit {
					break
				}
				r := &recs[i]
				t.AppendRow(table.Row{
					r.Player, r.Team, r.Year,
					cell(r.Games), cell(r.GamesStarted), cell(r.QBWins),
					cell(r.Att), cell(r.Yds), cell(r.TD), cell(r.Int),
					cell(r.QBRating), pct(r.DVOA), cell(r.SalaryCapValue),
				})
				shown++
			}
			t.Render()

			if shown < len(recs) {
				fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d rows)\n", shown, len(recs))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows to print (0 for all)")

	return cmd
}

// cell renders a nullable stat, with missing values as a dash.
func cell[T int64 | float64](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *v)
}

// pct renders a stored fraction back in percent form.
func pct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
