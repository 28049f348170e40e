package tracking

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/utils"
)

const nameWidth = 22

type TrackCmd struct {
	Days int  `short:"n" help:"Number of days to show, ending today." default:"14"`
	All  bool `short:"a" help:"Show every day of every habit's range."`
}

func (c *TrackCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	habits, ix, err := ctx.Tracking(u.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits to track yet.")
		return nil
	}

	today := ctx.Today()
	grid := tracker.Grid(habits, ix, today)

	visible := tracker.NewWindow(utils.AddDays(today, -(max(c.Days, 1) - 1)), today)
	var cols []int
	for i, d := range grid.Days {
		if c.All || visible.Contains(d) {
			cols = append(cols, i)
		}
	}

	name := lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth)
	var b strings.Builder
	b.WriteString(name.Render(""))
	for _, i := range cols {
		fmt.Fprintf(&b, "%3s", grid.Days[i].Format("02"))
	}
	b.WriteString("\n")

	for _, row := range grid.Rows {
		b.WriteString(name.Render(row.Habit.Icon + " " + row.Habit.Name))
		for _, i := range cols {
			cell := row.Cells[i]
			fmt.Fprintf(&b, "  %s", cli.CellGlyph(cell.State, cell.Completed))
		}
		fmt.Fprintf(&b, "  %d/%d %3d%%\n", row.Completed, row.Habit.GoalDays, row.Percentage)
	}
	ctx.Printf("%s", b.String())
	ctx.Println()
	ctx.Println("✓ done  ✗ missed  ○ today  · upcoming")
	return nil
}
