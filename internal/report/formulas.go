package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/ballistics/internal/physics"
	"github.com/san-kum/ballistics/internal/sim"
)

// FormulaTable lists the vacuum closed-form quantities per projectile.
func FormulaTable(projectiles []sim.Projectile, angle, gravity float64) string {
	rows := make([][]string, 0, len(projectiles))
	for _, p := range projectiles {
		v := p.MuzzleVelocity
		rows = append(rows, []string{
			p.Name,
			Metric(v),
			Metric(physics.MaxHeight(v, angle, gravity)),
			Metric(physics.ApexTime(v, angle, gravity)),
			Metric(physics.TimeOfFlight(v, angle, gravity)),
			Metric(physics.RangeFlight(v, angle, gravity)),
			Metric(physics.RangeLevel(v, angle, gravity)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers("projectile", "v0", "max height", "apex t", "flight t", "range (tof)", "range (level)").
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return CellStyle
		})

	title := TitleStyle.Render(fmt.Sprintf("closed form at %s°, g = %s", Metric(sim.Degrees(angle)), Metric(gravity)))
	return title + "\n" + t.Render()
}
