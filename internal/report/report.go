// Package report renders simulation results for terminals and files.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/ballistics/internal/sim"
	"github.com/san-kum/ballistics/internal/telemetry"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// Write renders results in format.
func Write(w io.Writer, format Format, results []sim.Result, target sim.Target) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatJSON:
		return WriteJSON(w, results, target)
	default:
		_, err := fmt.Fprintln(w, Table(results, target))
		return err
	}
}

var headers = []string{"projectile", "angle", "max height (cf)", "max distance (cf)", "apex", "range", "impact", "energy lost", "target"}

// Table renders one row per result. Undefined values print as N/A.
func Table(results []sim.Result, target sim.Target) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, row(res))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			if c == len(headers)-1 && r >= 0 && r < len(results) {
				switch {
				case !results[r].OK():
					return FailedStyle.Padding(0, 1)
				case results[r].Metrics.Injured:
					return InjuredStyle.Padding(0, 1)
				}
			}
			return CellStyle
		})

	title := TitleStyle.Render(fmt.Sprintf("target height %s m at %s m", Metric(target.Height), Metric(target.Distance)))
	return title + "\n" + t.Render()
}

func row(res sim.Result) []string {
	m := res.Metrics
	status := "miss"
	switch {
	case !res.OK():
		status = "error: " + res.Err.Error()
	case m.Injured:
		status = "INJURED"
	}
	return []string{
		res.Projectile.Name,
		Metric(sim.Degrees(res.Angle)) + "°",
		Metric(m.MaxHeightClosedForm),
		Metric(m.MaxDistanceClosedForm),
		Metric(m.Observed.ApexHeight),
		Metric(m.Observed.Range),
		Metric(m.Observed.ImpactTime),
		Percent(m.EnergyLoss),
		status,
	}
}

// Metric formats v with two decimals, or N/A when undefined.
func Metric(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(100*v, 'f', 1, 64) + "%"
}

// Telemetry renders gathered metric samples one per line.
func Telemetry(samples []telemetry.Sample) string {
	var sb strings.Builder
	for _, s := range samples {
		name := s.Name
		if len(s.Labels) > 0 {
			parts := make([]string, 0, len(s.Labels))
			for k, v := range s.Labels {
				parts = append(parts, k+"="+v)
			}
			sort.Strings(parts)
			name += "{" + strings.Join(parts, ",") + "}"
		}
		sb.WriteString(Subtle.Render(name))
		sb.WriteString(" ")
		sb.WriteString(strconv.FormatFloat(s.Value, 'g', 6, 64))
		sb.WriteString("\n")
	}
	return sb.String()
}
