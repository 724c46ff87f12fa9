package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballistics/internal/analysis"
	"github.com/san-kum/ballistics/internal/sim"
)

// HeightPlot charts height against sample index for a successful result.
// The horizontal axis is resampled to width columns.
func HeightPlot(res sim.Result, verticalAxis, width, height int) string {
	if !res.OK() || res.Trajectory.Len() < 2 {
		return ""
	}
	traj := res.Trajectory
	hs := make([]float64, traj.Len())
	for i := range hs {
		hs[i] = traj.Position(i, verticalAxis)
	}

	return asciigraph.Plot(hs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%s at %s°: height (m) over %s s",
			res.Projectile.Name, Metric(sim.Degrees(res.Angle)), Metric(traj.Times[traj.Len()-1]))),
	)
}

// HeightPlots charts several results on one canvas, one series each.
func HeightPlots(results []sim.Result, verticalAxis, width, height int) string {
	var series [][]float64
	for _, res := range results {
		if !res.OK() || res.Trajectory.Len() < 2 {
			continue
		}
		hs := make([]float64, res.Trajectory.Len())
		for i := range hs {
			hs[i] = res.Trajectory.Position(i, verticalAxis)
		}
		series = append(series, hs)
	}
	if len(series) == 0 {
		return ""
	}

	colors := []asciigraph.AnsiColor{
		asciigraph.Red, asciigraph.Green, asciigraph.Yellow,
		asciigraph.Blue, asciigraph.Magenta, asciigraph.Cyan,
	}
	if len(series) < len(colors) {
		colors = colors[:len(series)]
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("height (m) over time"),
	)
}

// PathPlot draws height against horizontal range with the target line.
func PathPlot(res sim.Result, verticalAxis, width, height int, targetHeight float64) string {
	if !res.OK() {
		return ""
	}
	return analysis.PathToASCII(analysis.Path(res.Trajectory, verticalAxis), width, height, targetHeight)
}

// SweepPlot charts observed range against launch angle, one series per
// projectile. results must be in projectile-major order as returned by
// sim.Runner.Sweep with perProjectile angles each. Undefined ranges are
// left as gaps.
func SweepPlot(results []sim.Result, perProjectile, width, height int) string {
	if perProjectile < 2 || len(results) < perProjectile {
		return ""
	}
	var series [][]float64
	for start := 0; start+perProjectile <= len(results); start += perProjectile {
		rs := make([]float64, perProjectile)
		for i := range rs {
			rs[i] = results[start+i].Metrics.Observed.Range
		}
		series = append(series, rs)
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("range (m) over launch angle %s° to %s°",
			Metric(sim.Degrees(results[0].Angle)), Metric(sim.Degrees(results[perProjectile-1].Angle)))),
	)
}
