package analysis

import (
	"math"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// Intersects reports whether the vertical coordinate crosses or touches
// targetHeight between two consecutive samples. Horizontal position is
// ignored. Trajectories with fewer than two samples never intersect.
func Intersects(traj *dynamo.Trajectory, targetHeight float64, verticalAxis int) bool {
	if traj.Len() < 2 {
		return false
	}
	prev := traj.Position(0, verticalAxis) - targetHeight
	for i := 1; i < traj.Len(); i++ {
		curr := traj.Position(i, verticalAxis) - targetHeight
		if prev*curr <= 0 {
			return true
		}
		prev = curr
	}
	return false
}

// Crossings returns the times at which the vertical coordinate passes
// through targetHeight, linearly interpolated between samples. A sample
// lying exactly on the height is reported once.
func Crossings(traj *dynamo.Trajectory, targetHeight float64, verticalAxis int) []float64 {
	var times []float64
	if traj.Len() < 2 {
		return times
	}

	prev := traj.Position(0, verticalAxis) - targetHeight
	if prev == 0 {
		times = append(times, traj.Times[0])
	}
	for i := 1; i < traj.Len(); i++ {
		curr := traj.Position(i, verticalAxis) - targetHeight
		switch {
		case curr == 0:
			times = append(times, traj.Times[i])
		case prev != 0 && prev*curr < 0:
			frac := prev / (prev - curr)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			times = append(times, traj.Times[i-1]+frac*(traj.Times[i]-traj.Times[i-1]))
		}
		prev = curr
	}
	return times
}
