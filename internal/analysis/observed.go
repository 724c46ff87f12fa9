package analysis

import (
	"math"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// Observed holds metrics measured on a sampled trajectory, drag included.
// Range and ImpactTime are NaN when the projectile has not come back down
// to launch height within the sampled span.
type Observed struct {
	ApexHeight  float64
	ApexTime    float64
	Range       float64
	ImpactTime  float64
	FinalHeight float64
	Landed      bool
}

// Observe measures apex and impact on traj. Launch height is the first
// sample's vertical coordinate; impact is the first descending return to
// it after the first sample, linearly interpolated.
func Observe(traj *dynamo.Trajectory, verticalAxis int) Observed {
	obs := Observed{
		ApexHeight:  math.NaN(),
		ApexTime:    math.NaN(),
		Range:       math.NaN(),
		ImpactTime:  math.NaN(),
		FinalHeight: math.NaN(),
	}
	n := traj.Len()
	if n == 0 {
		return obs
	}

	base := traj.Position(0, verticalAxis)
	obs.ApexHeight = base
	obs.ApexTime = traj.Times[0]
	obs.FinalHeight = traj.Position(n-1, verticalAxis)

	for i := 1; i < n; i++ {
		h := traj.Position(i, verticalAxis)
		if h > obs.ApexHeight {
			obs.ApexHeight = h
			obs.ApexTime = traj.Times[i]
		}
		if obs.Landed {
			continue
		}
		prev := traj.Position(i-1, verticalAxis)
		if prev > base && h <= base {
			frac := (prev - base) / (prev - h)
			obs.ImpactTime = traj.Times[i-1] + frac*(traj.Times[i]-traj.Times[i-1])
			obs.Range = lerp(horizontal(traj, i-1, verticalAxis), horizontal(traj, i, verticalAxis), frac)
			obs.Landed = true
		}
	}

	return obs
}

// horizontal is the distance from the launch point in the horizontal plane.
func horizontal(traj *dynamo.Trajectory, i, verticalAxis int) float64 {
	sum := 0.0
	for axis := 0; axis < traj.Dim; axis++ {
		if axis == verticalAxis {
			continue
		}
		d := traj.Position(i, axis) - traj.Position(0, axis)
		sum += d * d
	}
	return math.Sqrt(sum)
}

func lerp(a, b, frac float64) float64 {
	return a + frac*(b-a)
}
