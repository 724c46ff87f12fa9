package physics

import (
	"fmt"
	"math"
)

// RangeMethod selects the drag-free range formula. The two agree for
// launch and landing at equal height; a run uses exactly one.
type RangeMethod string

const (
	// RangeTimeOfFlight is v·cosθ·T with T = 2v·sinθ/g.
	RangeTimeOfFlight RangeMethod = "time_of_flight"
	// RangeLevelGround is v²·sin2θ/g.
	RangeLevelGround RangeMethod = "level_ground"
)

func ParseRangeMethod(s string) (RangeMethod, error) {
	switch RangeMethod(s) {
	case RangeTimeOfFlight, "":
		return RangeTimeOfFlight, nil
	case RangeLevelGround:
		return RangeLevelGround, nil
	}
	return "", fmt.Errorf("unknown range method: %s", s)
}

// cosine below which a launch has no horizontal reach
const verticalEps = 1e-12

// ClosedForm returns the drag-free apex height and range for speed v at
// angle theta. Either value is NaN when it is undefined for the inputs:
// non-finite arguments, a downward launch, or no forward horizontal motion
// for the range.
func ClosedForm(v, theta, g float64, method RangeMethod) (maxHeight, maxDistance float64) {
	maxHeight = MaxHeight(v, theta, g)
	switch method {
	case RangeLevelGround:
		maxDistance = RangeLevel(v, theta, g)
	default:
		maxDistance = RangeFlight(v, theta, g)
	}
	return maxHeight, maxDistance
}

func MaxHeight(v, theta, g float64) float64 {
	if !validInputs(v, theta, g) {
		return math.NaN()
	}
	s := math.Sin(theta)
	if s < 0 {
		return math.NaN()
	}
	return v * v * s * s / (2 * g)
}

// TimeOfFlight is the drag-free time to return to launch height.
func TimeOfFlight(v, theta, g float64) float64 {
	if !validInputs(v, theta, g) || math.Sin(theta) < 0 {
		return math.NaN()
	}
	return 2 * v * math.Sin(theta) / g
}

// ApexTime is the drag-free time to the top of the arc.
func ApexTime(v, theta, g float64) float64 {
	return TimeOfFlight(v, theta, g) / 2
}

// RangeFlight is the horizontal speed times the time of flight.
func RangeFlight(v, theta, g float64) float64 {
	if !hasRange(v, theta, g) {
		return math.NaN()
	}
	return v * math.Cos(theta) * TimeOfFlight(v, theta, g)
}

// RangeLevel is the level-ground range formula.
func RangeLevel(v, theta, g float64) float64 {
	if !hasRange(v, theta, g) {
		return math.NaN()
	}
	return v * v * math.Sin(2*theta) / g
}

// VacuumPosition returns horizontal and vertical displacement at time t
// without drag.
func VacuumPosition(v, theta, g, t float64) (x, y float64) {
	x = v * math.Cos(theta) * t
	y = v*math.Sin(theta)*t - 0.5*g*t*t
	return x, y
}

func hasRange(v, theta, g float64) bool {
	return validInputs(v, theta, g) && math.Cos(theta) > verticalEps && math.Sin(theta) >= 0
}

func validInputs(v, theta, g float64) bool {
	for _, x := range []float64{v, theta, g} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return v >= 0 && g > 0
}
