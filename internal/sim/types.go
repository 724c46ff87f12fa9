package sim

import (
	"math"

	"github.com/san-kum/ballistics/internal/analysis"
	"github.com/san-kum/ballistics/internal/dynamo"
	"github.com/san-kum/ballistics/internal/physics"
)

// Projectile is one weapon/load under test.
type Projectile struct {
	Name           string  `yaml:"name" json:"name"`
	MuzzleVelocity float64 `yaml:"muzzle_velocity" json:"muzzle_velocity"`
	Mass           float64 `yaml:"mass" json:"mass"`
}

func (p Projectile) Validate() error {
	if !finite(p.MuzzleVelocity) || p.MuzzleVelocity <= 0 {
		return dynamo.Invalid("%s: muzzle velocity must be finite and positive, got %g", p.Name, p.MuzzleVelocity)
	}
	if !finite(p.Mass) || p.Mass <= 0 {
		return dynamo.Invalid("%s: mass must be finite and positive, got %g", p.Name, p.Mass)
	}
	return nil
}

// Target is the height probed by the intersection check. Distance is the
// horizontal position of the target, carried for display only.
type Target struct {
	Height   float64 `yaml:"height" json:"height"`
	Distance float64 `yaml:"distance" json:"distance"`
}

func (t Target) Validate() error {
	if !finite(t.Height) || t.Height < 0 {
		return dynamo.Invalid("target height must be finite and non-negative, got %g", t.Height)
	}
	if !finite(t.Distance) || t.Distance < 0 {
		return dynamo.Invalid("target distance must be finite and non-negative, got %g", t.Distance)
	}
	return nil
}

// Metrics are derived once per result and never mutated. Closed-form
// values are NaN when undefined and must be checked before display.
type Metrics struct {
	MaxHeightClosedForm   float64
	MaxDistanceClosedForm float64
	Injured               bool
	Crossings             []float64
	Observed              analysis.Observed
	EnergyLoss            float64
	FinalEnergy           float64
}

func undefinedMetrics() Metrics {
	nan := math.NaN()
	return Metrics{
		MaxHeightClosedForm:   nan,
		MaxDistanceClosedForm: nan,
		Observed: analysis.Observed{
			ApexHeight:  nan,
			ApexTime:    nan,
			Range:       nan,
			ImpactTime:  nan,
			FinalHeight: nan,
		},
		EnergyLoss:  nan,
		FinalEnergy: nan,
	}
}

// Result is the outcome for one projectile at one launch angle. When Err
// is set Trajectory is nil; Err wraps dynamo.ErrInvalidInput or is a
// *dynamo.IntegrationError.
type Result struct {
	Index      int
	Projectile Projectile
	Angle      float64
	Trajectory *dynamo.Trajectory
	Metrics    Metrics
	Err        error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Options configure how every projectile in a batch is simulated.
type Options struct {
	Dim         physics.Dimension
	Solver      dynamo.SolverConfig
	RangeMethod physics.RangeMethod
	Azimuth     float64
	Workers     int
}

func DefaultOptions() Options {
	return Options{
		Dim:         physics.Planar,
		Solver:      dynamo.DefaultSolverConfig(),
		RangeMethod: physics.RangeTimeOfFlight,
	}
}

func (o Options) Validate() error {
	if !o.Dim.Valid() {
		return dynamo.Invalid("dimension must be 2 or 3, got %d", o.Dim)
	}
	if _, err := physics.ParseRangeMethod(string(o.RangeMethod)); err != nil {
		return dynamo.Invalid("%v", err)
	}
	if !finite(o.Azimuth) {
		return dynamo.Invalid("azimuth must be finite, got %g", o.Azimuth)
	}
	return o.Solver.Validate()
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
