package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// AddScaled returns s + factor*other.
func (s State) AddScaled(other State, factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + factor*other[i]
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator takes one error-controlled step. It returns the new
// state and the suggested next step, or ErrStepRejected together with a
// reduced step when the local error exceeds tolerance.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, rtol, atol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

const (
	MethodRK45  = "rk45"
	MethodRK4   = "rk4"
	MethodEuler = "euler"
)

// SolverConfig controls one integration run. The solution is resampled at
// Samples uniformly spaced times over [T0, T1].
type SolverConfig struct {
	Method       string  `yaml:"method" json:"method"`
	T0           float64 `yaml:"t0" json:"t0"`
	T1           float64 `yaml:"t1" json:"t1"`
	Samples      int     `yaml:"samples" json:"samples"`
	Dt           float64 `yaml:"dt" json:"dt"`
	MinDt        float64 `yaml:"min_dt" json:"min_dt"`
	MaxDt        float64 `yaml:"max_dt" json:"max_dt"`
	Tolerance    float64 `yaml:"tolerance" json:"tolerance"`
	AbsTolerance float64 `yaml:"abs_tolerance" json:"abs_tolerance"`
	MaxSteps     int     `yaml:"max_steps" json:"max_steps"`
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Method:       MethodRK45,
		T0:           0,
		T1:           20,
		Samples:      1000,
		Dt:           0.01,
		MinDt:        1e-8,
		MaxDt:        0.1,
		Tolerance:    1e-6,
		AbsTolerance: 1e-9,
		MaxSteps:     50000,
	}
}

func (c SolverConfig) Validate() error {
	switch c.Method {
	case MethodRK45, MethodRK4, MethodEuler:
	default:
		return Invalid("unknown integrator %q", c.Method)
	}
	if !finite(c.T0) || !finite(c.T1) || c.T1 <= c.T0 {
		return Invalid("time span must be finite and increasing, got [%g, %g]", c.T0, c.T1)
	}
	if c.Samples < 1 {
		return Invalid("sample count must be at least 1, got %d", c.Samples)
	}
	if !finite(c.Dt) || c.Dt <= 0 {
		return Invalid("dt must be positive, got %g", c.Dt)
	}
	if c.Method == MethodRK45 {
		if c.Tolerance <= 0 || c.AbsTolerance < 0 {
			return Invalid("tolerance must be positive for adaptive stepping")
		}
		if c.MinDt <= 0 || c.MaxDt < c.MinDt {
			return Invalid("step bounds must satisfy 0 < min_dt <= max_dt, got %g, %g", c.MinDt, c.MaxDt)
		}
	}
	if c.MaxSteps < 1 {
		return Invalid("max steps must be at least 1, got %d", c.MaxSteps)
	}
	return nil
}

// Trajectory is the sampled solution of one run. Each state holds Dim
// velocity components followed by Dim position components.
type Trajectory struct {
	Dim    int
	Times  []float64
	States []State
	Steps  int
}

func (tr *Trajectory) Len() int {
	if tr == nil {
		return 0
	}
	return len(tr.Times)
}

// Position returns position component axis of sample i.
func (tr *Trajectory) Position(i, axis int) float64 {
	return tr.States[i][tr.Dim+axis]
}

// Velocity returns velocity component axis of sample i.
func (tr *Trajectory) Velocity(i, axis int) float64 {
	return tr.States[i][axis]
}

// Axis returns position component axis across all samples.
func (tr *Trajectory) Axis(axis int) []float64 {
	out := make([]float64, tr.Len())
	for i := range out {
		out[i] = tr.Position(i, axis)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
