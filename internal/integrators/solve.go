package integrators

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// New returns the integrator registered under method.
func New(method string) (dynamo.Integrator, error) {
	switch method {
	case dynamo.MethodRK45, "":
		return NewRK45(), nil
	case dynamo.MethodRK4:
		return NewRK4(), nil
	case dynamo.MethodEuler:
		return NewEuler(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", method)
}

// Solve integrates dyn from x0 over [cfg.T0, cfg.T1] and returns the
// solution resampled at cfg.Samples uniformly spaced times. Adaptive
// methods pick their own steps; fixed-step methods advance by cfg.Dt.
// When the span cannot be completed the result is nil and the error is a
// *dynamo.IntegrationError.
func Solve(dyn dynamo.System, x0 dynamo.State, cfg dynamo.SolverConfig) (*dynamo.Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != dyn.StateDim() || len(x0)%2 != 0 {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d", dynamo.ErrDimensionMismatch, len(x0), dyn.StateDim())
	}
	if !x0.IsValid() {
		return nil, dynamo.Invalid("initial state is not finite: %v", x0)
	}

	integ, err := New(cfg.Method)
	if err != nil {
		return nil, dynamo.Invalid("%v", err)
	}
	adaptive, isAdaptive := integ.(dynamo.AdaptiveIntegrator)

	rs := newResampler(SampleTimes(cfg.T0, cfg.T1, cfg.Samples))

	t := cfg.T0
	x := x0.Clone()
	f := dyn.Derive(x, t)
	rs.start(x)

	dt := cfg.Dt
	if isAdaptive {
		dt = math.Min(dt, cfg.MaxDt)
	}

	steps, attempts := 0, 0
	fail := func(cause error) (*dynamo.Trajectory, error) {
		return nil, &dynamo.IntegrationError{LastTime: t, Steps: steps, State: x.Clone(), Err: cause}
	}

	for t < cfg.T1 {
		if attempts >= cfg.MaxSteps {
			return fail(dynamo.ErrStepBudget)
		}
		attempts++

		h := dt
		last := false
		if t+h >= cfg.T1 {
			h = cfg.T1 - t
			last = true
		}

		var xNew dynamo.State
		next := dt
		if isAdaptive {
			var stepErr error
			xNew, next, stepErr = adaptive.StepAdaptive(dyn, x, t, h, cfg.Tolerance, cfg.AbsTolerance)
			if errors.Is(stepErr, dynamo.ErrStepRejected) {
				if next < cfg.MinDt {
					return fail(dynamo.ErrStepTooSmall)
				}
				dt = next
				continue
			}
			next = math.Min(next, cfg.MaxDt)
		} else {
			xNew = integ.Step(dyn, x, t, h)
		}

		if !xNew.IsValid() {
			return fail(dynamo.ErrUnstable)
		}

		tNew := t + h
		if last {
			tNew = cfg.T1
		}
		fNew := dyn.Derive(xNew, tNew)
		rs.interval(t, x, f, tNew, xNew, fNew)

		t, x, f = tNew, xNew, fNew
		steps++
		dt = next
	}

	return &dynamo.Trajectory{
		Dim:    len(x0) / 2,
		Times:  rs.times,
		States: rs.states,
		Steps:  steps,
	}, nil
}

// SampleTimes returns n uniformly spaced times from t0 to t1 inclusive.
// The last element is exactly t1.
func SampleTimes(t0, t1 float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	times := make([]float64, n)
	if n == 1 {
		times[0] = t0
		return times
	}
	step := (t1 - t0) / float64(n-1)
	for i := range times {
		times[i] = t0 + float64(i)*step
	}
	times[n-1] = t1
	return times
}
