package integrators

import "github.com/san-kum/ballistics/internal/dynamo"

// resampler fills the requested output times from accepted steps using
// cubic Hermite interpolation on the step's end states and derivatives.
type resampler struct {
	times  []float64
	states []dynamo.State
	next   int
}

func newResampler(times []float64) *resampler {
	return &resampler{
		times:  times,
		states: make([]dynamo.State, len(times)),
	}
}

func (r *resampler) start(x0 dynamo.State) {
	if len(r.times) > 0 {
		r.states[0] = x0.Clone()
		r.next = 1
	}
}

func (r *resampler) interval(t0 float64, x0, f0 dynamo.State, t1 float64, x1, f1 dynamo.State) {
	h := t1 - t0
	for r.next < len(r.times) && r.times[r.next] <= t1 {
		ts := r.times[r.next]
		if ts == t1 {
			r.states[r.next] = x1.Clone()
		} else {
			r.states[r.next] = hermite((ts-t0)/h, h, x0, f0, x1, f1)
		}
		r.next++
	}
}

func hermite(s, h float64, x0, f0, x1, f1 dynamo.State) dynamo.State {
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	out := make(dynamo.State, len(x0))
	for i := range out {
		out[i] = h00*x0[i] + h10*h*f0[i] + h01*x1[i] + h11*h*f1[i]
	}
	return out
}
