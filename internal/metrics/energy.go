package metrics

import (
	"math"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// mechanical returns kinetic plus potential energy of a projectile state
// laid out as velocities followed by positions, last axis vertical.
func mechanical(mass, gravity float64, x dynamo.State) float64 {
	n := len(x) / 2
	if n == 0 {
		return 0
	}
	v2 := 0.0
	for i := 0; i < n; i++ {
		v2 += x[i] * x[i]
	}
	return 0.5*mass*v2 + mass*gravity*x[2*n-1]
}

// Energy reports the mechanical energy of the last observed state.
type Energy struct {
	name    string
	mass    float64
	gravity float64
	samples int
	current float64
}

func NewEnergy(mass, gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		mass:    mass,
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.current = mechanical(e.mass, e.gravity, x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// EnergyLoss reports the fraction of the initial mechanical energy that
// drag has removed by the last observed state. It is zero in vacuum up to
// integration error.
type EnergyLoss struct {
	name          string
	mass          float64
	gravity       float64
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyLoss(mass, gravity float64) *EnergyLoss {
	return &EnergyLoss{
		name:    "energy_loss",
		mass:    mass,
		gravity: gravity,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(x dynamo.State, t float64) {
	energy := mechanical(e.mass, e.gravity, x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.currentEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}

// Collect resets every metric, feeds it each sample of traj and returns
// the values by name.
func Collect(traj *dynamo.Trajectory, ms ...dynamo.Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < traj.Len(); i++ {
		for _, m := range ms {
			m.Observe(traj.States[i], traj.Times[i])
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
