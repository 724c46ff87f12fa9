package physics

import (
	"math"

	"github.com/san-kum/ballistics/internal/dynamo"
)

// Dimension is the number of spatial axes of a run.
type Dimension int

const (
	Planar  Dimension = 2
	Spatial Dimension = 3
)

func (d Dimension) Valid() bool {
	return d == Planar || d == Spatial
}

// VerticalAxis is the position axis gravity acts along.
func (d Dimension) VerticalAxis() int {
	return int(d) - 1
}

// StateDim is the length of a state vector: velocities then positions.
func (d Dimension) StateDim() int {
	return 2 * int(d)
}

// Projectile is a point mass under gravity and quadratic drag.
type Projectile struct {
	Dim  Dimension
	Mass float64
	Env  Environment
}

func NewProjectile(dim Dimension, mass float64, env Environment) *Projectile {
	return &Projectile{
		Dim:  dim,
		Mass: mass,
		Env:  env,
	}
}

func (p *Projectile) StateDim() int {
	return p.Dim.StateDim()
}

func (p *Projectile) Derive(x dynamo.State, t float64) dynamo.State {
	return Derivative(x, p.Mass, p.Env)
}

// Derivative evaluates the equations of motion. The arity of x selects 2D
// or 3D; the result holds accelerations followed by the unchanged
// velocities. At speed zero drag vanishes and only gravity acts.
func Derivative(x dynamo.State, mass float64, env Environment) dynamo.State {
	n := len(x) / 2
	dx := make(dynamo.State, len(x))

	speed := 0.0
	for i := 0; i < n; i++ {
		speed += x[i] * x[i]
	}
	speed = math.Sqrt(speed)

	if speed > 0 {
		k := env.DragForce(speed) / (mass * speed)
		for i := 0; i < n; i++ {
			dx[i] = k * x[i]
		}
	}
	dx[n-1] -= env.Gravity

	copy(dx[n:], x[:n])
	return dx
}

// InitialState decomposes speed v along the launch angle above the
// horizontal. In 3D the horizontal part is split between x and y by
// azimuth (0 points along x). Positions start at the origin.
func InitialState(dim Dimension, v, angle, azimuth float64) dynamo.State {
	x := make(dynamo.State, dim.StateDim())
	horizontal := v * math.Cos(angle)
	vertical := v * math.Sin(angle)

	switch dim {
	case Planar:
		x[0] = horizontal
		x[1] = vertical
	case Spatial:
		x[0] = horizontal * math.Cos(azimuth)
		x[1] = horizontal * math.Sin(azimuth)
		x[2] = vertical
	}
	return x
}
