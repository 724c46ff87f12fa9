// Package physics provides the projectile equations of motion.
//
// [Projectile] implements [dynamo.System] for a point mass under uniform
// gravity and quadratic aerodynamic drag, in two ([Planar]) or three
// ([Spatial]) dimensions. The state layout is velocity components
// followed by position components; the last axis is vertical.
//
//   - [DragForce]: signed drag magnitude for a speed
//   - [Derivative]: state derivative for a mass and [Environment]
//   - [ClosedForm]: drag-free apex height and range
//
// # Vacuum Reference
//
// With zero air density or zero cross-section the drag term vanishes and
// integrated trajectories must agree with the closed-form formulas:
//
//	env := physics.DefaultEnvironment().Vacuum()
//	h, r := physics.ClosedForm(343, math.Pi/4, env.Gravity, physics.RangeTimeOfFlight)
package physics
