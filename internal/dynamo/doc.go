// Package dynamo provides the simulation primitives shared by the ballistics
// packages.
//
// The package defines the fundamental types for numerically integrating the
// projectile equations of motion:
//
//   - [State]: vector of velocity components followed by position components
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator] and [AdaptiveIntegrator]: single-step numerical methods
//   - [Trajectory]: uniformly resampled solution of one integration run
//   - [SolverConfig]: time span, sampling and step control
//
// # Example
//
//	proj := physics.NewProjectile(physics.Planar, 0.00745, physics.DefaultEnvironment())
//	traj, err := integrators.Solve(proj, x0, dynamo.DefaultSolverConfig())
//
// # Thread Safety
//
// States and trajectories are plain values. A [Trajectory] must not be
// mutated once returned; [ForEach] runs independent tasks concurrently and
// relies on each task owning its inputs.
package dynamo
