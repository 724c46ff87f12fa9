// Package analysis derives metrics from sampled trajectories.
//
// The package works on [dynamo.Trajectory] values after integration:
//
//   - [Intersects]: sign-change test of the vertical coordinate against a height
//   - [Crossings]: interpolated times at which that height is crossed
//   - [Observe]: apex, impact time and range of the drag trajectory
//   - [PathToASCII]: range-versus-height picture of a trajectory
//
// # Target Height
//
// Intersection only examines the vertical coordinate. It answers "does the
// projectile reach this height at some sampled instant", not "does it hit a
// target placed at a given horizontal distance":
//
//	if analysis.Intersects(traj, 50, physics.Spatial.VerticalAxis()) {
//	    // height 50 m is reached or crossed
//	}
package analysis
