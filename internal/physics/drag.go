package physics

// DragForce returns the quadratic drag magnitude -0.5*Cd*A*rho*v².
// The result is never positive; callers resolve it into components by
// dividing by speed, so speed == 0 must be handled by the caller.
func DragForce(speed, airDensity, dragCoefficient, area float64) float64 {
	return -0.5 * dragCoefficient * area * airDensity * speed * speed
}
