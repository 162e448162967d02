package sim

// Vec3 is a point in scene space. X runs from the barrier toward the screen,
// Y is out of the slit plane and Z runs along the screen.
type Vec3 struct {
	X, Y, Z float64
}
