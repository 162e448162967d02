package sim

import "math"

// WaveHeight is the instantaneous wave displacement at (x, z) and simulation
// time t, in [-Amplitude, Amplitude].
//
// Geometry: the barrier sits at x = 0 with slits at z = ±d/2 and the detection
// screen at x = D. Left of the barrier a plane wave travels toward it; between
// barrier and screen the two slits act as in-phase point sources. Nothing is
// drawn behind the screen.
func WaveHeight(x, z, t float64, p PhysicsParams) float64 {
	if p.Wavelength <= 0 || x > p.ScreenDistance {
		return 0
	}
	k := 2 * math.Pi / p.Wavelength
	omega := k * p.WaveSpeed

	if x < 0 {
		return p.Amplitude * math.Sin(k*x-omega*t)
	}

	half := p.SlitSeparation / 2
	r1 := math.Hypot(x, z-half)
	r2 := math.Hypot(x, z+half)
	return p.Amplitude / 2 * (math.Sin(k*r1-omega*t) + math.Sin(k*r2-omega*t))
}

// OnBarrier reports whether z at the barrier plane is blocked, i.e. not inside
// either slit opening.
func OnBarrier(z float64, p PhysicsParams) bool {
	half := p.SlitSeparation / 2
	w := p.SlitWidth / 2
	return math.Abs(math.Abs(z)-half) > w
}
