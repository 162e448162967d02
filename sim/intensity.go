package sim

import "math"

// ScreenWidth is the width of the detection screen, centred on the optical axis.
const ScreenWidth = 12.0

// Intensity returns the normalized far-field intensity in [0, 1] at position z
// on the detection screen: the two-source interference term cos²(φ/2) times the
// single-slit envelope sinc²(β/2), with φ = k·d·z/D and β = k·w·z/D.
//
// A non-positive wavelength or screen distance has no optical meaning and
// yields a dark screen (0) rather than an error, as does a non-finite z.
func Intensity(z float64, p PhysicsParams) float64 {
	if p.ScreenDistance <= 0 || p.Wavelength <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return 0
	}
	k := 2 * math.Pi / p.Wavelength

	phi := k * p.SlitSeparation * z / p.ScreenDistance
	c := math.Cos(phi / 2)
	interference := c * c

	beta := k * p.SlitWidth * z / p.ScreenDistance
	s := sinc(beta / 2)
	diffraction := s * s

	return interference * diffraction
}

// sinc is sin(x)/x with the removable singularity at 0 filled in.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// FringeSpacing is the distance λD/d between adjacent interference maxima.
func FringeSpacing(p PhysicsParams) float64 {
	if p.SlitSeparation <= 0 {
		return 0
	}
	return p.Wavelength * p.ScreenDistance / p.SlitSeparation
}

// FirstMinimum is the screen position of the first interference minimum.
func FirstMinimum(p PhysicsParams) float64 {
	return FringeSpacing(p) / 2
}

// FirstMaximum is the screen position of the first-order interference maximum.
func FirstMaximum(p PhysicsParams) float64 {
	return FringeSpacing(p)
}

// Profile samples Intensity at n evenly spaced positions spanning
// [-width/2, width/2] inclusive. n < 2 returns the centre sample only.
func Profile(p PhysicsParams, width float64, n int) (z, intensity []float64) {
	if n < 2 {
		return []float64{0}, []float64{Intensity(0, p)}
	}
	z = make([]float64, n)
	intensity = make([]float64, n)
	step := width / float64(n-1)
	for i := range z {
		z[i] = -width/2 + float64(i)*step
		intensity[i] = Intensity(z[i], p)
	}
	return z, intensity
}
