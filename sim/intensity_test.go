package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slitsim/slitsim/sim/internal/testutil"
)

// scenarioParams is the classroom configuration: fringe spacing λD/d = 2.5.
func scenarioParams() PhysicsParams {
	p := DefaultParams()
	p.Wavelength = 0.5
	p.SlitSeparation = 2.0
	p.SlitWidth = 0.3
	p.ScreenDistance = 10.0
	return p
}

// randomValidParams draws n validated parameter sets from a seeded source.
func randomValidParams(seed int64, n int) []PhysicsParams {
	rng := rand.New(rand.NewSource(seed))
	out := make([]PhysicsParams, 0, n)
	for i := 0; i < n; i++ {
		p := DefaultParams()
		for _, b := range ParamBounds {
			*b.field(&p) = b.Min + rng.Float64()*(b.Max-b.Min)
		}
		out = append(out, Validate(p))
	}
	return out
}

func TestIntensity_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			p := DefaultParams()
			p.Wavelength = tc.Wavelength
			p.SlitSeparation = tc.SlitSeparation
			p.SlitWidth = tc.SlitWidth
			p.ScreenDistance = tc.ScreenDistance

			testutil.AssertFloat64Equal(t, "fringe spacing", tc.FringeSpacing, FringeSpacing(p), 1e-12)
			for _, s := range tc.Samples {
				testutil.AssertFloat64Near(t, "intensity", s.Intensity, Intensity(s.Z, p), 1e-12, 1e-9)
			}
		})
	}
}

func TestIntensity_CentralMaximumIsOne(t *testing.T) {
	for _, p := range randomValidParams(1, 200) {
		assert.Equal(t, 1.0, Intensity(0, p), "params %+v", p)
	}
}

func TestIntensity_SymmetricAboutAxis(t *testing.T) {
	zs := []float64{0.01, 0.37, 1.25, 2.5, 3.3, 5.99, 6, 11.5}
	for _, p := range randomValidParams(2, 100) {
		for _, z := range zs {
			if Intensity(z, p) != Intensity(-z, p) {
				t.Fatalf("I(%v) = %v != I(%v) = %v for %+v", z, Intensity(z, p), -z, Intensity(-z, p), p)
			}
		}
	}
}

func TestIntensity_BoundedInUnitInterval(t *testing.T) {
	for _, p := range randomValidParams(3, 100) {
		for z := -6.0; z <= 6.0; z += 0.013 {
			v := Intensity(z, p)
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("I(%v) = %v out of [0,1] for %+v", z, v, p)
			}
		}
	}
}

func TestIntensity_FirstMinimumIsDark(t *testing.T) {
	for _, p := range randomValidParams(4, 200) {
		z := p.Wavelength * p.ScreenDistance / (2 * p.SlitSeparation)
		assert.Less(t, Intensity(z, p), 0.1, "params %+v", p)
		assert.Equal(t, z, FirstMinimum(p))
	}
}

func TestIntensity_FirstMaximumIsBright(t *testing.T) {
	// Narrow slits relative to their separation keep the envelope above 1/2
	// at the first order.
	tests := []struct {
		name string
		p    PhysicsParams
	}{
		{"classroom", scenarioParams()},
		{"narrow slits", func() PhysicsParams { p := scenarioParams(); p.SlitWidth = 0.1; return p }()},
		{"long wavelength", func() PhysicsParams { p := scenarioParams(); p.Wavelength = 1.8; return p }()},
		{"wide separation", func() PhysicsParams { p := scenarioParams(); p.SlitSeparation = 8; p.SlitWidth = 2; return p }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := tt.p.Wavelength * tt.p.ScreenDistance / tt.p.SlitSeparation
			assert.Greater(t, Intensity(z, tt.p), 0.5)
			assert.Equal(t, z, FirstMaximum(tt.p))
		})
	}
}

func TestIntensity_EnvelopeAttenuatesHigherOrders(t *testing.T) {
	for _, p := range randomValidParams(5, 200) {
		z10 := 10 * FringeSpacing(p)
		assert.Less(t, Intensity(z10, p), Intensity(0, p), "params %+v", p)
	}
}

func TestIntensity_DegenerateGeometryIsDark(t *testing.T) {
	tests := []struct {
		name       string
		wavelength float64
		distance   float64
	}{
		{"zero distance", 0.5, 0},
		{"negative distance", 0.5, -3},
		{"zero wavelength", 0, 10},
		{"negative wavelength", -0.5, 10},
		{"both zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioParams()
			p.Wavelength = tt.wavelength
			p.ScreenDistance = tt.distance
			for _, z := range []float64{0, 0.5, -2.5, 6} {
				assert.Equal(t, 0.0, Intensity(z, p))
			}
		})
	}
}

func TestIntensity_NonFinitePositionIsDark(t *testing.T) {
	p := scenarioParams()
	for _, z := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, 0.0, Intensity(z, p), "z=%v", z)
	}
}

func TestIntensity_ClassroomScenario(t *testing.T) {
	// GIVEN λ=0.5, d=2, D=10, w=0.3
	p := scenarioParams()

	// THEN fringe spacing is 2.5 with the first minimum at 1.25
	assert.InDelta(t, 2.5, FringeSpacing(p), 1e-12)
	assert.InDelta(t, 1.25, FirstMinimum(p), 1e-12)
	assert.InDelta(t, 2.5, FirstMaximum(p), 1e-12)

	// THEN the first maximum carries the full interference term, scaled only
	// by the diffraction envelope sinc²(π w z / λD)
	x := math.Pi * p.SlitWidth * 2.5 / (p.Wavelength * p.ScreenDistance)
	envelope := math.Pow(math.Sin(x)/x, 2)
	assert.InDelta(t, envelope, Intensity(2.5, p), 1e-12)
	assert.InDelta(t, 0.928, Intensity(2.5, p), 1e-3)
	assert.Less(t, Intensity(1.25, p), 1e-12)
}

func TestSinc_ZeroBranch(t *testing.T) {
	assert.Equal(t, 1.0, sinc(0))
	assert.False(t, math.IsNaN(sinc(0)))
	assert.InDelta(t, math.Sin(1e-9)/1e-9, sinc(1e-9), 1e-15)
}

func TestFringeSpacing_ZeroSeparation(t *testing.T) {
	p := scenarioParams()
	p.SlitSeparation = 0
	assert.Equal(t, 0.0, FringeSpacing(p))
}

func TestProfile_SpansScreen(t *testing.T) {
	p := scenarioParams()
	z, intensity := Profile(p, ScreenWidth, 121)

	require.Len(t, z, 121)
	require.Len(t, intensity, 121)
	assert.InDelta(t, -6.0, z[0], 1e-12)
	assert.InDelta(t, 6.0, z[120], 1e-12)
	assert.InDelta(t, 0.0, z[60], 1e-12)
	assert.InDelta(t, 1.0, intensity[60], 1e-12)
}

func TestProfile_SingleSample(t *testing.T) {
	z, intensity := Profile(scenarioParams(), ScreenWidth, 1)
	assert.Equal(t, []float64{0}, z)
	assert.Equal(t, []float64{1}, intensity)
}

func BenchmarkIntensity(b *testing.B) {
	p := scenarioParams()
	for i := 0; i < b.N; i++ {
		Intensity(float64(i%1200)/100-6, p)
	}
}
