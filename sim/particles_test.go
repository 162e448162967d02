package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource replays fixed values, cycling when exhausted.
type sequenceSource struct {
	values []float64
	i      int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestGenerate_TypicalPopulationIsFull(t *testing.T) {
	// GIVEN classroom parameters and a seeded source
	p := scenarioParams()
	src := rand.New(rand.NewSource(42))

	// WHEN a default-sized population is generated
	pop := Generate(p, src, EmitterConfig{})

	// THEN exactly 500 particles are accepted
	require.Equal(t, DefaultNumParticles, pop.Len())
	assert.Equal(t, DefaultNumParticles, pop.Requested)
	assert.False(t, pop.Short())
	assert.GreaterOrEqual(t, pop.Attempts, pop.Len())
	assert.Greater(t, pop.AcceptanceRate(), 0.0)

	// THEN every particle sits on the screen with a reveal time inside the emission window
	duration := float64(DefaultNumParticles) / p.ParticleRate
	for _, pt := range pop.Particles {
		assert.Equal(t, p.ScreenDistance, pt.Position.X)
		assert.Equal(t, 0.0, pt.Position.Y)
		assert.GreaterOrEqual(t, pt.Position.Z, -ScreenWidth/2)
		assert.Less(t, pt.Position.Z, ScreenWidth/2)
		assert.GreaterOrEqual(t, pt.RevealTime, 0.0)
		assert.Less(t, pt.RevealTime, duration)
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	p := scenarioParams()
	a := Generate(p, rand.New(rand.NewSource(9)), EmitterConfig{})
	b := Generate(p, rand.New(rand.NewSource(9)), EmitterConfig{})
	c := Generate(p, rand.New(rand.NewSource(10)), EmitterConfig{})

	assert.Equal(t, a.Particles, b.Particles)
	assert.Equal(t, a.Attempts, b.Attempts)
	assert.NotEqual(t, a.Particles, c.Particles)
}

func TestGenerate_AcceptanceFollowsThreshold(t *testing.T) {
	// GIVEN draws: candidate at the centre (I=1) accepted, then a candidate
	// whose threshold equals its intensity (rejected), then accepted again
	p := scenarioParams()
	src := &sequenceSource{values: []float64{
		0.5, 0.99, 0.25, // z=0, threshold .99 < 1 → accept, reveal .25 of window
		0.5, 1.0, // threshold 1.0 is not < 1 → reject
		0.5, 0.0, 0.75, // accept, reveal .75 of window
	}}

	pop := Generate(p, src, EmitterConfig{NumParticles: 2})

	require.Equal(t, 2, pop.Len())
	assert.Equal(t, 3, pop.Attempts)
	duration := 2 / p.ParticleRate
	assert.Equal(t, Particle{Position: Vec3{X: 10, Z: 0}, RevealTime: 0.25 * duration}, pop.Particles[0])
	assert.Equal(t, Particle{Position: Vec3{X: 10, Z: 0}, RevealTime: 0.75 * duration}, pop.Particles[1])
}

func TestGenerate_ExhaustedAttemptsGiveShortPopulation(t *testing.T) {
	// GIVEN a tiny attempt budget
	p := scenarioParams()
	pop := Generate(p, rand.New(rand.NewSource(1)), EmitterConfig{NumParticles: 500, MaxAttempts: 10})

	// THEN sampling stops at the budget without error
	assert.Equal(t, 10, pop.Attempts)
	assert.LessOrEqual(t, pop.Len(), 10)
	assert.True(t, pop.Short())
}

func TestGenerate_DarkScreenAcceptsNothing(t *testing.T) {
	// GIVEN a degenerate geometry whose intensity is 0 everywhere
	p := scenarioParams()
	p.ScreenDistance = 0

	pop := Generate(p, rand.New(rand.NewSource(1)), EmitterConfig{NumParticles: 20})

	assert.Equal(t, 0, pop.Len())
	assert.Equal(t, 20*DefaultAttemptsPerParticle, pop.Attempts)
	assert.Empty(t, VisibleSubset(pop, math.Inf(1)))
}

func TestGenerate_DistributionFollowsFringes(t *testing.T) {
	p := scenarioParams()
	pop := Generate(p, rand.New(rand.NewSource(3)), EmitterConfig{})

	centre, nearMinimum := 0, 0
	for _, pt := range pop.Particles {
		z := math.Abs(pt.Position.Z)
		if z < 0.2 {
			centre++
		}
		if math.Abs(z-FirstMinimum(p)) < 0.2 {
			nearMinimum++
		}
	}
	// ~40 expected around the central maximum, ~2 around the first minimum (both sides)
	assert.Greater(t, centre, 20)
	assert.Less(t, nearMinimum, 10)
}

func TestGenerate_RevealWindowTracksRate(t *testing.T) {
	p := scenarioParams()
	p.ParticleRate = 1000
	pop := Generate(p, rand.New(rand.NewSource(5)), EmitterConfig{})
	for _, pt := range pop.Particles {
		assert.Less(t, pt.RevealTime, 0.5)
	}
}

func TestEmitterConfig_Defaults(t *testing.T) {
	cfg := EmitterConfig{}.withDefaults()
	assert.Equal(t, 500, cfg.NumParticles)
	assert.Equal(t, 100_000, cfg.MaxAttempts)
	assert.Equal(t, ScreenWidth, cfg.ScreenWidth)

	cfg = EmitterConfig{NumParticles: 10}.withDefaults()
	assert.Equal(t, 2000, cfg.MaxAttempts)
}

func TestVisibleSubset_MonotonicInTime(t *testing.T) {
	pop := Generate(scenarioParams(), rand.New(rand.NewSource(8)), EmitterConfig{})

	prev := -1
	for tm := -0.5; tm <= 6; tm += 0.05 {
		n := len(VisibleSubset(pop, tm))
		if n < prev {
			t.Fatalf("visible count shrank from %d to %d at t=%v", prev, n, tm)
		}
		prev = n
	}
	assert.Empty(t, VisibleSubset(pop, -0.5))
	assert.Len(t, VisibleSubset(pop, 5), pop.Len())
}

func TestVisibleSubset_FiltersByRevealTime(t *testing.T) {
	pop := Generate(scenarioParams(), rand.New(rand.NewSource(8)), EmitterConfig{})
	cut := 2.0

	visible := VisibleSubset(pop, cut)

	want := 0
	for _, pt := range pop.Particles {
		if pt.RevealTime <= cut {
			want++
		}
	}
	assert.Len(t, visible, want)
	for i, pt := range visible {
		assert.LessOrEqual(t, pt.RevealTime, cut)
		if i > 0 {
			assert.GreaterOrEqual(t, pt.RevealTime, visible[i-1].RevealTime)
		}
	}
}

func TestVisibleSubset_EmptyPopulation(t *testing.T) {
	assert.Empty(t, VisibleSubset(Population{}, 100))
}

func TestVisibleSubset_CannotGrowIntoPopulation(t *testing.T) {
	pop := Generate(scenarioParams(), rand.New(rand.NewSource(8)), EmitterConfig{NumParticles: 10})
	visible := VisibleSubset(pop, 0.05)
	assert.Equal(t, len(visible), cap(visible))
}

func TestGenerateWithSeed_DeterministicAndValidated(t *testing.T) {
	p := scenarioParams()
	p.SlitWidth = 50 // repaired before sampling

	a := GenerateWithSeed(p, 8, EmitterConfig{NumParticles: 100})
	b := GenerateWithSeed(p, 8, EmitterConfig{NumParticles: 100})

	require.Equal(t, 100, a.Len())
	assert.Equal(t, a.Particles, b.Particles)
	direct := Generate(Validate(p), rand.New(rand.NewSource(8)), EmitterConfig{NumParticles: 100})
	assert.Equal(t, direct.Particles, a.Particles)
}
