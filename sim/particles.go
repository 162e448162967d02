package sim

import "sort"

const (
	// DefaultNumParticles is the target population size.
	DefaultNumParticles = 500
	// DefaultAttemptsPerParticle bounds rejection sampling at
	// NumParticles × DefaultAttemptsPerParticle candidate draws.
	DefaultAttemptsPerParticle = 200
)

// Particle is a single detection event on the screen.
type Particle struct {
	Position   Vec3
	RevealTime float64 // simulation time at which the hit becomes visible
}

// EmitterConfig sizes a particle population. Zero fields take defaults.
type EmitterConfig struct {
	NumParticles int     // target accepted particles (default 500)
	MaxAttempts  int     // candidate draw budget (default NumParticles × 200)
	ScreenWidth  float64 // sampling width centred on 0 (default ScreenWidth)
}

func (c EmitterConfig) withDefaults() EmitterConfig {
	if c.NumParticles <= 0 {
		c.NumParticles = DefaultNumParticles
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = c.NumParticles * DefaultAttemptsPerParticle
	}
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = ScreenWidth
	}
	return c
}

// Population is one atomically generated batch of particles. It is immutable
// once returned by Generate.
type Population struct {
	// Particles in acceptance order.
	Particles []Particle
	// Requested is the target size; len(Particles) may be smaller when the
	// attempt budget ran out.
	Requested int
	// Attempts is the number of candidate draws rejection sampling used.
	Attempts int

	byReveal []Particle // Particles sorted by RevealTime
}

// Len returns the number of accepted particles.
func (p Population) Len() int {
	return len(p.Particles)
}

// Short reports whether sampling stopped before reaching Requested.
func (p Population) Short() bool {
	return len(p.Particles) < p.Requested
}

// AcceptanceRate is accepted particles per candidate draw.
func (p Population) AcceptanceRate() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(len(p.Particles)) / float64(p.Attempts)
}

// Generate draws a population whose screen positions follow Intensity by
// rejection sampling: a candidate z is uniform over the screen width and is
// accepted when a uniform threshold falls below Intensity(z, p). Each accepted
// particle gets a reveal time uniform in [0, NumParticles/ParticleRate), so the
// expected reveal rate equals ParticleRate however many draws sampling took.
//
// p is expected to be validated. Exhausting MaxAttempts is not an error; the
// population is simply short.
func Generate(p PhysicsParams, src Source, cfg EmitterConfig) Population {
	cfg = cfg.withDefaults()

	duration := 0.0
	if p.ParticleRate > 0 {
		duration = float64(cfg.NumParticles) / p.ParticleRate
	}

	pop := Population{
		Particles: make([]Particle, 0, cfg.NumParticles),
		Requested: cfg.NumParticles,
	}
	half := cfg.ScreenWidth / 2
	for pop.Attempts < cfg.MaxAttempts && len(pop.Particles) < cfg.NumParticles {
		pop.Attempts++
		z := -half + src.Float64()*cfg.ScreenWidth
		if src.Float64() >= Intensity(z, p) {
			continue
		}
		pop.Particles = append(pop.Particles, Particle{
			Position:   Vec3{X: p.ScreenDistance, Y: 0, Z: z},
			RevealTime: src.Float64() * duration,
		})
	}

	pop.byReveal = make([]Particle, len(pop.Particles))
	copy(pop.byReveal, pop.Particles)
	sort.SliceStable(pop.byReveal, func(i, j int) bool {
		return pop.byReveal[i].RevealTime < pop.byReveal[j].RevealTime
	})
	return pop
}

// GenerateWithSeed validates p and draws one population from the
// SubsystemParticles stream of seed.
func GenerateWithSeed(p PhysicsParams, seed int64, cfg EmitterConfig) Population {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return Generate(Validate(p), rng.ForSubsystem(SubsystemParticles), cfg)
}

// VisibleSubset returns the particles with RevealTime <= t, ordered by reveal
// time. For a fixed population the result only grows as t grows. The returned
// slice shares storage with the population and must not be modified.
func VisibleSubset(pop Population, t float64) []Particle {
	n := sort.Search(len(pop.byReveal), func(i int) bool {
		return pop.byReveal[i].RevealTime > t
	})
	return pop.byReveal[:n:n]
}
