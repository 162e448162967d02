// sim/simulator.go
package sim

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/slitsim/slitsim/sim/trace"
)

// SimConfig groups everything needed to construct a Simulator.
type SimConfig struct {
	Params  PhysicsParams     // initial parameters; validated by NewSimulator
	Seed    int64             // master seed for particle generation
	Emitter EmitterConfig     // population sizing (zero value = defaults)
	Trace   trace.TraceConfig // event tracing (zero value = disabled)
}

// Frame is the immutable snapshot published after every tick. All consumers
// of one tick see the same Frame.
type Frame struct {
	Index      int64   // tick counter, starting at 1
	SimTime    float64 // accumulated simulation seconds after this tick
	Delta      float64 // simulation seconds this tick added
	State      ClockState
	Params     PhysicsParams
	Generation int // index of the current particle population, 0 if none was generated
	Population int // particles in the current population
	Visible    []Particle
}

type subscriber struct {
	id int
	fn func(Frame)
}

// Simulator is the single coordinating owner of validated parameters, the
// simulation clock and the particle population. Display consumers never mutate
// it directly: they receive Frames and send updates through Update, Replace and
// Reset (usually via a Loop).
//
// Thread-safety: NOT thread-safe. All calls must come from one goroutine.
type Simulator struct {
	params     PhysicsParams
	clock      *Clock
	rng        *PartitionedRNG
	emitter    EmitterConfig
	population Population
	visible    []Particle
	generation int
	frame      int64

	// Trace is nil unless SimConfig.Trace enables it.
	Trace *trace.SimulationTrace

	subscribers []subscriber
	nextSubID   int
}

// NewSimulator validates cfg.Params and, when particle mode starts enabled,
// generates the first population.
func NewSimulator(cfg SimConfig) *Simulator {
	s := &Simulator{
		clock:   NewClock(),
		rng:     NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		emitter: cfg.Emitter.withDefaults(),
	}
	if cfg.Trace.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	s.apply(cfg.Params)
	return s
}

// Params returns the current validated parameters.
func (s *Simulator) Params() PhysicsParams {
	return s.params
}

// Elapsed returns the current simulation time in seconds.
func (s *Simulator) Elapsed() float64 {
	return s.clock.Elapsed()
}

// Visible returns the particles revealed so far. Must not be modified.
func (s *Simulator) Visible() []Particle {
	return s.visible
}

// Population returns the current particle population (empty outside particle mode).
func (s *Simulator) Population() Population {
	return s.population
}

// Generation returns how many populations have been generated so far.
func (s *Simulator) Generation() int {
	return s.generation
}

// Update merges a partial delta onto the current validated parameters.
func (s *Simulator) Update(delta ParamsDelta) {
	s.apply(s.params.Apply(delta))
}

// Replace swaps in a complete parameter set.
func (s *Simulator) Replace(p PhysicsParams) {
	s.apply(p)
}

// Reset returns simulation time to zero. The population is kept; its visible
// subset restarts from the beginning of its reveal schedule.
func (s *Simulator) Reset() {
	s.clock.Reset()
	s.refreshVisible()
	logrus.Debugf("[frame %06d] clock reset", s.frame)
}

// Tick advances the clock from the wall-clock timestamp now, recomputes the
// visible particles and publishes the resulting Frame to every subscriber.
// The clock always advances before any subscriber runs.
func (s *Simulator) Tick(now time.Time) Frame {
	delta := s.clock.Tick(now, s.params.TimeScale, s.params.IsPaused)
	s.frame++
	s.refreshVisible()

	f := Frame{
		Index:      s.frame,
		SimTime:    s.clock.Elapsed(),
		Delta:      delta,
		State:      s.clock.State(),
		Params:     s.params,
		Generation: s.generation,
		Population: s.population.Len(),
		Visible:    s.visible,
	}
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	for _, sub := range subs {
		sub.fn(f)
	}
	return f
}

// Subscribe registers fn to receive every published Frame. The returned
// function removes the subscription.
func (s *Simulator) Subscribe(fn func(Frame)) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// apply validates next and swaps it in, regenerating or clearing the particle
// population when the transition calls for it.
func (s *Simulator) apply(next PhysicsParams) {
	validated, repairs := ValidateWithRepairs(next)
	for _, r := range repairs {
		logrus.Warnf("[frame %06d] parameter %s=%v repaired to %v (%s)", s.frame, r.Field, r.Input, r.Output, r.Rule)
		if s.Trace != nil {
			s.Trace.RecordRepair(trace.RepairRecord{
				Frame: s.frame, Field: r.Field, Input: r.Input, Output: r.Output, Rule: string(r.Rule),
			})
		}
	}

	prev := s.params
	s.params = validated

	switch {
	case validated.ParticleMode && !prev.ParticleMode:
		s.regenerate(trace.ReasonModeEnabled)
	case validated.ParticleMode && emissionChanged(prev, validated):
		s.regenerate(trace.ReasonParamsChanged)
	case !validated.ParticleMode && prev.ParticleMode:
		s.population = Population{}
		s.visible = nil
		logrus.Debugf("[frame %06d] particle mode disabled, population cleared", s.frame)
	}
}

// regenerate discards the current population and draws a new one from a
// fresh per-generation RNG stream, restarting the clock so the new reveal
// schedule begins at zero.
func (s *Simulator) regenerate(reason trace.RegenerationReason) {
	s.generation++
	name := SubsystemGeneration(s.generation)
	pop := Generate(s.params, s.rng.ForSubsystem(name), s.emitter)
	s.rng.Release(name)

	s.population = pop
	s.clock.Reset()
	s.refreshVisible()

	if pop.Short() {
		logrus.Warnf("[frame %06d] generation %d: only %d of %d particles accepted after %d attempts",
			s.frame, s.generation, pop.Len(), pop.Requested, pop.Attempts)
	}
	logrus.Debugf("[frame %06d] generation %d (%s): %d particles, %d attempts",
		s.frame, s.generation, reason, pop.Len(), pop.Attempts)

	if s.Trace != nil {
		s.Trace.RecordRegeneration(trace.RegenerationRecord{
			Generation: s.generation,
			Frame:      s.frame,
			Reason:     reason,
			Requested:  pop.Requested,
			Accepted:   pop.Len(),
			Attempts:   pop.Attempts,
		})
	}
}

func (s *Simulator) refreshVisible() {
	if !s.params.ParticleMode {
		s.visible = nil
		return
	}
	s.visible = VisibleSubset(s.population, s.clock.Elapsed())
}
