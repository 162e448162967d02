package sim

import "time"

// ClockState is the logical state of a Clock.
type ClockState int

const (
	ClockRunning ClockState = iota
	ClockPaused
)

func (s ClockState) String() string {
	if s == ClockPaused {
		return "paused"
	}
	return "running"
}

// Clock accumulates simulation time from wall-clock ticks.
//
// Each running tick advances simulation time by the wall-clock delta since the
// previous tick times the current time scale. The first tick after a reset or
// after leaving the paused state contributes nothing, so time spent paused
// never shows up as a jump.
//
// Thread-safety: NOT thread-safe. Owned by the Simulator and driven from the
// loop goroutine only.
type Clock struct {
	elapsed float64   // accumulated simulation seconds
	last    time.Time // wall-clock time of the previous running tick
	hasLast bool
	state   ClockState
}

// NewClock returns a running clock at simulation time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Tick advances the clock for one frame and returns the simulation-time delta
// that was applied. timeScale is read fresh on every call.
func (c *Clock) Tick(now time.Time, timeScale float64, paused bool) float64 {
	if paused {
		c.state = ClockPaused
		c.hasLast = false
		return 0
	}
	c.state = ClockRunning

	if !c.hasLast {
		c.last = now
		c.hasLast = true
		return 0
	}

	wall := now.Sub(c.last).Seconds()
	c.last = now
	// A wall clock stepping backwards must not rewind simulation time.
	if wall <= 0 || timeScale <= 0 {
		return 0
	}
	delta := wall * timeScale
	c.elapsed += delta
	return delta
}

// Reset returns the clock to simulation time zero and forgets the last tick.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.hasLast = false
}

// Elapsed returns the accumulated simulation time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// State returns whether the most recent tick was running or paused.
func (c *Clock) State() ClockState {
	return c.state
}
