package sim

import "time"

// TimeProvider supplies the wall-clock timestamps a Loop feeds to the
// Simulator. Tests substitute a manually advanced provider.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock, which carries a monotonic
// reading so deltas are immune to wall-clock adjustments.
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// SyntheticTimeProvider returns evenly spaced timestamps, one step per call.
// Used for headless runs that must be reproducible regardless of how fast the
// host executes them.
type SyntheticTimeProvider struct {
	next time.Time
	step time.Duration
}

// NewSyntheticTimeProvider starts at start and advances by step on each Now.
func NewSyntheticTimeProvider(start time.Time, step time.Duration) *SyntheticTimeProvider {
	return &SyntheticTimeProvider{next: start, step: step}
}

// Now returns the next timestamp in the sequence.
func (p *SyntheticTimeProvider) Now() time.Time {
	t := p.next
	p.next = p.next.Add(p.step)
	return t
}
