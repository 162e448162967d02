package sim

import (
	"sync"
	"time"
)

var simEpoch = time.Unix(1_800_000_000, 0)

// tickEvery ticks s n times at a fixed wall-clock step after start and
// returns the last frame.
func tickEvery(s *Simulator, start time.Time, step time.Duration, n int) (Frame, time.Time) {
	var f Frame
	now := start
	for i := 0; i < n; i++ {
		f = s.Tick(now)
		now = now.Add(step)
	}
	return f, now
}

// particleParams is the classroom configuration with particle mode on.
func particleParams() PhysicsParams {
	p := scenarioParams()
	p.ParticleMode = true
	return p
}

// frameRecorder collects frames delivered on any goroutine.
type frameRecorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *frameRecorder) record(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *frameRecorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *frameRecorder) last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// manualTimeProvider is advanced by the test; safe for use from the loop goroutine.
type manualTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func (m *manualTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
