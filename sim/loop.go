package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrLoopRunning is returned by Run when the loop is already running.
var ErrLoopRunning = errors.New("sim: loop already running")

// DefaultFPS is the tick rate used when a Loop is created with fps <= 0.
const DefaultFPS = 60

// commandBuffer is the mailbox capacity between input handlers and the loop.
const commandBuffer = 64

// Command mutates the Simulator. Commands run on the loop goroutine, between
// ticks, never concurrently with a Tick.
type Command func(*Simulator)

// Loop drives a Simulator from a ticker: one tick advances the clock, then
// recomputes particle visibility, then publishes the Frame. Parameter updates
// and resets posted from other goroutines are queued and applied between
// ticks, so the loop goroutine is the Simulator's only mutator.
type Loop struct {
	sim      *Simulator
	interval time.Duration
	time     TimeProvider

	commands chan Command
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	running  atomic.Bool

	tickCount atomic.Int64
}

// NewLoop creates a loop ticking s at fps frames per second using tp for
// timestamps. A nil tp uses the monotonic system clock.
func NewLoop(s *Simulator, fps int, tp TimeProvider) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &Loop{
		sim:      s,
		interval: time.Second / time.Duration(fps),
		time:     tp,
		commands: make(chan Command, commandBuffer),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled or Stop is called. It returns nil after
// Stop and ctx.Err() after cancellation. The ticker is released before Run
// returns.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	logrus.Debugf("frame loop started at %v per tick", l.interval)
	for {
		select {
		case <-ctx.Done():
			logrus.Debugf("frame loop cancelled after %d ticks", l.tickCount.Load())
			return ctx.Err()
		case <-l.stopChan:
			logrus.Debugf("frame loop stopped after %d ticks", l.tickCount.Load())
			return nil
		case cmd := <-l.commands:
			cmd(l.sim)
		case <-ticker.C:
			l.drain()
			l.sim.Tick(l.time.Now())
			l.tickCount.Add(1)
		}
	}
}

// drain applies every queued command so a tick never observes half of a burst
// of updates.
func (l *Loop) drain() {
	for {
		select {
		case cmd := <-l.commands:
			cmd(l.sim)
		default:
			return
		}
	}
}

// Post queues cmd for the loop goroutine. It returns false once the loop has
// been stopped.
func (l *Loop) Post(cmd Command) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.commands <- cmd:
		return true
	case <-l.stopChan:
		return false
	case <-l.done:
		return false
	}
}

// Update posts a partial parameter update.
func (l *Loop) Update(delta ParamsDelta) bool {
	return l.Post(func(s *Simulator) { s.Update(delta) })
}

// UpdateWith posts an update computed from the simulator's parameters at the
// time the command runs, so consecutive calls compose.
func (l *Loop) UpdateWith(fn func(PhysicsParams) ParamsDelta) bool {
	return l.Post(func(s *Simulator) { s.Update(fn(s.Params())) })
}

// Replace posts a full parameter replacement.
func (l *Loop) Replace(p PhysicsParams) bool {
	return l.Post(func(s *Simulator) { s.Replace(p) })
}

// Reset posts a clock reset.
func (l *Loop) Reset() bool {
	return l.Post(func(s *Simulator) { s.Reset() })
}

// Stop halts the loop and waits for Run to return. Safe to call more than once
// and before Run.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
	if l.running.Load() {
		<-l.done
	}
}

// Ticks returns how many ticks the loop has executed.
func (l *Loop) Ticks() int64 {
	return l.tickCount.Load()
}
