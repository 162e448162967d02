package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/slitsim/slitsim/sim"
)

// MaxClicksPerFrame caps how many clicks one frame may start, so a burst of
// reveals after a long frame does not saturate the output.
const MaxClicksPerFrame = 8

// HitCounter tracks which visible particles have already been reported. It
// starts over when the population is regenerated or the clock is reset.
type HitCounter struct {
	generation int
	seen       int
}

// Observe returns the particles that became visible since the previous frame.
func (h *HitCounter) Observe(f sim.Frame) []sim.Particle {
	if f.Generation != h.generation || len(f.Visible) < h.seen {
		h.generation = f.Generation
		h.seen = 0
	}
	fresh := f.Visible[h.seen:]
	h.seen = len(f.Visible)
	return fresh
}

// Player clicks through the system speaker as particles are revealed.
// OnFrame may be called from the simulation loop goroutine.
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	hits        HitCounter
	initialized bool
}

// NewPlayer creates a player; call Initialize before any sound is produced.
func NewPlayer(cfg Config) *Player {
	return &Player{cfg: cfg.withDefaults(), mixer: &beep.Mixer{}}
}

// Initialize opens the speaker with a 100ms buffer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.cfg.SampleRate, p.cfg.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	logrus.Debugf("audio initialized at %d Hz", p.cfg.SampleRate)
	return nil
}

// OnFrame starts a click for every particle revealed since the last frame,
// up to MaxClicksPerFrame. It returns the number of clicks started.
func (p *Player) OnFrame(f sim.Frame) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	fresh := p.hits.Observe(f)
	if !p.initialized || len(fresh) == 0 {
		return 0
	}
	if len(fresh) > MaxClicksPerFrame {
		fresh = fresh[len(fresh)-MaxClicksPerFrame:]
	}
	speaker.Lock()
	for _, pt := range fresh {
		p.mixer.Add(NewClick(pt.Position.Z, p.cfg))
	}
	speaker.Unlock()
	return len(fresh)
}

// Close silences pending clicks and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
