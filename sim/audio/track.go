package audio

import (
	"math"
	"sort"

	"github.com/gopxl/beep"

	"github.com/slitsim/slitsim/sim"
)

// clickTrack plays one click per particle at its reveal time, mixing clicks
// that overlap.
type clickTrack struct {
	cfg    Config
	starts []int     // click start offsets in samples, ascending
	zs     []float64 // screen position per click
	next   int
	pos    int
	total  int
	mixer  *beep.Mixer
}

// NewClickTrack renders the reveal schedule of particles as audio. A particle
// revealed at simulation time t clicks at wall time t / timeScale, so the
// track sounds the way a live session at that time scale would.
func NewClickTrack(particles []sim.Particle, timeScale float64, cfg Config) beep.Streamer {
	cfg = cfg.withDefaults()
	if timeScale <= 0 || math.IsNaN(timeScale) {
		timeScale = 1
	}

	sorted := make([]sim.Particle, len(particles))
	copy(sorted, particles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RevealTime < sorted[j].RevealTime })

	t := &clickTrack{
		cfg:    cfg,
		starts: make([]int, len(sorted)),
		zs:     make([]float64, len(sorted)),
		mixer:  &beep.Mixer{},
	}
	for i, pt := range sorted {
		t.starts[i] = int(math.Round(pt.RevealTime / timeScale * float64(cfg.SampleRate)))
		t.zs[i] = pt.Position.Z
	}
	if len(sorted) > 0 {
		t.total = t.starts[len(sorted)-1] + cfg.SampleRate.N(cfg.ClickDuration)
	}
	return t
}

// Len is the track length in samples.
func (t *clickTrack) Len() int {
	return t.total
}

func (t *clickTrack) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for n < len(samples) && t.pos < t.total {
		for t.next < len(t.starts) && t.starts[t.next] <= t.pos {
			t.mixer.Add(NewClick(t.zs[t.next], t.cfg))
			t.next++
		}
		end := min(len(samples), n+t.total-t.pos)
		if t.next < len(t.starts) {
			end = min(end, n+t.starts[t.next]-t.pos)
		}
		clear(samples[n:end])
		t.mixer.Stream(samples[n:end])
		t.pos += end - n
		n = end
	}
	return n, true
}

func (t *clickTrack) Err() error { return nil }
