// Package audio sonifies particle detections: every hit on the screen is a
// short click whose pitch falls off toward the screen edges. Clicks can be
// rendered to a WAV file or played live through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/slitsim/slitsim/sim"
)

const (
	// DefaultSampleRate is used when Config.SampleRate is unset.
	DefaultSampleRate = beep.SampleRate(44100)
	// DefaultClickDuration is the length of one detector click.
	DefaultClickDuration = 15 * time.Millisecond
	clickAttack          = time.Millisecond

	// centreFrequency is the pitch of a hit at z = 0; edgeFrequency at |z| = ScreenWidth/2.
	centreFrequency = 1320.0
	edgeFrequency   = 440.0
)

// Config controls click synthesis.
type Config struct {
	SampleRate    beep.SampleRate
	ClickDuration time.Duration
	Volume        float64 // linear gain in [0, 1]; 0 means DefaultVolume
}

// DefaultVolume is the click gain used when Config.Volume is unset.
const DefaultVolume = 0.5

func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.ClickDuration <= 0 {
		c.ClickDuration = DefaultClickDuration
	}
	if c.Volume <= 0 {
		c.Volume = DefaultVolume
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	return c
}

// oscillator generates a sine tone of fixed length.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay shapes a stream with a linear attack followed by an exponential fall.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	tau      float64 // samples per e-fold after the attack
}

func newDecay(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	att := rate.N(attack)
	tail := rate.N(duration) - att
	if tail < 1 {
		tail = 1
	}
	return &decay{streamer: s, attack: att, tau: float64(tail) / 5}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if d.position < d.attack {
			vol = float64(d.position) / float64(d.attack)
		} else {
			vol = math.Exp(-float64(d.position-d.attack) / d.tau)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume applies a linear gain; effects.Volume works in log2 units.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ClickFrequency maps a screen position to a click pitch, highest at the
// centre and falling linearly to the screen edge.
func ClickFrequency(z float64) float64 {
	frac := math.Abs(z) / (sim.ScreenWidth / 2)
	if frac > 1 {
		frac = 1
	}
	return centreFrequency - (centreFrequency-edgeFrequency)*frac
}

// NewClick returns one detector click for a hit at screen position z.
func NewClick(z float64, cfg Config) beep.Streamer {
	cfg = cfg.withDefaults()
	osc := newOscillator(ClickFrequency(z), cfg.ClickDuration, cfg.SampleRate)
	shaped := newDecay(osc, cfg.ClickDuration, clickAttack, cfg.SampleRate)
	return newVolume(shaped, cfg.Volume)
}
