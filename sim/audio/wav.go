package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"

	"github.com/slitsim/slitsim/sim"
)

// WriteWAV encodes the click track of particles as 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, particles []sim.Particle, timeScale float64, cfg Config) error {
	cfg = cfg.withDefaults()
	format := beep.Format{SampleRate: cfg.SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, NewClickTrack(particles, timeScale, cfg), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return nil
}

// WriteWAVFile writes the click track to path, creating or truncating it.
func WriteWAVFile(path string, particles []sim.Particle, timeScale float64, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	if err := WriteWAV(f, particles, timeScale, cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing wav file: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"path":   path,
		"clicks": len(particles),
	}).Info("Click track saved")
	return nil
}
