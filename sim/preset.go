package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slitsim/slitsim/sim/trace"
)

// Preset holds a session configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; they do not override CLI
// defaults. Physical parameters are never rejected here: out-of-range values
// are repaired by Validate when the preset is applied.
type Preset struct {
	Params       ParamsDelta `yaml:"params"`
	Seed         *int64      `yaml:"seed"`
	NumParticles *int        `yaml:"num_particles"`
	MaxAttempts  *int        `yaml:"max_attempts"`
	FPS          *int        `yaml:"fps"`
	Trace        string      `yaml:"trace"`
}

// LoadPreset reads and parses a YAML preset file.
// Uses strict field checking: unknown keys are errors so typos surface.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}
	var preset Preset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&preset); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}
	return &preset, nil
}

// Validate checks the non-physical settings of the preset. Physical
// parameters are repaired rather than rejected and are not checked here.
func (p *Preset) Validate() error {
	if p.NumParticles != nil && *p.NumParticles <= 0 {
		return fmt.Errorf("num_particles must be positive, got %d", *p.NumParticles)
	}
	if p.MaxAttempts != nil && *p.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be non-negative, got %d", *p.MaxAttempts)
	}
	if p.FPS != nil && *p.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *p.FPS)
	}
	if !trace.IsValidTraceLevel(p.Trace) {
		return fmt.Errorf("unknown trace level %q", p.Trace)
	}
	return nil
}
