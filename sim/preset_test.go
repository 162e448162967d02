package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slitsim/slitsim/sim/trace"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPreset_Valid(t *testing.T) {
	path := writeTempYAML(t, `
params:
  wavelength: 0.7
  particle_mode: true
seed: 99
num_particles: 250
trace: events
`)
	preset, err := LoadPreset(path)
	require.NoError(t, err)
	require.NoError(t, preset.Validate())

	require.NotNil(t, preset.Params.Wavelength)
	assert.Equal(t, 0.7, *preset.Params.Wavelength)
	assert.True(t, *preset.Params.ParticleMode)
	assert.Nil(t, preset.Params.SlitSeparation, "unset fields stay nil")
	assert.Equal(t, int64(99), *preset.Seed)
	assert.Equal(t, 250, *preset.NumParticles)
	assert.Nil(t, preset.FPS)
	assert.Equal(t, trace.TraceLevelEvents, trace.TraceLevel(preset.Trace))
}

func TestLoadPreset_OutOfRangeParamsAreNotRejected(t *testing.T) {
	// GIVEN a preset with a negative wavelength
	path := writeTempYAML(t, "params:\n  wavelength: -3\n")

	// WHEN loaded and validated
	preset, err := LoadPreset(path)
	require.NoError(t, err)
	require.NoError(t, preset.Validate())

	// THEN the repair happens when the params are applied
	p := Validate(DefaultParams().Apply(preset.Params))
	assert.Equal(t, 0.1, p.Wavelength)
}

func TestLoadPreset_UnknownFieldRejected(t *testing.T) {
	path := writeTempYAML(t, "params:\n  wavelenght: 0.7\n")
	_, err := LoadPreset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing preset")
}

func TestLoadPreset_MissingFile(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading preset")
}

func TestPreset_Validate(t *testing.T) {
	intp := func(v int) *int { return &v }
	tests := []struct {
		name    string
		preset  Preset
		wantErr string
	}{
		{"empty", Preset{}, ""},
		{"zero particles", Preset{NumParticles: intp(0)}, "num_particles"},
		{"negative attempts", Preset{MaxAttempts: intp(-1)}, "max_attempts"},
		{"zero attempts means default", Preset{MaxAttempts: intp(0)}, ""},
		{"zero fps", Preset{FPS: intp(0)}, "fps"},
		{"bad trace", Preset{Trace: "verbose"}, "trace level"},
		{"none trace", Preset{Trace: "none"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.preset.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
