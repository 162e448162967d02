package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slitsim/slitsim/sim"
	"github.com/slitsim/slitsim/sim/trace"
)

var (
	// Physical parameters; defaults match sim.DefaultParams
	wavelength     float64 // Wavelength in μm
	slitSeparation float64 // Slit centre-to-centre distance in μm
	slitWidth      float64 // Width of each slit in μm
	screenDistance float64 // Barrier to screen distance in μm
	amplitude      float64 // Wave amplitude
	waveSpeed      float64 // Wave speed relative to c
	particleRate   float64 // Particles revealed per simulated second
	timeScale      float64 // Simulated seconds per wall-clock second
	showWaves      bool    // Draw the wave field
	particleMode   bool    // Start in particle mode
	startPaused    bool    // Start paused

	// Session settings
	configPath   string // Optional YAML preset
	seed         int64  // Seed for particle generation
	numParticles int    // Particles per population
	maxAttempts  int    // Rejection sampling budget (0 = particles × 200)
	fps          int    // Frames per second
	logLevel     string // Log verbosity level
	traceLevel   string // Event trace level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "slitsim",
	Short: "Double-slit interference and particle buildup simulator",
}

// session is everything resolved from defaults, preset and flags.
type session struct {
	Config sim.SimConfig
	FPS    int
}

// setupLogging applies --log.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveSession builds the session configuration. Precedence, lowest first:
// built-in defaults, the --config preset, then flags the user set explicitly.
// changed reports whether a flag was set on the command line.
func resolveSession(changed func(string) bool) (session, error) {
	params := sim.DefaultParams()
	s := session{
		Config: sim.SimConfig{Seed: seed},
		FPS:    fps,
	}
	emitter := sim.EmitterConfig{NumParticles: numParticles, MaxAttempts: maxAttempts}
	level := traceLevel

	if configPath != "" {
		preset, err := sim.LoadPreset(configPath)
		if err != nil {
			return session{}, err
		}
		if err := preset.Validate(); err != nil {
			return session{}, fmt.Errorf("invalid preset %s: %w", configPath, err)
		}
		params = params.Apply(preset.Params)
		if preset.Seed != nil && !changed("seed") {
			s.Config.Seed = *preset.Seed
		}
		if preset.NumParticles != nil && !changed("particles") {
			emitter.NumParticles = *preset.NumParticles
		}
		if preset.MaxAttempts != nil && !changed("max-attempts") {
			emitter.MaxAttempts = *preset.MaxAttempts
		}
		if preset.FPS != nil && !changed("fps") {
			s.FPS = *preset.FPS
		}
		if preset.Trace != "" && !changed("trace") {
			level = preset.Trace
		}
		logrus.Infof("Loaded preset %s", configPath)
	}

	params = params.Apply(flagDelta(changed))

	if emitter.NumParticles <= 0 {
		return session{}, fmt.Errorf("--particles must be positive, got %d", emitter.NumParticles)
	}
	if emitter.MaxAttempts < 0 {
		return session{}, fmt.Errorf("--max-attempts must be non-negative, got %d", emitter.MaxAttempts)
	}
	if s.FPS <= 0 {
		return session{}, fmt.Errorf("--fps must be positive, got %d", s.FPS)
	}
	if !trace.IsValidTraceLevel(level) {
		return session{}, fmt.Errorf("unknown trace level %q", level)
	}

	s.Config.Params = params
	s.Config.Emitter = emitter
	s.Config.Trace = trace.TraceConfig{Level: trace.TraceLevel(level)}
	return s, nil
}

// flagDelta collects the physical parameter flags the user set explicitly.
func flagDelta(changed func(string) bool) sim.ParamsDelta {
	var d sim.ParamsDelta
	floats := []struct {
		name string
		val  float64
		dst  **float64
	}{
		{"wavelength", wavelength, &d.Wavelength},
		{"slit-separation", slitSeparation, &d.SlitSeparation},
		{"slit-width", slitWidth, &d.SlitWidth},
		{"screen-distance", screenDistance, &d.ScreenDistance},
		{"amplitude", amplitude, &d.Amplitude},
		{"wave-speed", waveSpeed, &d.WaveSpeed},
		{"particle-rate", particleRate, &d.ParticleRate},
		{"time-scale", timeScale, &d.TimeScale},
	}
	for _, f := range floats {
		if changed(f.name) {
			*f.dst = sim.Float64Ptr(f.val)
		}
	}
	bools := []struct {
		name string
		val  bool
		dst  **bool
	}{
		{"show-waves", showWaves, &d.ShowWaves},
		{"particle-mode", particleMode, &d.ParticleMode},
		{"paused", startPaused, &d.IsPaused},
	}
	for _, f := range bools {
		if changed(f.name) {
			*f.dst = sim.BoolPtr(f.val)
		}
	}
	return d
}

// mustSession resolves the session for cmd or exits.
func mustSession(cmd *cobra.Command) session {
	setupLogging()
	s, err := resolveSession(cmd.Flags().Changed)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return s
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultParams()
	pf := rootCmd.PersistentFlags()

	pf.Float64Var(&wavelength, "wavelength", defaults.Wavelength, "Wavelength λ in μm")
	pf.Float64Var(&slitSeparation, "slit-separation", defaults.SlitSeparation, "Slit centre-to-centre distance d in μm")
	pf.Float64Var(&slitWidth, "slit-width", defaults.SlitWidth, "Slit width w in μm (kept below d)")
	pf.Float64Var(&screenDistance, "screen-distance", defaults.ScreenDistance, "Barrier to screen distance D in μm")
	pf.Float64Var(&amplitude, "amplitude", defaults.Amplitude, "Wave amplitude")
	pf.Float64Var(&waveSpeed, "wave-speed", defaults.WaveSpeed, "Wave speed relative to c")
	pf.Float64Var(&particleRate, "particle-rate", defaults.ParticleRate, "Particles revealed per simulated second")
	pf.Float64Var(&timeScale, "time-scale", defaults.TimeScale, "Simulated seconds per wall-clock second")
	pf.BoolVar(&showWaves, "show-waves", defaults.ShowWaves, "Draw the wave field")
	pf.BoolVar(&particleMode, "particle-mode", defaults.ParticleMode, "Start in particle mode")
	pf.BoolVar(&startPaused, "paused", defaults.IsPaused, "Start paused")

	pf.StringVar(&configPath, "config", "", "Path to a YAML preset (flags set explicitly take precedence)")
	pf.Int64Var(&seed, "seed", 42, "Seed for particle generation")
	pf.IntVar(&numParticles, "particles", sim.DefaultNumParticles, "Particles per population")
	pf.IntVar(&maxAttempts, "max-attempts", 0, "Rejection sampling budget per population (0 = particles × 200)")
	pf.IntVar(&fps, "fps", sim.DefaultFPS, "Frames per second")
	pf.StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.StringVar(&traceLevel, "trace", "none", "Event trace level (none, events)")

	rootCmd.AddCommand(runCmd, liveCmd, profileCmd, reportCmd, clicksCmd)
}
