package sim

// PhysicsParams is the full parameter set consumed by the intensity model, the
// clock and the particle emitter. Values are replaced wholesale on every edit
// and must pass through Validate before reaching any consumer.
type PhysicsParams struct {
	Wavelength     float64 `yaml:"wavelength"`      // μm
	SlitSeparation float64 `yaml:"slit_separation"` // μm, centre to centre
	SlitWidth      float64 `yaml:"slit_width"`      // μm, must stay below SlitSeparation
	ScreenDistance float64 `yaml:"screen_distance"` // μm, barrier to detection screen
	Amplitude      float64 `yaml:"amplitude"`       // wave amplitude, dimensionless
	WaveSpeed      float64 `yaml:"wave_speed"`      // relative to c
	ParticleRate   float64 `yaml:"particle_rate"`   // particles per simulated second
	TimeScale      float64 `yaml:"time_scale"`      // simulation seconds per wall-clock second

	ShowWaves    bool `yaml:"show_waves"`
	ParticleMode bool `yaml:"particle_mode"`
	IsPaused     bool `yaml:"is_paused"`
}

// DefaultParams returns the parameters a session starts with.
func DefaultParams() PhysicsParams {
	return PhysicsParams{
		Wavelength:     0.5,
		SlitSeparation: 2.0,
		SlitWidth:      0.3,
		ScreenDistance: 10.0,
		Amplitude:      0.8,
		WaveSpeed:      1.0,
		ParticleRate:   100,
		TimeScale:      1.0,
		ShowWaves:      true,
		ParticleMode:   false,
		IsPaused:       false,
	}
}

// ParamsDelta is a partial parameter update. Nil fields mean "not set" and keep
// the previous value when merged with Apply.
type ParamsDelta struct {
	Wavelength     *float64 `yaml:"wavelength"`
	SlitSeparation *float64 `yaml:"slit_separation"`
	SlitWidth      *float64 `yaml:"slit_width"`
	ScreenDistance *float64 `yaml:"screen_distance"`
	Amplitude      *float64 `yaml:"amplitude"`
	WaveSpeed      *float64 `yaml:"wave_speed"`
	ParticleRate   *float64 `yaml:"particle_rate"`
	TimeScale      *float64 `yaml:"time_scale"`

	ShowWaves    *bool `yaml:"show_waves"`
	ParticleMode *bool `yaml:"particle_mode"`
	IsPaused     *bool `yaml:"is_paused"`
}

// IsEmpty reports whether the delta sets no field at all.
func (d ParamsDelta) IsEmpty() bool {
	return d == ParamsDelta{}
}

// Apply returns a copy of p with every set field of d overwritten.
// The receiver is never modified.
func (p PhysicsParams) Apply(d ParamsDelta) PhysicsParams {
	next := p
	setFloat(&next.Wavelength, d.Wavelength)
	setFloat(&next.SlitSeparation, d.SlitSeparation)
	setFloat(&next.SlitWidth, d.SlitWidth)
	setFloat(&next.ScreenDistance, d.ScreenDistance)
	setFloat(&next.Amplitude, d.Amplitude)
	setFloat(&next.WaveSpeed, d.WaveSpeed)
	setFloat(&next.ParticleRate, d.ParticleRate)
	setFloat(&next.TimeScale, d.TimeScale)
	setBool(&next.ShowWaves, d.ShowWaves)
	setBool(&next.ParticleMode, d.ParticleMode)
	setBool(&next.IsPaused, d.IsPaused)
	return next
}

// Merge layers other on top of d: fields set in other win.
func (d ParamsDelta) Merge(other ParamsDelta) ParamsDelta {
	out := d
	pickFloat(&out.Wavelength, other.Wavelength)
	pickFloat(&out.SlitSeparation, other.SlitSeparation)
	pickFloat(&out.SlitWidth, other.SlitWidth)
	pickFloat(&out.ScreenDistance, other.ScreenDistance)
	pickFloat(&out.Amplitude, other.Amplitude)
	pickFloat(&out.WaveSpeed, other.WaveSpeed)
	pickFloat(&out.ParticleRate, other.ParticleRate)
	pickFloat(&out.TimeScale, other.TimeScale)
	pickBool(&out.ShowWaves, other.ShowWaves)
	pickBool(&out.ParticleMode, other.ParticleMode)
	pickBool(&out.IsPaused, other.IsPaused)
	return out
}

// emissionChanged reports whether any parameter that shapes a particle
// population differs between a and b.
func emissionChanged(a, b PhysicsParams) bool {
	return a.Wavelength != b.Wavelength ||
		a.SlitSeparation != b.SlitSeparation ||
		a.SlitWidth != b.SlitWidth ||
		a.ScreenDistance != b.ScreenDistance ||
		a.ParticleRate != b.ParticleRate
}

// Float64Ptr and BoolPtr are conveniences for building a ParamsDelta.
func Float64Ptr(v float64) *float64 { return &v }

func BoolPtr(v bool) *bool { return &v }

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func pickFloat(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func pickBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
