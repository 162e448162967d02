package sim

import "math"

// FieldBounds is the valid closed range of one numeric parameter.
type FieldBounds struct {
	Name string
	Min  float64
	Max  float64
	Unit string

	field func(*PhysicsParams) *float64
}

// Midpoint is the substitute used when a field arrives as NaN or ±Inf.
func (b FieldBounds) Midpoint() float64 {
	return (b.Min + b.Max) / 2
}

// ParamBounds lists every numeric parameter in declaration order.
var ParamBounds = []FieldBounds{
	{Name: "wavelength", Min: 0.1, Max: 2.0, Unit: "μm", field: func(p *PhysicsParams) *float64 { return &p.Wavelength }},
	{Name: "slit_separation", Min: 0.5, Max: 10.0, Unit: "μm", field: func(p *PhysicsParams) *float64 { return &p.SlitSeparation }},
	{Name: "slit_width", Min: 0.1, Max: 5.0, Unit: "μm", field: func(p *PhysicsParams) *float64 { return &p.SlitWidth }},
	{Name: "screen_distance", Min: 1.0, Max: 20.0, Unit: "μm", field: func(p *PhysicsParams) *float64 { return &p.ScreenDistance }},
	{Name: "amplitude", Min: 0.1, Max: 1.0, Unit: "", field: func(p *PhysicsParams) *float64 { return &p.Amplitude }},
	{Name: "wave_speed", Min: 0.1, Max: 10.0, Unit: "c", field: func(p *PhysicsParams) *float64 { return &p.WaveSpeed }},
	{Name: "particle_rate", Min: 10, Max: 1000, Unit: "particles/s", field: func(p *PhysicsParams) *float64 { return &p.ParticleRate }},
	{Name: "time_scale", Min: 0.1, Max: 5.0, Unit: "x", field: func(p *PhysicsParams) *float64 { return &p.TimeScale }},
}

// SlitWidthRepairRatio is the fraction of the slit separation a too-wide slit
// is shrunk to.
const SlitWidthRepairRatio = 0.8

// RepairRule names why a field was rewritten.
type RepairRule string

const (
	RepairNonFinite RepairRule = "non-finite"
	RepairClampLow  RepairRule = "clamp-min"
	RepairClampHigh RepairRule = "clamp-max"
	RepairSlitWidth RepairRule = "slit-width-exceeds-separation"
)

// Repair records one substitution made by the validator.
type Repair struct {
	Field  string
	Input  float64
	Output float64
	Rule   RepairRule
}

// Validate clamps every numeric field into ParamBounds, replaces non-finite
// values with the range midpoint, and then enforces SlitWidth < SlitSeparation.
// It never fails and Validate(Validate(p)) == Validate(p).
func Validate(p PhysicsParams) PhysicsParams {
	out, _ := ValidateWithRepairs(p)
	return out
}

// ValidateWithRepairs is Validate plus the list of substitutions it made, in
// the order they were applied. The list is empty for already-valid input.
func ValidateWithRepairs(p PhysicsParams) (PhysicsParams, []Repair) {
	out := p
	var repairs []Repair

	for _, b := range ParamBounds {
		v := b.field(&out)
		in := *v
		switch {
		case math.IsNaN(in) || math.IsInf(in, 0):
			*v = b.Midpoint()
			repairs = append(repairs, Repair{Field: b.Name, Input: in, Output: *v, Rule: RepairNonFinite})
		case in < b.Min:
			*v = b.Min
			repairs = append(repairs, Repair{Field: b.Name, Input: in, Output: *v, Rule: RepairClampLow})
		case in > b.Max:
			*v = b.Max
			repairs = append(repairs, Repair{Field: b.Name, Input: in, Output: *v, Rule: RepairClampHigh})
		}
	}

	// Runs after clamping so the ratio applies to the final separation.
	if out.SlitWidth >= out.SlitSeparation {
		in := out.SlitWidth
		out.SlitWidth = SlitWidthRepairRatio * out.SlitSeparation
		repairs = append(repairs, Repair{Field: "slit_width", Input: in, Output: out.SlitWidth, Rule: RepairSlitWidth})
	}

	return out, repairs
}
