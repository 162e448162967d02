package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/slitsim/slitsim/sim"
)

// Action is a non-parameter outcome of a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReset
)

// Step sizes for the parameter keys.
const (
	WavelengthStep     = 0.05
	SeparationStep     = 0.25
	WidthStep          = 0.05
	DistanceStep       = 1.0
	TimeScaleFactor    = 1.5
	ParticleRateFactor = 2.0
)

// KeyHelp lists the bindings handled by KeyAction.
const KeyHelp = "space pause · p particles · w waves · r reset · +/- λ · ]/[ d · }/{ w · >/< D · * / speed · f/F rate · q quit"

// Edit computes a parameter delta from the parameters current when it runs.
// Edits are evaluated on the loop goroutine so key presses within one frame
// build on each other.
type Edit func(sim.PhysicsParams) sim.ParamsDelta

func toggle(field func(*sim.ParamsDelta, *bool), get func(sim.PhysicsParams) bool) Edit {
	return func(p sim.PhysicsParams) sim.ParamsDelta {
		var d sim.ParamsDelta
		field(&d, sim.BoolPtr(!get(p)))
		return d
	}
}

func adjust(field func(*sim.ParamsDelta, *float64), next func(sim.PhysicsParams) float64) Edit {
	return func(p sim.PhysicsParams) sim.ParamsDelta {
		var d sim.ParamsDelta
		field(&d, sim.Float64Ptr(next(p)))
		return d
	}
}

func setPaused(d *sim.ParamsDelta, v *bool)       { d.IsPaused = v }
func setParticleMode(d *sim.ParamsDelta, v *bool) { d.ParticleMode = v }
func setShowWaves(d *sim.ParamsDelta, v *bool)    { d.ShowWaves = v }
func setWavelength(d *sim.ParamsDelta, v *float64) { d.Wavelength = v }
func setSeparation(d *sim.ParamsDelta, v *float64) { d.SlitSeparation = v }
func setWidth(d *sim.ParamsDelta, v *float64)      { d.SlitWidth = v }
func setDistance(d *sim.ParamsDelta, v *float64)   { d.ScreenDistance = v }
func setTimeScale(d *sim.ParamsDelta, v *float64)  { d.TimeScale = v }
func setRate(d *sim.ParamsDelta, v *float64)       { d.ParticleRate = v }

// KeyAction translates a key press into an Edit or an Action. A nil Edit means
// the key changes no parameter. Steps may push a value out of range; the
// simulator repairs it.
func KeyAction(ev *tcell.EventKey) (Edit, Action) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, ActionQuit
	case tcell.KeyRune:
	default:
		return nil, ActionNone
	}

	switch ev.Rune() {
	case 'q':
		return nil, ActionQuit
	case 'r':
		return nil, ActionReset
	case ' ':
		return toggle(setPaused, func(p sim.PhysicsParams) bool { return p.IsPaused }), ActionNone
	case 'p':
		return toggle(setParticleMode, func(p sim.PhysicsParams) bool { return p.ParticleMode }), ActionNone
	case 'w':
		return toggle(setShowWaves, func(p sim.PhysicsParams) bool { return p.ShowWaves }), ActionNone
	case '+', '=':
		return adjust(setWavelength, func(p sim.PhysicsParams) float64 { return p.Wavelength + WavelengthStep }), ActionNone
	case '-', '_':
		return adjust(setWavelength, func(p sim.PhysicsParams) float64 { return p.Wavelength - WavelengthStep }), ActionNone
	case ']':
		return adjust(setSeparation, func(p sim.PhysicsParams) float64 { return p.SlitSeparation + SeparationStep }), ActionNone
	case '[':
		return adjust(setSeparation, func(p sim.PhysicsParams) float64 { return p.SlitSeparation - SeparationStep }), ActionNone
	case '}':
		return adjust(setWidth, func(p sim.PhysicsParams) float64 { return p.SlitWidth + WidthStep }), ActionNone
	case '{':
		return adjust(setWidth, func(p sim.PhysicsParams) float64 { return p.SlitWidth - WidthStep }), ActionNone
	case '>', '.':
		return adjust(setDistance, func(p sim.PhysicsParams) float64 { return p.ScreenDistance + DistanceStep }), ActionNone
	case '<', ',':
		return adjust(setDistance, func(p sim.PhysicsParams) float64 { return p.ScreenDistance - DistanceStep }), ActionNone
	case '*':
		return adjust(setTimeScale, func(p sim.PhysicsParams) float64 { return p.TimeScale * TimeScaleFactor }), ActionNone
	case '/':
		return adjust(setTimeScale, func(p sim.PhysicsParams) float64 { return p.TimeScale / TimeScaleFactor }), ActionNone
	case 'f':
		return adjust(setRate, func(p sim.PhysicsParams) float64 { return p.ParticleRate * ParticleRateFactor }), ActionNone
	case 'F':
		return adjust(setRate, func(p sim.PhysicsParams) float64 { return p.ParticleRate / ParticleRateFactor }), ActionNone
	}
	return nil, ActionNone
}
