// Package view draws simulation frames on a terminal with tcell: the barrier
// and its slits, the wave field between source and screen, and the detection
// screen as either a continuous intensity strip or accumulated particle hits.
package view

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/slitsim/slitsim/sim"
)

const (
	// ScreenColumns is the width of the detection strip on the right edge.
	ScreenColumns = 2
	// sourceFraction is how much of the barrier-to-screen distance is shown
	// left of the barrier.
	sourceFraction = 0.25
)

// shadeRamp orders glyphs from empty to dense.
var shadeRamp = []rune(" .:-=+*#%@")

var (
	barrierStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	screenStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hitStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	statusStyle  = tcell.StyleDefault.Reverse(true)
)

// Cell is one terminal character.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Raster is a frame laid out for a w×h terminal, row-major.
type Raster struct {
	W, H  int
	Cells []Cell
}

// At returns the cell at column x, row y.
func (r Raster) At(x, y int) Cell {
	return r.Cells[y*r.W+x]
}

func (r Raster) set(x, y int, c rune, style tcell.Style) {
	r.Cells[y*r.W+x] = Cell{Rune: c, Style: style}
}

// Row returns row y as a string.
func (r Raster) Row(y int) string {
	out := make([]rune, r.W)
	for x := range out {
		out[x] = r.At(x, y).Rune
	}
	return string(out)
}

// Layout maps terminal cells to physical coordinates.
type Layout struct {
	FieldCols  int     // columns left of the detection strip
	FieldRows  int     // rows above the status line
	BarrierCol int     // column containing x = 0
	XMin, XMax float64 // physical x range of the field columns
	DZ         float64 // physical height of one row
}

// NewLayout computes the cell mapping for a w×h terminal and screen distance.
func NewLayout(w, h int, screenDistance float64) Layout {
	l := Layout{
		FieldCols: max(w-ScreenColumns, 1),
		FieldRows: max(h-1, 1),
		XMin:      -sourceFraction * screenDistance,
		XMax:      screenDistance,
	}
	l.DZ = sim.ScreenWidth / float64(l.FieldRows)
	l.BarrierCol = int((0 - l.XMin) / (l.XMax - l.XMin) * float64(l.FieldCols))
	return l
}

// X returns the physical x at the centre of column c.
func (l Layout) X(c int) float64 {
	return l.XMin + (float64(c)+0.5)*(l.XMax-l.XMin)/float64(l.FieldCols)
}

// Z returns the physical z at the centre of row r; row 0 is the top edge.
func (l Layout) Z(r int) float64 {
	return sim.ScreenWidth/2 - (float64(r)+0.5)*l.DZ
}

// Row returns the row containing screen position z, clamped to the field.
func (l Layout) Row(z float64) int {
	r := int(math.Floor((sim.ScreenWidth/2 - z) / l.DZ))
	return min(max(r, 0), l.FieldRows-1)
}

// Rasterize lays f out on a w×h terminal. The bottom row is the status line.
func Rasterize(f sim.Frame, w, h int) Raster {
	r := Raster{W: w, H: h, Cells: make([]Cell, w*h)}
	for i := range r.Cells {
		r.Cells[i] = Cell{Rune: ' ', Style: tcell.StyleDefault}
	}
	if w <= ScreenColumns || h < 2 {
		return r
	}
	p := f.Params
	l := NewLayout(w, h, p.ScreenDistance)

	if p.ShowWaves {
		for row := 0; row < l.FieldRows; row++ {
			z := l.Z(row)
			for col := 0; col < l.FieldCols; col++ {
				v := sim.WaveHeight(l.X(col), z, f.SimTime, p)
				c, style := waveGlyph(v, p.Amplitude)
				r.set(col, row, c, style)
			}
		}
	}

	if l.BarrierCol < l.FieldCols {
		for row := 0; row < l.FieldRows; row++ {
			if barrierBlocks(l.Z(row), l.DZ, p) {
				r.set(l.BarrierCol, row, '█', barrierStyle)
			} else if !p.ShowWaves {
				r.set(l.BarrierCol, row, ' ', tcell.StyleDefault)
			}
		}
	}

	if p.ParticleMode {
		drawHits(r, l, f.Visible)
	} else {
		for row := 0; row < l.FieldRows; row++ {
			c := shade(sim.Intensity(l.Z(row), p))
			for col := l.FieldCols; col < w; col++ {
				r.set(col, row, c, screenStyle)
			}
		}
	}

	drawStatus(r, h-1, StatusLine(f))
	return r
}

// barrierBlocks reports whether a row of height dz centred on z is solid
// barrier. A row is open when its centre falls inside a slit or a slit centre
// falls inside the row, so slits narrower than a row stay visible.
func barrierBlocks(z, dz float64, p sim.PhysicsParams) bool {
	if !sim.OnBarrier(z, p) {
		return false
	}
	half := p.SlitSeparation / 2
	return math.Abs(z-half) > dz/2 && math.Abs(z+half) > dz/2
}

func drawHits(r Raster, l Layout, visible []sim.Particle) {
	counts := make([]int, l.FieldRows)
	peak := 0
	for _, pt := range visible {
		row := l.Row(pt.Position.Z)
		counts[row]++
		peak = max(peak, counts[row])
	}
	if peak == 0 {
		return
	}
	for row, n := range counts {
		if n == 0 {
			continue
		}
		c := shade(float64(n) / float64(peak))
		for col := l.FieldCols; col < r.W; col++ {
			r.set(col, row, c, hitStyle)
		}
	}
}

func drawStatus(r Raster, row int, text string) {
	runes := []rune(text)
	for col := 0; col < r.W; col++ {
		c := ' '
		if col < len(runes) {
			c = runes[col]
		}
		r.set(col, row, c, statusStyle)
	}
}

// shade maps v in [0, 1] onto shadeRamp. A positive v never maps to blank.
func shade(v float64) rune {
	if !(v > 0) {
		return shadeRamp[0]
	}
	i := int(math.Ceil(v * float64(len(shadeRamp)-1)))
	return shadeRamp[min(i, len(shadeRamp)-1)]
}

// waveGlyph renders crests bright blue and troughs dim.
func waveGlyph(v, amplitude float64) (rune, tcell.Style) {
	if amplitude <= 0 {
		return ' ', tcell.StyleDefault
	}
	level := v / amplitude
	g := int32(128 + 127*math.Max(-1, math.Min(1, level)))
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(g/3, g/2, g))
	return shade((level + 1) / 2), style
}

// StatusLine summarises a frame in one line.
func StatusLine(f sim.Frame) string {
	p := f.Params
	mode := "waves"
	if p.ParticleMode {
		mode = fmt.Sprintf("particles %d/%d gen %d", len(f.Visible), f.Population, f.Generation)
	}
	return fmt.Sprintf(" λ=%.2f d=%.2f w=%.2f D=%.1f │ t=%.2fs ×%.1f %s │ %s │ fringe %.2f",
		p.Wavelength, p.SlitSeparation, p.SlitWidth, p.ScreenDistance,
		f.SimTime, p.TimeScale, f.State, mode, sim.FringeSpacing(p))
}
