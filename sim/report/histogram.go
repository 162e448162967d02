package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/slitsim/slitsim/sim"
)

// expectedSubsamples is the number of intensity samples averaged per bin when
// integrating the expected distribution.
const expectedSubsamples = 32

// Histogram bins detection positions across the screen and pairs each bin with
// the count the intensity model predicts for the same number of hits.
type Histogram struct {
	Dividers []float64 // len(Counts)+1 bin edges, ascending
	Counts   []float64 // observed hits per bin
	Expected []float64 // predicted hits per bin; sums to the observed total
	Mean     float64   // mean hit position
	StdDev   float64   // standard deviation of hit positions
}

// Centers returns the midpoint of each bin.
func (h Histogram) Centers() []float64 {
	out := make([]float64, len(h.Counts))
	for i := range out {
		out[i] = (h.Dividers[i] + h.Dividers[i+1]) / 2
	}
	return out
}

// Total returns the number of hits binned.
func (h Histogram) Total() float64 {
	return floats.Sum(h.Counts)
}

// DetectionHistogram bins the screen positions of particles into bins equal
// slices of a screen of the given width centred on zero. Hits outside the
// screen are ignored.
func DetectionHistogram(p sim.PhysicsParams, particles []sim.Particle, width float64, bins int) Histogram {
	if bins < 1 {
		bins = 1
	}
	half := width / 2
	dividers := floats.Span(make([]float64, bins+1), -half, half)
	// stat.Histogram treats the last divider as exclusive.
	binning := make([]float64, len(dividers))
	copy(binning, dividers)
	binning[bins] = math.Nextafter(half, math.Inf(1))

	z := make([]float64, 0, len(particles))
	for _, pt := range particles {
		if pt.Position.Z >= -half && pt.Position.Z <= half {
			z = append(z, pt.Position.Z)
		}
	}
	sort.Float64s(z)

	h := Histogram{
		Dividers: dividers,
		Counts:   stat.Histogram(nil, binning, z, nil),
	}
	if len(z) > 0 {
		h.Mean, h.StdDev = stat.MeanStdDev(z, nil)
	}
	h.Expected = expectedCounts(p, dividers, float64(len(z)))
	return h
}

// expectedCounts integrates Intensity over each bin and scales the result so
// the bins sum to total.
func expectedCounts(p sim.PhysicsParams, dividers []float64, total float64) []float64 {
	out := make([]float64, len(dividers)-1)
	for i := range out {
		lo, hi := dividers[i], dividers[i+1]
		step := (hi - lo) / expectedSubsamples
		for j := 0; j < expectedSubsamples; j++ {
			out[i] += sim.Intensity(lo+(float64(j)+0.5)*step, p)
		}
	}
	sum := floats.Sum(out)
	if sum == 0 {
		return out
	}
	floats.Scale(total/sum, out)
	return out
}
