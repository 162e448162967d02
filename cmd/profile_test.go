package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slitsim/slitsim/sim"
)

func TestRenderProfile(t *testing.T) {
	var buf bytes.Buffer
	renderProfile(&buf, sim.DefaultParams(), 60, 10)
	out := buf.String()

	assert.Contains(t, out, "I(z), z from -6 to 6 μm")
	assert.Contains(t, out, "Fringe spacing λD/d : 2.5000 μm")
	assert.Contains(t, out, "First minimum       : ±1.2500 μm")
	// plot rows plus caption plus three fact lines
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 10+3)
}

func TestRenderProfile_DegenerateSizes(t *testing.T) {
	var buf bytes.Buffer
	renderProfile(&buf, sim.DefaultParams(), 0, 0)
	assert.Contains(t, buf.String(), "Fringe spacing")
}
