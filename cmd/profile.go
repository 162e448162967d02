package cmd

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/slitsim/slitsim/sim"
)

var (
	profileWidth  int // Plot width in columns
	profileHeight int // Plot height in rows
)

// profileCmd plots the screen intensity in the terminal.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Plot the screen intensity profile",
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustSession(cmd)
		p := sim.Validate(sess.Config.Params)
		renderProfile(cmd.OutOrStdout(), p, profileWidth, profileHeight)
	},
}

// renderProfile plots I(z) across the screen and lists the fringe positions.
func renderProfile(w io.Writer, p sim.PhysicsParams, width, height int) {
	_, intensity := sim.Profile(p, sim.ScreenWidth, max(width, 2))
	plot := asciigraph.Plot(intensity,
		asciigraph.Height(max(height, 1)),
		asciigraph.Width(max(width, 2)),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption(fmt.Sprintf("I(z), z from %.0f to %.0f μm", -sim.ScreenWidth/2, sim.ScreenWidth/2)),
	)
	fmt.Fprintln(w, plot)
	fmt.Fprintf(w, "Fringe spacing λD/d : %.4f μm\n", sim.FringeSpacing(p))
	fmt.Fprintf(w, "First minimum       : ±%.4f μm\n", sim.FirstMinimum(p))
	fmt.Fprintf(w, "First maximum       : ±%.4f μm\n", sim.FirstMaximum(p))
}

func init() {
	profileCmd.Flags().IntVar(&profileWidth, "width", 100, "Plot width in columns")
	profileCmd.Flags().IntVar(&profileHeight, "height", 15, "Plot height in rows")
}
