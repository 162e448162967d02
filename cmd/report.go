package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slitsim/slitsim/sim"
	"github.com/slitsim/slitsim/sim/report"
)

var (
	reportOutput string // HTML output path
	reportBins   int    // Histogram bins
)

// reportCmd renders the intensity profile and, in particle mode, a histogram
// of the full generated population against the predicted counts.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write an HTML report of the intensity profile and particle detections",
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustSession(cmd)
		s := sim.NewSimulator(sess.Config)

		var particles []sim.Particle
		if s.Params().ParticleMode {
			particles = s.Population().Particles
		}
		if err := report.WriteFile(reportOutput, s.Params(), particles, report.Config{Bins: reportBins}); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "slitsim.html", "HTML output path")
	reportCmd.Flags().IntVar(&reportBins, "bins", report.DefaultBins, "Histogram bins")
}
