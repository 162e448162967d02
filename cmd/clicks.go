package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slitsim/slitsim/sim"
	"github.com/slitsim/slitsim/sim/audio"
)

var clicksOutput string // WAV output path

// clicksCmd renders one full particle population as a detector click track.
// The population is drawn regardless of --particle-mode.
var clicksCmd = &cobra.Command{
	Use:   "clicks",
	Short: "Write the particle detections of one population as a WAV click track",
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustSession(cmd)
		p := sim.Validate(sess.Config.Params)
		pop := sim.GenerateWithSeed(p, sess.Config.Seed, sess.Config.Emitter)
		if pop.Short() {
			logrus.Warnf("Only %d of %d particles accepted after %d attempts", pop.Len(), pop.Requested, pop.Attempts)
		}
		if err := audio.WriteWAVFile(clicksOutput, pop.Particles, p.TimeScale, audio.Config{}); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	clicksCmd.Flags().StringVarP(&clicksOutput, "output", "o", "slitsim.wav", "WAV output path")
}
