package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slitsim/slitsim/sim"
	"github.com/slitsim/slitsim/sim/audio"
	"github.com/slitsim/slitsim/sim/report"
	"github.com/slitsim/slitsim/sim/trace"
)

var (
	runFrames     int    // Frames to simulate
	runReportPath string // Optional HTML report of the final frame
	runWAVPath    string // Optional click track of the revealed particles
)

// runCmd executes a headless simulation with evenly spaced synthetic
// timestamps, so the result depends only on the flags and the seed.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation headless and print a summary",
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustSession(cmd)
		if runFrames <= 0 {
			logrus.Fatalf("--frames must be positive, got %d", runFrames)
		}

		logrus.Infof("Starting headless run: %d frames at %d fps, seed %d", runFrames, sess.FPS, sess.Config.Seed)
		startTime := time.Now()

		s := sim.NewSimulator(sess.Config)
		last := runHeadless(s, runFrames, sess.FPS)
		printSummary(cmd.OutOrStdout(), s, last)
		if s.Trace != nil {
			printTraceSummary(cmd.OutOrStdout(), trace.Summarize(s.Trace))
		}

		if runReportPath != "" {
			if err := report.WriteFile(runReportPath, last.Params, last.Visible, report.Config{}); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if runWAVPath != "" {
			if err := audio.WriteWAVFile(runWAVPath, last.Visible, last.Params.TimeScale, audio.Config{}); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.WithField("time", time.Since(startTime)).Info("Simulation complete.")
	},
}

// runHeadless ticks s frames times at 1/fps wall-clock spacing and returns
// the last frame.
func runHeadless(s *sim.Simulator, frames, fps int) sim.Frame {
	tp := sim.NewSyntheticTimeProvider(time.Unix(0, 0), time.Second/time.Duration(fps))
	var last sim.Frame
	for i := 0; i < frames; i++ {
		last = s.Tick(tp.Now())
	}
	return last
}

func printSummary(w io.Writer, s *sim.Simulator, f sim.Frame) {
	p := f.Params
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Frames               : %d\n", f.Index)
	fmt.Fprintf(w, "Simulation Time      : %.3f s (%s)\n", f.SimTime, f.State)
	fmt.Fprintf(w, "Geometry             : λ=%.3g μm d=%.3g μm w=%.3g μm D=%.3g μm\n",
		p.Wavelength, p.SlitSeparation, p.SlitWidth, p.ScreenDistance)
	fmt.Fprintf(w, "Fringe Spacing       : %.4f μm\n", sim.FringeSpacing(p))
	fmt.Fprintf(w, "First Minimum        : %.4f μm\n", sim.FirstMinimum(p))
	fmt.Fprintf(w, "First Maximum        : %.4f μm\n", sim.FirstMaximum(p))
	if !p.ParticleMode {
		fmt.Fprintln(w, "Mode                 : waves")
		return
	}
	pop := s.Population()
	fmt.Fprintln(w, "Mode                 : particles")
	fmt.Fprintf(w, "Generation           : %d\n", f.Generation)
	fmt.Fprintf(w, "Population           : %d of %d requested (%d attempts, acceptance %.3f)\n",
		pop.Len(), pop.Requested, pop.Attempts, pop.AcceptanceRate())
	fmt.Fprintf(w, "Visible              : %d\n", len(f.Visible))
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Regenerations        : %d (%d short)\n", ts.TotalRegenerations, ts.ShortPopulations)
	if ts.TotalRegenerations > 0 {
		fmt.Fprintf(w, "Mean Acceptance      : %.3f\n", ts.MeanAcceptanceRate)
	}
	for _, reason := range sortedKeys(ts.RegenerationReasons) {
		fmt.Fprintf(w, "  %-19s: %d\n", reason, ts.RegenerationReasons[trace.RegenerationReason(reason)])
	}
	fmt.Fprintf(w, "Repairs              : %d\n", ts.TotalRepairs)
	for _, field := range sortedKeys(ts.RepairsByField) {
		fmt.Fprintf(w, "  %-19s: %d\n", field, ts.RepairsByField[field])
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

func init() {
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "Number of frames to simulate")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "Write an HTML report of the final frame to this path")
	runCmd.Flags().StringVar(&runWAVPath, "wav", "", "Write a click track of the revealed particles to this path")
}
