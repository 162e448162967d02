package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slitsim/slitsim/sim"
	"github.com/slitsim/slitsim/sim/audio"
	"github.com/slitsim/slitsim/sim/view"
)

var liveSound bool // Click on every detection

// liveCmd runs the interactive terminal view.
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Interactive terminal simulation",
	Long:  "Interactive terminal simulation.\n\nKeys: " + view.KeyHelp,
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustSession(cmd)

		screen, err := tcell.NewScreen()
		if err != nil {
			logrus.Fatalf("Failed to create screen: %v", err)
		}
		if err := screen.Init(); err != nil {
			logrus.Fatalf("Failed to initialize screen: %v", err)
		}
		defer screen.Fini()

		var sink clickSink
		if liveSound {
			player := audio.NewPlayer(audio.Config{})
			if err := player.Initialize(); err != nil {
				logrus.Warnf("Audio disabled: %v", err)
			} else {
				sink = player
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runLive(ctx, screen, sess, sink); err != nil {
			screen.Fini()
			logrus.Fatalf("Simulation loop failed: %v", err)
		}
	},
}

// clickSink receives every frame of a live session and is closed when the
// session ends. *audio.Player implements it.
type clickSink interface {
	OnFrame(sim.Frame) int
	Close()
}

// runLive drives one interactive session on screen until ctx ends or the user
// quits. sink may be nil; otherwise it is closed before runLive returns.
func runLive(ctx context.Context, screen tcell.Screen, sess session, sink clickSink) error {
	s := sim.NewSimulator(sess.Config)
	loop := sim.NewLoop(s, sess.FPS, nil)
	app := view.NewApp(screen, loop, s.Params())
	s.Subscribe(app.OnFrame)

	if sink != nil {
		defer sink.Close()
		s.Subscribe(func(f sim.Frame) { sink.OnFrame(f) })
	}
	return app.Run(ctx)
}

func init() {
	liveCmd.Flags().BoolVar(&liveSound, "sound", false, "Click through the speaker on every detection")
}
