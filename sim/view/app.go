package view

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/slitsim/slitsim/sim"
)

// App runs an interactive terminal session: frames from the loop are drawn
// as they are published and key presses become parameter updates posted back
// to the loop.
type App struct {
	screen tcell.Screen
	loop   *sim.Loop

	mu   sync.Mutex
	last sim.Frame
}

// NewApp binds a screen to a loop. Subscribe OnFrame to the loop's simulator
// before calling Run.
func NewApp(screen tcell.Screen, loop *sim.Loop, initial sim.PhysicsParams) *App {
	return &App{screen: screen, loop: loop, last: sim.Frame{Params: initial}}
}

// OnFrame draws f. It runs on the loop goroutine.
func (a *App) OnFrame(f sim.Frame) {
	a.mu.Lock()
	a.last = f
	a.mu.Unlock()
	Draw(a.screen, f)
}

// Params returns the parameters of the most recent frame.
func (a *App) Params() sim.PhysicsParams {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last.Params
}

// HandleEvent applies one terminal event and reports whether the session
// should continue.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		edit, action := KeyAction(ev)
		switch action {
		case ActionQuit:
			return false
		case ActionReset:
			a.loop.Reset()
		}
		if edit != nil {
			a.loop.UpdateWith(edit)
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.mu.Lock()
		f := a.last
		a.mu.Unlock()
		Draw(a.screen, f)
	}
	return true
}

// Run starts the loop and processes terminal input until the user quits, ctx
// is cancelled or the loop fails. The loop is stopped before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() { loopErr <- a.loop.Run(ctx) }()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			a.loop.Stop()
			if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case err := <-loopErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case ev := <-events:
			if !a.HandleEvent(ev) {
				logrus.Debug("quit requested")
				a.loop.Stop()
				return <-loopErr
			}
		}
	}
}

// Draw renders f onto screen at its current size and shows it.
func Draw(screen tcell.Screen, f sim.Frame) {
	w, h := screen.Size()
	r := Rasterize(f, w, h)
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			c := r.At(x, y)
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	screen.Show()
}
