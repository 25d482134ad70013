package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbital/pkg/agent"
	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/logging"
)

// Options configures Run
type Options struct {
	Scale       float64            // world units per column
	FrameRate   int                // frames per second
	MaxSteps    int                // ticks per frame before backlog is dropped
	Controllers []agent.Controller // run before every tick, after the keyboard
	OnEvents    func(event.Events) // called after every tick, e.g. for audio
	Logger      *logging.Logger
}

// DefaultOptions returns the options used by the orbital command
func DefaultOptions() Options {
	return Options{Scale: 4, FrameRate: 30, MaxSteps: 5}
}

// App couples a Sim with a tcell screen: keyboard input drives the
// player, a Stepper drives the ticks, and the Renderer draws each frame.
type App struct {
	sim      *engine.Sim
	screen   tcell.Screen
	renderer *Renderer
	input    *Input
	stepper  *engine.Stepper
	opts     Options

	explosions event.Events
}

// NewApp prepares an App on an initialised screen
func NewApp(sim *engine.Sim, screen tcell.Screen, opts Options) *App {
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultOptions().FrameRate
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &App{
		sim:      sim,
		screen:   screen,
		renderer: NewRenderer(screen, opts.Scale),
		input:    NewInput(),
		stepper:  engine.NewStepper(sim.Settings().Dt, opts.MaxSteps),
		opts:     opts,
	}
}

// Step applies the keyboard and controllers at now and advances the sim
// by one tick. Explosions are collected until the next Draw.
func (a *App) Step(now time.Time) {
	a.sim.SetControl(entity.PlayerIndex, a.input.Control(now))
	agent.ApplyAll(a.sim, a.opts.Controllers)

	events := a.sim.Update()
	a.explosions.Explosions = append(a.explosions.Explosions, events.Explosions...)
	if a.opts.OnEvents != nil {
		a.opts.OnEvents(events)
	}
}

// Draw renders one frame and forgets the shown explosions
func (a *App) Draw() {
	a.renderer.Draw(a.sim, a.explosions)
	a.explosions.Reset()
}

// HandleEvent feeds one terminal event to the App. It returns true when
// the user asked to quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case '+', '=':
				a.renderer.SetScale(a.renderer.Scale() / 1.25)
				return false
			case '-', '_':
				a.renderer.SetScale(a.renderer.Scale() * 1.25)
				return false
			}
		}
		a.input.HandleEvent(ev, now)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.input.Release()
		}
	}
	return a.input.Quit()
}

// Run drives the App until ctx is cancelled or the user quits
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	frame := time.Second / time.Duration(a.opts.FrameRate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	a.opts.Logger.Info(ctx, "terminal viewer started", "frame_rate", a.opts.FrameRate, "scale", a.opts.Scale)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("terminal event stream closed")
			}
			if a.HandleEvent(ev, time.Now()) {
				a.opts.Logger.Info(ctx, "terminal viewer stopped", "tick", a.sim.Tick())
				return nil
			}
		case now := <-ticker.C:
			a.stepper.Advance(now.Sub(last), func() { a.Step(now) })
			last = now
			a.Draw()
		}
	}
}
