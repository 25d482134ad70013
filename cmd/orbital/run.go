// cmd/orbital/run.go
package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbital/pkg/agent"
	"github.com/opd-ai/go-orbital/pkg/audio"
	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/health"
	"github.com/opd-ai/go-orbital/pkg/logging"
	engorender "github.com/opd-ai/go-orbital/pkg/render/engo"
	"github.com/opd-ai/go-orbital/pkg/render/terminal"
	"github.com/opd-ai/go-orbital/pkg/telemetry"
)

const (
	// drainEvery is how many ticks of state log are buffered between exports
	drainEvery = 500
	// maxBacklog is how many state log entries may pile up while the sink is down
	maxBacklog = 10 * drainEvery
	// maxHeapMB bounds the heap of a run
	maxHeapMB = 512
)

// runner drives one Sim with the front end chosen on the command line
type runner struct {
	sim      *engine.Sim
	bus      *event.Bus
	exporter *telemetry.Exporter
	logger   *logging.Logger
	sound    bool
	volume   float64
	health   *health.HealthChecker
}

// newHealthChecker watches tick progress, memory and, when the state log
// is exported, the sink breaker and the export backlog.
func (r *runner) newHealthChecker() *health.HealthChecker {
	hc := health.NewHealthChecker()
	hc.AddCheck(health.NewProgressCheck(r.sim.Tick))
	hc.AddCheck(health.NewMemoryHealthCheck(maxHeapMB, heapMB))
	if r.exporter != nil {
		hc.AddCheck(health.NewSinkCheck(r.exporter.State))
		hc.AddCheck(health.NewBacklogCheck(maxBacklog, func() int { return len(r.sim.Log()) }))
	}
	return hc
}

func heapMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.HeapAlloc / (1 << 20))
}

// checkHealth logs the failing checks, if any
func (r *runner) checkHealth(ctx context.Context) bool {
	if r.health == nil {
		r.health = r.newHealthChecker()
	}
	status := r.health.CheckHealth(ctx)
	if !status.Healthy() {
		r.logger.Warn(ctx, "run unhealthy", "failing", status.Failing(), "tick", r.sim.Tick())
	}
	return status.Healthy()
}

// drain exports the state log once enough ticks have accumulated. A
// tripped breaker keeps the entries for a later attempt.
func (r *runner) drain(ctx context.Context) {
	if r.exporter == nil || len(r.sim.Log()) < drainEvery {
		return
	}
	if err := r.exporter.Drain(ctx, r.sim); err != nil {
		r.logger.Warn(ctx, "state log export deferred", "error", err, "buffered", len(r.sim.Log()))
	}
}

// finish exports whatever is left of the state log
func (r *runner) finish(ctx context.Context) error {
	if r.exporter == nil {
		return nil
	}
	if err := r.exporter.Drain(context.WithoutCancel(ctx), r.sim); err != nil {
		return err
	}
	r.logger.Info(ctx, "state log exported", "entries", r.exporter.Exported())
	return nil
}

// headless flies every ship with a script agent, the player holding the
// bomb release, for the given number of ticks.
func (r *runner) headless(ctx context.Context, ticks int) error {
	if ticks <= 0 {
		return fmt.Errorf("headless mode needs a positive tick count, got %d", ticks)
	}

	deaths := 0
	sub := r.bus.Subscribe(event.ShipDestroyed, func(e event.Event) {
		if ie, ok := e.(*event.IndexEvent); ok && ie.Index == entity.PlayerIndex {
			deaths++
		}
	})
	defer r.bus.Unsubscribe(sub)

	controllers := []agent.Controller{
		agent.ControllerFunc(func(sim *engine.Sim) {
			control := sim.Player().Control
			control.DropBomb = true
			sim.SetControl(entity.PlayerIndex, control)
		}),
		agent.NewScriptAgent(entity.PlayerIndex),
	}
	controllers = append(controllers, agent.Formation(r.sim)...)

	r.logger.Info(ctx, "headless run started", "ticks", ticks, "ships", r.sim.Ships().Len())
	for i := 0; i < ticks; i++ {
		if i%drainEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if i > 0 {
				r.checkHealth(ctx)
			}
		}
		agent.ApplyAll(r.sim, controllers)
		r.sim.Update()
		r.drain(ctx)
		if r.sim.Cleared() {
			break
		}
	}

	r.logger.Info(ctx, "headless run finished",
		"healthy", r.checkHealth(ctx),
		"ticks", r.sim.Tick(),
		"time", r.sim.Time(),
		"player_deaths", deaths,
		"turrets_remaining", r.sim.Turrets().Remaining(),
		"factories_remaining", r.sim.Factories().Remaining(),
		"cleared", r.sim.Cleared(),
	)
	return nil
}

// onEvents builds the per-tick callback shared by the interactive front
// ends: sound cues plus periodic state log export and health checks.
func (r *runner) onEvents(ctx context.Context) (func(event.Events), func()) {
	var player *audio.Player
	if r.sound {
		player = audio.NewPlayer(r.volume, r.logger)
		if err := player.Init(); err != nil {
			r.logger.Warn(ctx, "audio unavailable, running silent", "error", err)
			player = nil
		}
	}

	handle := func(events event.Events) {
		if player != nil {
			player.Handle(events)
		}
		r.drain(ctx)
		if r.sim.Tick()%drainEvery == 0 {
			r.checkHealth(ctx)
		}
	}
	closer := func() {
		if player != nil {
			player.Close()
		}
	}
	return handle, closer
}

func (r *runner) terminal(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "init terminal screen")
	}
	defer screen.Fini()

	handle, closeAudio := r.onEvents(ctx)
	defer closeAudio()

	opts := terminal.DefaultOptions()
	opts.Controllers = agent.Formation(r.sim)
	opts.OnEvents = handle
	opts.Logger = r.logger

	err = terminal.NewApp(r.sim, screen, opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *runner) engo(ctx context.Context) error {
	handle, closeAudio := r.onEvents(ctx)
	defer closeAudio()

	opts := engorender.DefaultOptions()
	opts.Controllers = agent.Formation(r.sim)
	opts.OnEvents = handle
	opts.Bus = r.bus
	opts.Logger = r.logger

	engorender.Run(engorender.NewScene(r.sim, opts))
	return nil
}
