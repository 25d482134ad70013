// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbital/pkg/agent"
	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/logging"
)

// Options configures the viewer
type Options struct {
	Title       string
	Width       int
	Height      int
	Scale       float32            // pixels per world unit
	MaxSteps    int                // ticks per frame before backlog is dropped
	Controllers []agent.Controller // run before every tick, after the keyboard
	OnEvents    func(event.Events) // called after every tick, e.g. for audio
	Bus         *event.Bus         // the bus the Sim publishes to, if any
	Logger      *logging.Logger
}

// DefaultOptions returns the options used by the orbital command
func DefaultOptions() Options {
	return Options{Title: "orbital", Width: 1024, Height: 768, Scale: 8, MaxSteps: 5}
}

// Scene is the engo scene showing one Sim
type Scene struct {
	sim  *engine.Sim
	opts Options

	world    *ecs.World
	renderer *SimRenderer
	camera   *CameraSystem
	hud      *HUD
	driver   *SimSystem
}

// NewScene creates a scene for sim
func NewScene(sim *engine.Sim, opts Options) *Scene {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	return &Scene{sim: sim, opts: opts, world: &ecs.World{}}
}

// Type returns the scene type (required by Engo)
func (scene *Scene) Type() string {
	return "OrbitalScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *Scene) Preload() {}

// Setup builds the world: render system, sprites, camera, HUD and the
// system driving the Sim (required by Engo).
func (scene *Scene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	scene.world = world
	common.SetBackground(color.Black)
	SetupInputBindings()

	render := &common.RenderSystem{}
	world.AddSystem(render)

	scene.renderer = NewSimRenderer(scene.sim, scene.opts.Scale, DefaultPalette())
	scene.renderer.AddTo(render)

	scene.hud = NewHUD(scene.sim, DefaultPalette())
	if scene.opts.Bus != nil {
		scene.hud.Subscribe(scene.opts.Bus)
	}
	scene.hud.AddTo(render)

	scene.camera = NewCameraSystem(scene.opts.Scale)
	scene.camera.SetTarget(scene.sim.Player().Position)

	scene.driver = NewSimSystem(scene.sim, scene.renderer, scene.hud, scene.camera, scene.opts)
	world.AddSystem(scene.driver)
	world.AddSystem(scene.camera)

	scene.opts.Logger.Info(context.Background(), "engo viewer started",
		"width", scene.opts.Width,
		"height", scene.opts.Height,
		"scale", scene.opts.Scale,
	)
}

// Exit is called when the window closes (required by Engo)
func (scene *Scene) Exit() {
	if scene.hud != nil {
		scene.hud.Close()
	}
	scene.opts.Logger.Info(context.Background(), "engo viewer stopped", "tick", scene.sim.Tick())
}

// Run opens a window and blocks until it is closed
func Run(scene *Scene) {
	engo.Run(engo.RunOptions{
		Title:  scene.opts.Title,
		Width:  scene.opts.Width,
		Height: scene.opts.Height,
	}, scene)
}

// SimSystem advances the Sim in fixed steps from engo's frame time and
// keeps the sprites, HUD and camera in step with it.
type SimSystem struct {
	sim      *engine.Sim
	stepper  *engine.Stepper
	keyboard *Keyboard
	renderer *SimRenderer
	hud      *HUD
	camera   *CameraSystem
	opts     Options
}

// NewSimSystem wires the Sim to its views
func NewSimSystem(sim *engine.Sim, renderer *SimRenderer, hud *HUD, camera *CameraSystem, opts Options) *SimSystem {
	return &SimSystem{
		sim:      sim,
		stepper:  engine.NewStepper(sim.Settings().Dt, opts.MaxSteps),
		keyboard: NewKeyboard(),
		renderer: renderer,
		hud:      hud,
		camera:   camera,
		opts:     opts,
	}
}

// Add satisfies the ecs.System interface
func (s *SimSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (s *SimSystem) Remove(basic ecs.BasicEntity) {
}

// Update runs the ticks owed for dt seconds of frame time and refreshes
// the views.
func (s *SimSystem) Update(dt float32) {
	s.stepper.Advance(time.Duration(float64(dt)*float64(time.Second)), s.step)
	s.renderer.Sync(s.sim, float64(dt))
	s.hud.Sync(s.sim)
	if player := s.sim.Player(); player.Alive {
		s.camera.SetTarget(player.Position)
	}
}

func (s *SimSystem) step() {
	s.sim.SetControl(entity.PlayerIndex, s.keyboard.Control())
	agent.ApplyAll(s.sim, s.opts.Controllers)

	events := s.sim.Update()
	s.renderer.Explode(events)
	if s.opts.OnEvents != nil {
		s.opts.OnEvents(events)
	}
}
