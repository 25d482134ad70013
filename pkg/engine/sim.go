// pkg/engine/sim.go
package engine

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/logging"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// Sim owns the planet and every entity collection and advances them in
// fixed steps of Settings.Dt. It is not safe for concurrent use: callers
// write ship controls, call Update, then read state, all from one
// goroutine.
type Sim struct {
	settings config.Settings

	planet    *entity.Planet
	ships     *entity.Ships
	turrets   *entity.Turrets
	factories *entity.Factories
	bullets   *entity.Bullets
	bombs     *entity.Bombs

	tick   uint64
	events event.Events

	logEnabled bool
	log        []LogEntry

	ctx    context.Context
	logger *logging.Logger
	bus    *event.Bus
}

// Option configures optional Sim collaborators
type Option func(*Sim)

// WithLogger makes the Sim log lifecycle events (deaths, destruction,
// respawns) at DEBUG level.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Sim) {
		s.logger = logger
	}
}

// WithEventBus publishes indexed events to bus after every tick
func WithEventBus(bus *event.Bus) Option {
	return func(s *Sim) {
		s.bus = bus
	}
}

// WithContext sets the context used for logging, typically carrying a
// session ID.
func WithContext(ctx context.Context) Option {
	return func(s *Sim) {
		s.ctx = ctx
	}
}

// WithStateLog enables the per-tick state log from the first tick
func WithStateLog() Option {
	return func(s *Sim) {
		s.logEnabled = true
	}
}

// NewSim builds a simulation from a level descriptor. Surface offsets are
// converted to world positions once, here.
func NewSim(level *config.Level, settings config.Settings, opts ...Option) (*Sim, error) {
	if level == nil {
		return nil, fmt.Errorf("%w: nil level", config.ErrInvalidLevel)
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	planet := entity.NewPlanet(level.Spacing, level.Height)
	s := &Sim{
		settings:  settings,
		planet:    planet,
		ships:     entity.NewShips(planet, level.Allies, settings),
		turrets:   entity.NewTurrets(planet, level.Turrets, settings),
		factories: entity.NewFactories(planet, level.Factories),
		bullets:   entity.NewBullets(settings.MaxBullets),
		bombs:     entity.NewBombs(settings.MaxBombs),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger != nil {
		s.logger.Info(s.ctx, "simulation created",
			"radius", planet.Radius,
			"ships", s.ships.Len(),
			"turrets", s.turrets.Len(),
			"factories", s.factories.Len(),
			"dt", settings.Dt,
		)
	}
	return s, nil
}

// Update advances the simulation by one tick and returns what happened.
// The returned record shares storage with the Sim and is only valid until
// the next call; use Events.Clone to keep it.
func (s *Sim) Update() event.Events {
	dt := s.settings.Dt
	s.events.Reset()

	if s.logEnabled {
		s.log = append(s.log, s.logEntry())
	}
	s.ships.Update(dt, s.bombs, &s.events)
	s.turrets.Update(dt, s.ships, s.bullets, &s.events)
	s.bullets.Update(dt, s.planet)
	s.bombs.Update(dt, entity.BombPhysics{
		Gravity:     s.settings.Gravity,
		BlastRadius: s.settings.BombBlastRadius,
	}, s.planet, s.turrets, s.factories, &s.events)
	detectCollisions(s.ships, s.bullets, s.settings.ShipSize, &s.events)

	s.tick++
	s.report()
	return s.events
}

// report logs and publishes the tick's events once the tick is complete
func (s *Sim) report() {
	if s.logger != nil {
		for _, i := range s.events.ShipDeaths {
			s.logger.Debug(s.ctx, "ship destroyed", "ship", i, "tick", s.tick, "player", i == entity.PlayerIndex)
		}
		for _, i := range s.events.Respawns {
			s.logger.Debug(s.ctx, "ship respawned", "ship", i, "tick", s.tick)
		}
		for _, i := range s.events.TurretsDestroyed {
			s.logger.Debug(s.ctx, "turret destroyed", "turret", i, "tick", s.tick, "remaining", s.turrets.Remaining())
		}
		for _, i := range s.events.FactoriesDestroyed {
			s.logger.Debug(s.ctx, "factory destroyed", "factory", i, "tick", s.tick, "remaining", s.factories.Remaining())
		}
	}
	if s.bus != nil {
		s.events.PublishTo(s.bus, s, s.tick)
	}
}

// SetControl sets the input of ship i for the next tick
func (s *Sim) SetControl(i int, control entity.ShipControl) {
	s.ships.Control[i] = control
}

// ShipState is a copy of one ship's state
type ShipState struct {
	Position        physics.Vec2
	Velocity        physics.Vec2
	Angle           float64
	AngularVelocity float64
	Reload          float64
	Alive           bool
	RespawnTimer    float64
	Control         entity.ShipControl
}

// Ship returns a copy of the state of ship i
func (s *Sim) Ship(i int) ShipState {
	sh := s.ships
	return ShipState{
		Position:        sh.Position[i],
		Velocity:        sh.Velocity[i],
		Angle:           sh.Angle[i],
		AngularVelocity: sh.AngularVelocity[i],
		Reload:          sh.Reload[i],
		Alive:           sh.Alive[i],
		RespawnTimer:    sh.RespawnTimer[i],
		Control:         sh.Control[i],
	}
}

// Player returns a copy of the player ship's state
func (s *Sim) Player() ShipState {
	return s.Ship(entity.PlayerIndex)
}

// Cleared reports whether every turret and factory has been destroyed
func (s *Sim) Cleared() bool {
	return s.turrets.Remaining() == 0 && s.factories.Remaining() == 0
}

// Tick returns the number of completed ticks
func (s *Sim) Tick() uint64 { return s.tick }

// Time returns the simulated time in seconds
func (s *Sim) Time() float64 { return float64(s.tick) * s.settings.Dt }

// Settings returns the simulation constants
func (s *Sim) Settings() config.Settings { return s.settings }

// The accessors below expose live entity state for renderers and
// controllers. Callers must not modify it, except ship controls.

// Planet returns the terrain
func (s *Sim) Planet() *entity.Planet { return s.planet }

// Ships returns the ship collection
func (s *Sim) Ships() *entity.Ships { return s.ships }

// Turrets returns the turret collection
func (s *Sim) Turrets() *entity.Turrets { return s.turrets }

// Factories returns the factory collection
func (s *Sim) Factories() *entity.Factories { return s.factories }

// Bullets returns the bullet pool
func (s *Sim) Bullets() *entity.Bullets { return s.bullets }

// Bombs returns the bomb pool
func (s *Sim) Bombs() *entity.Bombs { return s.bombs }
