// pkg/entity/ship.go
package entity

import (
	"math"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// PlayerIndex is the ship index of the player
const PlayerIndex = 0

// ShipControl is the thruster and bomb input of one ship for one tick.
// Left and right together give full forward thrust with no torque.
type ShipControl struct {
	Left     bool `json:"left" msgpack:"left"`
	Right    bool `json:"right" msgpack:"right"`
	Retro    bool `json:"retro" msgpack:"retro"`
	DropBomb bool `json:"dropBomb" msgpack:"dropBomb"`
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Ships holds the player (index 0) and allied ships as parallel arrays.
// The index of a ship is its identity.
type Ships struct {
	settings config.Settings
	planet   *Planet

	// spawn poses relative to a player at bearing 0
	spawn         []physics.Vec2
	spawnAltitude []float64

	Position        []physics.Vec2
	Velocity        []physics.Vec2
	Angle           []float64 // heading bearing in (-π, π]
	AngularVelocity []float64
	Reload          []float64 // bomb cooldown, >= 0
	Alive           []bool
	RespawnTimer    []float64
	Control         []ShipControl
}

// NewShips creates the player above bearing 0 and allies in a grid of
// AllyColumns columns stacked above it. Every ship starts alive at rest.
func NewShips(planet *Planet, allies int, settings config.Settings) *Ships {
	n := allies + 1
	s := &Ships{
		settings:        settings,
		planet:          planet,
		spawn:           make([]physics.Vec2, n),
		spawnAltitude:   make([]float64, n),
		Position:        make([]physics.Vec2, n),
		Velocity:        make([]physics.Vec2, n),
		Angle:           make([]float64, n),
		AngularVelocity: make([]float64, n),
		Reload:          make([]float64, n),
		Alive:           make([]bool, n),
		RespawnTimer:    make([]float64, n),
		Control:         make([]ShipControl, n),
	}

	player := physics.FromBearing(0, planet.HeightAtBearing(0)+settings.SpawnAltitude)
	cols := settings.AllyColumns
	s.spawn[PlayerIndex] = player
	for k := 1; k < n; k++ {
		row, col := (k-1)/cols, (k-1)%cols
		s.spawn[k] = physics.Vec2{
			X: settings.AllySpacing * (float64(col) - float64(cols-1)/2),
			Y: player.Y - settings.AllySpacing*float64(row+1),
		}
	}
	for i, p := range s.spawn {
		s.spawnAltitude[i] = planet.Altitude(p)
		s.place(i, p)
	}
	return s
}

// Len returns the number of ships, player included
func (s *Ships) Len() int {
	return len(s.Position)
}

// SpawnPosition returns where ship i would spawn now. The formation
// rotates with the player's current bearing and keeps each ship's spawn
// altitude above the terrain beneath it.
func (s *Ships) SpawnPosition(i int) physics.Vec2 {
	p := s.spawn[i].Rotate(s.Position[PlayerIndex].Bearing())
	r := s.planet.HeightAt(p) + s.spawnAltitude[i]
	return p.Radial().Scale(r)
}

// Respawn resets ship i to its current spawn pose
func (s *Ships) Respawn(i int) {
	s.place(i, s.SpawnPosition(i))
}

func (s *Ships) place(i int, p physics.Vec2) {
	s.Position[i] = p
	s.Velocity[i] = physics.Vec2{}
	s.Angle[i] = p.Bearing()
	s.AngularVelocity[i] = 0
	s.Reload[i] = 0
	s.Alive[i] = true
	s.RespawnTimer[i] = 0
	s.Control[i] = ShipControl{}
}

// Kill destroys ship i and starts its respawn timer. Killing a dead
// ship does nothing.
func (s *Ships) Kill(i int, events *event.Events) {
	if !s.Alive[i] {
		return
	}
	s.Alive[i] = false
	s.RespawnTimer[i] = s.settings.RespawnTime(i)
	events.AddExplosion(s.Position[i])
	events.ShipDeaths = append(events.ShipDeaths, i)
	if i == PlayerIndex {
		events.PlayerDeath = true
	}
}

// Heading returns the unit vector ship i points along
func (s *Ships) Heading(i int) physics.Vec2 {
	return physics.FromBearing(s.Angle[i], 1)
}

// Update advances every ship by dt. Dead ships only count down to their
// respawn; live ships turn, check the terrain ring, fly and drop bombs.
func (s *Ships) Update(dt float64, bombs *Bombs, events *event.Events) {
	for i := range s.Position {
		if !s.Alive[i] {
			s.RespawnTimer[i] -= dt
			if s.RespawnTimer[i] <= 0 {
				s.Respawn(i)
				events.Respawns = append(events.Respawns, i)
			}
			continue
		}
		s.fly(i, dt, bombs, events)
	}
}

func (s *Ships) fly(i int, dt float64, bombs *Bombs, events *event.Events) {
	cfg := &s.settings
	control := s.Control[i]
	pos := s.Position[i]
	radial := pos.Radial()

	// Orientation
	torque := cfg.RotationRate * (b2f(control.Left) - b2f(control.Right))
	s.AngularVelocity[i] += dt * (torque - cfg.RotationDamping*s.AngularVelocity[i])
	s.Angle[i] = physics.WrapAngle(s.Angle[i] + dt*s.AngularVelocity[i])

	// Terrain and ceiling
	r := pos.Length()
	ground := s.planet.HeightAt(pos)
	if r <= ground+cfg.ShipRadius() || r > ground+cfg.MaxAltitude {
		s.Kill(i, events)
		return
	}

	// Velocity
	velocity := s.Velocity[i]
	heading := s.Heading(i)
	thrust := cfg.Thrust * (b2f(control.Left) - b2f(control.Retro) + b2f(control.Right)) / 2
	up := -cfg.Gravity + cfg.Lift*math.Max(velocity.Dot(heading), 0)
	drag := cfg.VelocityDamping * velocity.Length()
	accel := radial.Scale(up).Add(heading.Scale(thrust)).Sub(velocity.Scale(drag))
	velocity = velocity.Add(accel.Scale(dt))
	s.Velocity[i] = velocity

	// Position
	s.Position[i] = pos.Add(velocity.Scale(dt))

	// Bombs
	s.Reload[i] = math.Max(s.Reload[i]-dt, 0)
	if control.DropBomb && s.Reload[i] == 0 {
		origin := s.Position[i].Sub(heading.Scale(cfg.BombOffset))
		bombs.Drop(origin, velocity, i, cfg.BombTimeToLive)
		s.Reload[i] = cfg.BombReloadTime
		events.BombsDropped++
	}
}
