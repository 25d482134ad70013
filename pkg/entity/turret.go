// pkg/entity/turret.go
package entity

import (
	"math"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// NoTarget is the Target value of a turret that is not tracking a ship
const NoTarget = -1

// Turrets are surface-mounted guns. Level 0 sweeps a fixed arc, level 1
// and above track the cheapest ship in range, level 2 and above lead
// their shots and level 3 prefers the player.
type Turrets struct {
	settings config.Settings

	Position []physics.Vec2
	Facing   []float64 // body orientation, fixed
	Angle    []float64 // gun bearing
	Level    []int
	Reload   []float64
	Alive    []bool
	Target   []int // ship tracked during the last update, or NoTarget

	sweep []float64 // level 0 sweep direction, +1 or -1
}

// NewTurrets places the turrets described by specs on the planet surface
func NewTurrets(planet *Planet, specs []config.TurretSpec, settings config.Settings) *Turrets {
	n := len(specs)
	t := &Turrets{
		settings: settings,
		Position: make([]physics.Vec2, n),
		Facing:   make([]float64, n),
		Angle:    make([]float64, n),
		Level:    make([]int, n),
		Reload:   make([]float64, n),
		Alive:    make([]bool, n),
		Target:   make([]int, n),
		sweep:    make([]float64, n),
	}
	for i, spec := range specs {
		t.Position[i], t.Facing[i] = planet.SurfacePosition(spec.Position)
		t.Angle[i] = t.Facing[i]
		t.Level[i] = spec.Level
		t.Reload[i] = settings.TurretReloadTime
		t.Alive[i] = true
		t.Target[i] = NoTarget
		t.sweep[i] = 1
	}
	return t
}

// Len returns the number of turrets
func (t *Turrets) Len() int {
	return len(t.Position)
}

// Remaining returns the number of turrets still standing
func (t *Turrets) Remaining() int {
	return countAlive(t.Alive)
}

// Destroy marks turret i destroyed. It reports whether it was alive.
func (t *Turrets) Destroy(i int) bool {
	wasAlive := t.Alive[i]
	t.Alive[i] = false
	t.Target[i] = NoTarget
	return wasAlive
}

// Update aims and fires every live turret
func (t *Turrets) Update(dt float64, ships *Ships, bullets *Bullets, events *event.Events) {
	for i, alive := range t.Alive {
		if !alive {
			continue
		}
		t.Reload[i] -= dt

		if t.Level[i] == 0 {
			t.sweepGun(i, dt)
		} else if !t.track(i, dt, ships) {
			// Idle: keep charging, never bank more than one shot.
			t.Reload[i] = math.Max(t.Reload[i], 0)
			continue
		}

		if t.Reload[i] <= 0 {
			t.fire(i, bullets)
			t.Reload[i] = t.settings.TurretReloadTime
			events.BulletsFired++
		}
	}
}

// sweepGun swings a level 0 gun back and forth across its arc
func (t *Turrets) sweepGun(i int, dt float64) {
	arc := t.settings.TurretSweepArc
	rate := t.settings.TurretLevels[0].RotationRate

	offset := physics.AngleBetween(t.Facing[i], t.Angle[i]) + t.sweep[i]*rate*dt
	if offset >= arc {
		offset = arc
		t.sweep[i] = -1
	} else if offset <= -arc {
		offset = -arc
		t.sweep[i] = 1
	}
	t.Angle[i] = physics.WrapAngle(t.Facing[i] + offset)
}

// track selects a target for turret i and turns the gun towards it. It
// reports false when no ship is in range.
func (t *Turrets) track(i int, dt float64, ships *Ships) bool {
	level := t.Level[i]
	target, aim := t.selectTarget(i, ships)
	t.Target[i] = target
	if target == NoTarget {
		return false
	}

	if level >= 2 {
		speed := t.settings.TurretLevels[level].BulletSpeed
		aim = physics.WrapAngle(aim + ships.Velocity[target].Dot(physics.Tangent(aim))/speed)
	}

	rate := t.settings.TurretLevels[level].RotationRate
	t.Angle[i] = physics.RotateTowards(t.Angle[i], aim, rate*dt)
	return true
}

// selectTarget returns the live ship in bullet range with the lowest
// cost (distance plus weighted gun rotation, minus the player bias for
// level 3), and the bearing from the turret to it.
func (t *Turrets) selectTarget(i int, ships *Ships) (int, float64) {
	pos := t.Position[i]
	best, bestAim := NoTarget, 0.0
	bestCost := math.Inf(1)

	for j, alive := range ships.Alive {
		if !alive {
			continue
		}
		delta := ships.Position[j].Sub(pos)
		distance := delta.Length()
		if distance > t.settings.BulletRange {
			continue
		}
		aim := delta.Bearing()
		cost := distance + t.settings.TurretAngleWeight*math.Abs(physics.AngleBetween(t.Angle[i], aim))
		if t.Level[i] >= 3 && j == 0 {
			cost -= t.settings.TurretPlayerBias
		}
		if cost < bestCost {
			best, bestAim, bestCost = j, aim, cost
		}
	}
	return best, bestAim
}

func (t *Turrets) fire(i int, bullets *Bullets) {
	level := t.Level[i]
	muzzle := t.Position[i].Add(physics.FromBearing(t.Angle[i], t.settings.TurretLength))
	bullets.Fire(muzzle, t.Angle[i], t.settings.TurretLevels[level].BulletSpeed, t.settings.BulletTimeToLive(level))
}
