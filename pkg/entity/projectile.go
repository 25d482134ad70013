// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// pool tracks slot lifetimes of a fixed-capacity projectile array.
// A slot with TimeToLive <= 0 is free.
type pool struct {
	TimeToLive []float64
}

// slot returns the first free slot, or the live slot closest to expiry
func (p *pool) slot() int {
	oldest := 0
	for i, ttl := range p.TimeToLive {
		if ttl <= 0 {
			return i
		}
		if ttl < p.TimeToLive[oldest] {
			oldest = i
		}
	}
	return oldest
}

// Len returns the pool capacity
func (p *pool) Len() int {
	return len(p.TimeToLive)
}

// Live returns the number of occupied slots
func (p *pool) Live() int {
	n := 0
	for _, ttl := range p.TimeToLive {
		if ttl > 0 {
			n++
		}
	}
	return n
}

// IsLive reports whether slot i is occupied
func (p *pool) IsLive(i int) bool {
	return p.TimeToLive[i] > 0
}

// Expire frees slot i
func (p *pool) Expire(i int) {
	p.TimeToLive[i] = 0
}

// Bullets is the turret bullet pool
type Bullets struct {
	pool
	Position []physics.Vec2
	Velocity []physics.Vec2
}

// NewBullets creates an empty bullet pool of the given capacity
func NewBullets(capacity int) *Bullets {
	return &Bullets{
		pool:     pool{TimeToLive: make([]float64, capacity)},
		Position: make([]physics.Vec2, capacity),
		Velocity: make([]physics.Vec2, capacity),
	}
}

// Fire launches a bullet from position along bearing angle and returns
// its slot. When the pool is full the bullet nearest expiry is replaced.
func (b *Bullets) Fire(position physics.Vec2, angle, speed, timeToLive float64) int {
	i := b.slot()
	b.Position[i] = position
	b.Velocity[i] = physics.FromBearing(angle, speed)
	b.TimeToLive[i] = timeToLive
	return i
}

// Update moves live bullets in straight lines. Bullets that run out of
// time or pass below the terrain expire.
func (b *Bullets) Update(dt float64, planet *Planet) {
	for i, ttl := range b.TimeToLive {
		if ttl <= 0 {
			continue
		}
		b.Position[i] = b.Position[i].Add(b.Velocity[i].Scale(dt))
		b.TimeToLive[i] = ttl - dt
		if b.Position[i].Length() < planet.HeightAt(b.Position[i]) {
			b.TimeToLive[i] = 0
		}
	}
}

// Bombs is the pool of bombs dropped by ships
type Bombs struct {
	pool
	Position []physics.Vec2
	Velocity []physics.Vec2
	Owner    []int // index of the ship that dropped the bomb
}

// NewBombs creates an empty bomb pool of the given capacity
func NewBombs(capacity int) *Bombs {
	return &Bombs{
		pool:     pool{TimeToLive: make([]float64, capacity)},
		Position: make([]physics.Vec2, capacity),
		Velocity: make([]physics.Vec2, capacity),
		Owner:    make([]int, capacity),
	}
}

// Drop releases a bomb owned by ship owner and returns its slot
func (b *Bombs) Drop(position, velocity physics.Vec2, owner int, timeToLive float64) int {
	i := b.slot()
	b.Position[i] = position
	b.Velocity[i] = velocity
	b.Owner[i] = owner
	b.TimeToLive[i] = timeToLive
	return i
}

// BombPhysics holds the constants used to integrate and detonate bombs
type BombPhysics struct {
	Gravity     float64
	BlastRadius float64
}

// Update integrates live bombs under gravity. A bomb that touches the
// terrain explodes and destroys every turret and factory within the
// blast radius.
func (b *Bombs) Update(dt float64, phys BombPhysics, planet *Planet, turrets *Turrets, factories *Factories, events *event.Events) {
	blastSq := phys.BlastRadius * phys.BlastRadius
	for i, ttl := range b.TimeToLive {
		if ttl <= 0 {
			continue
		}
		pos := b.Position[i]
		b.Velocity[i] = b.Velocity[i].Add(pos.Radial().Scale(-phys.Gravity * dt))
		pos = pos.Add(b.Velocity[i].Scale(dt))
		b.Position[i] = pos
		b.TimeToLive[i] = ttl - dt

		if pos.Length() > planet.HeightAt(pos) {
			continue
		}
		b.TimeToLive[i] = 0
		events.AddExplosion(pos)

		for j, alive := range turrets.Alive {
			if alive && pos.DistanceSquared(turrets.Position[j]) <= blastSq {
				turrets.Destroy(j)
				events.AddExplosion(turrets.Position[j])
				events.TurretsDestroyed = append(events.TurretsDestroyed, j)
			}
		}
		for j, alive := range factories.Alive {
			if alive && pos.DistanceSquared(factories.Position[j]) <= blastSq {
				factories.Destroy(j)
				events.AddExplosion(factories.Position[j])
				events.FactoriesDestroyed = append(events.FactoriesDestroyed, j)
			}
		}
	}
}
