// pkg/event/events.go
package event

import (
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// Events records what happened during one simulation tick. Every field is
// typed and fixed; the record is cleared at the start of each tick.
type Events struct {
	// Explosions lists explosion positions in the order they occurred
	Explosions []physics.Vec2
	// PlayerDeath is set when ship 0 died this tick
	PlayerDeath bool

	ShipDeaths         []int // ship indices killed this tick
	Respawns           []int // ship indices respawned this tick
	TurretsDestroyed   []int
	FactoriesDestroyed []int
	BombsDropped       int
	BulletsFired       int
}

// Reset clears the record, keeping slice storage for reuse
func (e *Events) Reset() {
	e.Explosions = e.Explosions[:0]
	e.PlayerDeath = false
	e.ShipDeaths = e.ShipDeaths[:0]
	e.Respawns = e.Respawns[:0]
	e.TurretsDestroyed = e.TurretsDestroyed[:0]
	e.FactoriesDestroyed = e.FactoriesDestroyed[:0]
	e.BombsDropped = 0
	e.BulletsFired = 0
}

// AddExplosion records an explosion at p
func (e *Events) AddExplosion(p physics.Vec2) {
	e.Explosions = append(e.Explosions, p)
}

// Empty reports whether nothing was recorded
func (e *Events) Empty() bool {
	return len(e.Explosions) == 0 && !e.PlayerDeath &&
		len(e.ShipDeaths) == 0 && len(e.Respawns) == 0 &&
		len(e.TurretsDestroyed) == 0 && len(e.FactoriesDestroyed) == 0 &&
		e.BombsDropped == 0 && e.BulletsFired == 0
}

// Clone returns a deep copy, for callers that keep records across ticks
func (e *Events) Clone() Events {
	return Events{
		Explosions:         append([]physics.Vec2(nil), e.Explosions...),
		PlayerDeath:        e.PlayerDeath,
		ShipDeaths:         append([]int(nil), e.ShipDeaths...),
		Respawns:           append([]int(nil), e.Respawns...),
		TurretsDestroyed:   append([]int(nil), e.TurretsDestroyed...),
		FactoriesDestroyed: append([]int(nil), e.FactoriesDestroyed...),
		BombsDropped:       e.BombsDropped,
		BulletsFired:       e.BulletsFired,
	}
}

// PublishTo publishes the indexed events of the record to bus
func (e *Events) PublishTo(bus *Bus, source interface{}, tick uint64) {
	for _, i := range e.ShipDeaths {
		bus.Publish(NewIndexEvent(ShipDestroyed, source, i, tick))
	}
	for _, i := range e.Respawns {
		bus.Publish(NewIndexEvent(ShipRespawned, source, i, tick))
	}
	for _, i := range e.TurretsDestroyed {
		bus.Publish(NewIndexEvent(TurretDestroyed, source, i, tick))
	}
	for _, i := range e.FactoriesDestroyed {
		bus.Publish(NewIndexEvent(FactoryDestroyed, source, i, tick))
	}
}
