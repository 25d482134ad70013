// pkg/render/engo/renderer.go
package engo

import (
	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// ExplosionTime is how long an explosion flash stays on screen, seconds
const ExplosionTime = 0.3

// maxFlashes bounds the explosions shown at once; the oldest is replaced
const maxFlashes = 32

// SimRenderer mirrors a Sim into engo entities. Every ship, structure and
// pool slot gets one entity, created once, which is shown or hidden as
// the slot comes and goes.
type SimRenderer struct {
	scale   float32 // pixels per world unit
	palette Palette

	terrain   []*sprite
	ships     []*sprite
	turrets   []*sprite
	guns      []*sprite
	factories []*sprite
	bullets   []*sprite
	bombs     []*sprite

	flashes   []*sprite
	flashTime []float64
}

// NewSimRenderer creates entities for every object of sim. Nothing is
// drawn until the sprites are added to a render system and Sync runs.
func NewSimRenderer(sim *engine.Sim, scale float32, palette Palette) *SimRenderer {
	r := &SimRenderer{scale: scale, palette: palette}
	r.buildTerrain(sim.Planet())

	ships := sim.Ships()
	size := float32(sim.Settings().ShipSize) * scale
	for i := 0; i < ships.Len(); i++ {
		c := palette.Ally
		if i == entity.PlayerIndex {
			c = palette.Player
		}
		r.ships = append(r.ships, newSprite(shipShape(), c, size, size*1.5))
	}

	gunLength := sim.Settings().TurretLength
	for i := 0; i < sim.Turrets().Len(); i++ {
		r.turrets = append(r.turrets, newSprite(blockShape(), palette.Turret, turretSize*scale, turretSize*scale))
		r.guns = append(r.guns, newSprite(blockShape(), palette.Gun, float32(gunLength)*scale, gunWidth*scale))
	}
	for i := 0; i < sim.Factories().Len(); i++ {
		r.factories = append(r.factories, newSprite(blockShape(), palette.Factory, factorySize*scale, factorySize*scale))
	}
	for i := 0; i < sim.Bullets().Len(); i++ {
		r.bullets = append(r.bullets, newSprite(roundShape(), palette.Bullet, bulletSize*scale, bulletSize*scale))
	}
	for i := 0; i < sim.Bombs().Len(); i++ {
		r.bombs = append(r.bombs, newSprite(roundShape(), palette.Bomb, bombSize*scale, bombSize*scale))
	}
	for i := 0; i < maxFlashes; i++ {
		r.flashes = append(r.flashes, newSprite(ringShape(palette.Explosion), palette.Explosion, explosionSize*scale, explosionSize*scale))
	}
	r.flashTime = make([]float64, maxFlashes)
	return r
}

// buildTerrain draws the terrain ring as one bar per sample interval.
// The terrain never changes, so the bars are placed once.
func (r *SimRenderer) buildTerrain(planet *entity.Planet) {
	n := planet.Samples()
	for i := 0; i < n; i++ {
		s := newSprite(blockShape(), r.palette.Terrain, 0, terrainWidth*r.scale)
		s.stretch(toPoint(planet.SamplePoint(i), r.scale), toPoint(planet.SamplePoint(i+1), r.scale))
		r.terrain = append(r.terrain, s)
	}
}

// sprites returns every sprite in draw order
func (r *SimRenderer) sprites() []*sprite {
	groups := [][]*sprite{r.terrain, r.factories, r.turrets, r.guns, r.bombs, r.bullets, r.ships, r.flashes}
	var all []*sprite
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// AddTo registers every sprite with the render system
func (r *SimRenderer) AddTo(system spriteAdder) {
	for _, s := range r.sprites() {
		s.addTo(system)
	}
}

// Sync copies the sim state into the sprites and ages the explosion
// flashes by dt seconds.
func (r *SimRenderer) Sync(sim *engine.Sim, dt float64) {
	ships := sim.Ships()
	for i, s := range r.ships {
		if !ships.Alive[i] {
			s.hide()
			continue
		}
		s.centerAt(toPoint(ships.Position[i], r.scale), ships.Angle[i])
	}

	turrets := sim.Turrets()
	gunLength := sim.Settings().TurretLength
	for i, s := range r.turrets {
		s.centerAt(toPoint(turrets.Position[i], r.scale), turrets.Facing[i])
		if !turrets.Alive[i] {
			s.Color = r.palette.Wreck
			r.guns[i].hide()
			continue
		}
		muzzle := turrets.Position[i].Add(physics.FromBearing(turrets.Angle[i], gunLength))
		r.guns[i].stretch(toPoint(turrets.Position[i], r.scale), toPoint(muzzle, r.scale))
	}

	factories := sim.Factories()
	for i, s := range r.factories {
		s.centerAt(toPoint(factories.Position[i], r.scale), factories.Position[i].Bearing())
		if !factories.Alive[i] {
			s.Color = r.palette.Wreck
		}
	}

	bullets := sim.Bullets()
	for i, s := range r.bullets {
		if !bullets.IsLive(i) {
			s.hide()
			continue
		}
		s.centerAt(toPoint(bullets.Position[i], r.scale), 0)
	}
	bombs := sim.Bombs()
	for i, s := range r.bombs {
		if !bombs.IsLive(i) {
			s.hide()
			continue
		}
		s.centerAt(toPoint(bombs.Position[i], r.scale), 0)
	}

	r.ageFlashes(dt)
}

// Explode starts a flash at every explosion of events
func (r *SimRenderer) Explode(events event.Events) {
	for _, p := range events.Explosions {
		i := r.flashSlot()
		r.flashTime[i] = ExplosionTime
		r.flashes[i].centerAt(toPoint(p, r.scale), 0)
	}
}

// flashSlot returns a free flash, or the one closest to fading out
func (r *SimRenderer) flashSlot() int {
	oldest := 0
	for i, t := range r.flashTime {
		if t <= 0 {
			return i
		}
		if t < r.flashTime[oldest] {
			oldest = i
		}
	}
	return oldest
}

func (r *SimRenderer) ageFlashes(dt float64) {
	for i := range r.flashTime {
		if r.flashTime[i] <= 0 {
			continue
		}
		r.flashTime[i] -= dt
		if r.flashTime[i] <= 0 {
			r.flashes[i].hide()
		}
	}
}

// ActiveFlashes returns the number of explosions on screen
func (r *SimRenderer) ActiveFlashes() int {
	n := 0
	for _, t := range r.flashTime {
		if t > 0 {
			n++
		}
	}
	return n
}
