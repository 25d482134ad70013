// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
)

// HUD layout in window pixels
const (
	hudMargin    = 10
	hudPip       = 8
	hudGap       = 4
	hudRow       = hudPip + 2*hudGap
	hudBarWidth  = 120
	maxDeathPips = 20
)

// HUD draws the game status as rows of pips: live and destroyed
// turrets, live and destroyed factories, player deaths, and a respawn
// bar while the player is dead.
type HUD struct {
	palette Palette

	turretPips  []*sprite
	factoryPips []*sprite
	deathPips   []*sprite
	respawnBar  *sprite

	deaths int
	sub    *event.Subscription
	bus    *event.Bus
}

// NewHUD creates pips for every structure of sim
func NewHUD(sim *engine.Sim, palette Palette) *HUD {
	hud := &HUD{palette: palette}
	for i := 0; i < sim.Turrets().Len(); i++ {
		hud.turretPips = append(hud.turretPips, newPip(palette.Turret, i, 0))
	}
	for i := 0; i < sim.Factories().Len(); i++ {
		hud.factoryPips = append(hud.factoryPips, newPip(palette.Factory, i, 1))
	}
	for i := 0; i < maxDeathPips; i++ {
		hud.deathPips = append(hud.deathPips, newPip(palette.HUDAlert, i, 2))
	}
	hud.respawnBar = newSprite(blockShape(), palette.HUD, 0, hudPip)
	hud.respawnBar.Position = engo.Point{X: hudMargin, Y: hudMargin + 3*hudRow}
	return hud
}

// newPip places a small square at column col of row row
func newPip(c color.Color, col, row int) *sprite {
	s := newSprite(blockShape(), c, hudPip, hudPip)
	s.Position = pipPosition(col, row)
	s.Hidden = false
	return s
}

func pipPosition(col, row int) engo.Point {
	return engo.Point{
		X: hudMargin + float32(col)*(hudPip+hudGap),
		Y: hudMargin + float32(row)*hudRow,
	}
}

// Subscribe counts player deaths published on bus
func (hud *HUD) Subscribe(bus *event.Bus) {
	hud.bus = bus
	hud.sub = bus.Subscribe(event.ShipDestroyed, func(e event.Event) {
		if ie, ok := e.(*event.IndexEvent); ok && ie.Index == entity.PlayerIndex {
			hud.deaths++
		}
	})
}

// Close drops the bus subscription
func (hud *HUD) Close() {
	if hud.bus != nil && hud.sub != nil {
		hud.bus.Unsubscribe(hud.sub)
		hud.sub = nil
	}
}

// Deaths returns the number of player deaths seen
func (hud *HUD) Deaths() int {
	return hud.deaths
}

func (hud *HUD) sprites() []*sprite {
	all := append([]*sprite{}, hud.turretPips...)
	all = append(all, hud.factoryPips...)
	all = append(all, hud.deathPips...)
	return append(all, hud.respawnBar)
}

// AddTo registers the HUD sprites with the render system, drawn in
// window space on top of the world.
func (hud *HUD) AddTo(system spriteAdder) {
	for _, s := range hud.sprites() {
		s.SetShader(common.HUDShader)
		s.SetZIndex(100)
		s.addTo(system)
	}
}

// Sync updates the pips from the sim state
func (hud *HUD) Sync(sim *engine.Sim) {
	turrets, factories := sim.Turrets(), sim.Factories()
	for i, s := range hud.turretPips {
		s.Color = hud.palette.Turret
		if !turrets.Alive[i] {
			s.Color = hud.palette.HUDDim
		}
	}
	for i, s := range hud.factoryPips {
		s.Color = hud.palette.Factory
		if !factories.Alive[i] {
			s.Color = hud.palette.HUDDim
		}
	}
	for i, s := range hud.deathPips {
		s.Hidden = i >= hud.deaths
	}

	player := sim.Player()
	if player.Alive {
		hud.respawnBar.hide()
		return
	}
	full := sim.Settings().PlayerRespawnTime
	hud.respawnBar.Hidden = false
	hud.respawnBar.Width = hudBarWidth * float32(player.RespawnTimer/full)
}
