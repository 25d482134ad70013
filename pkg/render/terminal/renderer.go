// Package terminal draws a running simulation in a terminal with tcell
// and maps key presses to the player's ShipControl.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// cellAspect is the height of a terminal cell relative to its width
const cellAspect = 2.0

// Glyphs used for each kind of object
const (
	GlyphTerrain   = '#'
	GlyphPlayer    = '@'
	GlyphAlly      = 'a'
	GlyphTurret    = 'T'
	GlyphWreck     = 'x'
	GlyphFactory   = 'F'
	GlyphBullet    = '.'
	GlyphBomb      = 'o'
	GlyphExplosion = '*'
)

var (
	styleTerrain   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleAlly      = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleTurret    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleWreck     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFactory   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleBullet    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBomb      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleExplosion = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

// Renderer draws a Sim onto a tcell screen, centred on the player. The
// top row is a status line.
type Renderer struct {
	screen tcell.Screen
	scale  float64 // world units per column
	center physics.Vec2
}

// NewRenderer creates a renderer drawing at scale world units per column
func NewRenderer(screen tcell.Screen, scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{screen: screen, scale: scale}
}

// SetScale changes the zoom level
func (r *Renderer) SetScale(scale float64) {
	if scale > 0 {
		r.scale = scale
	}
}

// Scale returns the current zoom level
func (r *Renderer) Scale() float64 {
	return r.scale
}

// SetCenter sets the world position drawn at the middle of the screen
func (r *Renderer) SetCenter(pos physics.Vec2) {
	r.center = pos
}

// worldToScreen converts a world position to a cell. ok is false when the
// cell falls outside the map area.
func (r *Renderer) worldToScreen(pos physics.Vec2) (x, y int, ok bool) {
	w, h := r.screen.Size()
	x = int(math.Floor(float64(w)/2 + (pos.X-r.center.X)/r.scale))
	y = int(math.Floor(float64(h)/2 + (pos.Y-r.center.Y)/(r.scale*cellAspect)))
	return x, y, x >= 0 && x < w && y >= 1 && y < h
}

// screenToWorld returns the world position at the centre of a cell
func (r *Renderer) screenToWorld(x, y int) physics.Vec2 {
	w, h := r.screen.Size()
	return physics.Vec2{
		X: r.center.X + (float64(x)+0.5-float64(w)/2)*r.scale,
		Y: r.center.Y + (float64(y)+0.5-float64(h)/2)*r.scale*cellAspect,
	}
}

func (r *Renderer) plot(pos physics.Vec2, glyph rune, style tcell.Style) {
	if x, y, ok := r.worldToScreen(pos); ok {
		r.screen.SetContent(x, y, glyph, nil, style)
	}
}

// Draw renders the current state of sim plus the explosions of the last
// tick, then shows the frame.
func (r *Renderer) Draw(sim *engine.Sim, events event.Events) {
	r.screen.Clear()
	r.center = sim.Player().Position

	r.drawTerrain(sim.Planet())
	r.drawStructures(sim.Turrets(), sim.Factories())
	r.drawProjectiles(sim.Bullets(), sim.Bombs())
	r.drawShips(sim.Ships())
	for _, p := range events.Explosions {
		r.plot(p, GlyphExplosion, styleExplosion)
	}
	r.drawStatus(sim)

	r.screen.Show()
}

func (r *Renderer) drawTerrain(planet *entity.Planet) {
	w, h := r.screen.Size()
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			if planet.Altitude(r.screenToWorld(x, y)) <= 0 {
				r.screen.SetContent(x, y, GlyphTerrain, nil, styleTerrain)
			}
		}
	}
}

func (r *Renderer) drawStructures(turrets *entity.Turrets, factories *entity.Factories) {
	for i := range turrets.Position {
		if !turrets.Alive[i] {
			r.plot(turrets.Position[i], GlyphWreck, styleWreck)
			continue
		}
		r.plot(turrets.Position[i], turretGlyph(turrets.Level[i]), styleTurret)
	}
	for i := range factories.Position {
		if factories.Alive[i] {
			r.plot(factories.Position[i], GlyphFactory, styleFactory)
		} else {
			r.plot(factories.Position[i], GlyphWreck, styleWreck)
		}
	}
}

// turretGlyph shows the level digit of a live turret
func turretGlyph(level int) rune {
	if level < 0 || level > 9 {
		return GlyphTurret
	}
	return rune('0' + level)
}

func (r *Renderer) drawProjectiles(bullets *entity.Bullets, bombs *entity.Bombs) {
	for i := range bullets.Position {
		if bullets.IsLive(i) {
			r.plot(bullets.Position[i], GlyphBullet, styleBullet)
		}
	}
	for i := range bombs.Position {
		if bombs.IsLive(i) {
			r.plot(bombs.Position[i], GlyphBomb, styleBomb)
		}
	}
}

func (r *Renderer) drawShips(ships *entity.Ships) {
	// Allies first so the player is never hidden.
	for i := ships.Len() - 1; i >= 0; i-- {
		if !ships.Alive[i] {
			continue
		}
		if i == entity.PlayerIndex {
			r.plot(ships.Position[i], GlyphPlayer, stylePlayer)
		} else {
			r.plot(ships.Position[i], GlyphAlly, styleAlly)
		}
	}
}

func (r *Renderer) drawStatus(sim *engine.Sim) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	drawString(r.screen, 0, 0, statusLine(sim), styleStatus)
}

// statusLine summarises the game state for the top row
func statusLine(sim *engine.Sim) string {
	turrets, factories := sim.Turrets(), sim.Factories()
	line := fmt.Sprintf(" t=%.1fs  turrets %d/%d  factories %d/%d",
		sim.Time(),
		turrets.Remaining(), turrets.Len(),
		factories.Remaining(), factories.Len(),
	)
	player := sim.Player()
	switch {
	case sim.Cleared():
		line += "  CLEARED"
	case !player.Alive:
		line += fmt.Sprintf("  respawn in %.1fs", player.RespawnTimer)
	default:
		line += fmt.Sprintf("  alt %.0f", sim.Planet().Altitude(player.Position))
	}
	return line
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	w, _ := screen.Size()
	for _, c := range s {
		if x >= w {
			return
		}
		screen.SetContent(x, y, c, nil, style)
		x++
	}
}
