// pkg/render/engo/assets.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbital/pkg/physics"
)

// Palette holds the colours of every kind of object
type Palette struct {
	Terrain   color.Color
	Player    color.Color
	Ally      color.Color
	Turret    color.Color
	Gun       color.Color
	Wreck     color.Color
	Factory   color.Color
	Bullet    color.Color
	Bomb      color.Color
	Explosion color.Color
	HUD       color.Color
	HUDDim    color.Color
	HUDAlert  color.Color
}

// DefaultPalette returns the viewer's colours
func DefaultPalette() Palette {
	return Palette{
		Terrain:   color.RGBA{150, 130, 80, 255},
		Player:    color.RGBA{80, 220, 255, 255},
		Ally:      color.RGBA{40, 160, 160, 255},
		Turret:    color.RGBA{220, 60, 60, 255},
		Gun:       color.RGBA{255, 120, 120, 255},
		Wreck:     color.RGBA{90, 90, 90, 255},
		Factory:   color.RGBA{170, 80, 200, 255},
		Bullet:    color.RGBA{255, 230, 80, 255},
		Bomb:      color.RGBA{240, 240, 240, 255},
		Explosion: color.RGBA{255, 150, 30, 255},
		HUD:       color.RGBA{255, 255, 255, 255},
		HUDDim:    color.RGBA{90, 90, 90, 255},
		HUDAlert:  color.RGBA{255, 0, 0, 255},
	}
}

// Sizes of the drawn shapes in world units
const (
	terrainWidth  = 0.5
	turretSize    = 2.0
	gunWidth      = 0.4
	factorySize   = 3.0
	bulletSize    = 0.6
	bombSize      = 0.8
	explosionSize = 4.0
)

// sprite is one drawable entity with the components the render system
// needs.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

func newSprite(drawable common.Drawable, c color.Color, width, height float32) *sprite {
	return &sprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: drawable,
			Color:    c,
			Hidden:   true,
		},
		SpaceComponent: common.SpaceComponent{
			Width:  width,
			Height: height,
		},
	}
}

// spriteAdder is the part of common.RenderSystem the renderer uses
type spriteAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

func (s *sprite) addTo(system spriteAdder) {
	system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
}

// hide keeps the entity registered but stops drawing it
func (s *sprite) hide() {
	s.Hidden = true
}

// centerAt shows the sprite centred on p, turned by bearing radians
func (s *sprite) centerAt(p engo.Point, bearing float64) {
	s.Hidden = false
	s.Rotation = degrees(bearing)
	s.SetCenter(p)
}

// stretch shows the sprite as a bar from a to b
func (s *sprite) stretch(a, b engo.Point) {
	d := engo.Point{X: b.X - a.X, Y: b.Y - a.Y}
	s.Hidden = false
	s.Position = a
	s.Width = float32(math.Hypot(float64(d.X), float64(d.Y)))
	s.Rotation = degrees(math.Atan2(float64(d.Y), float64(d.X)))
}

func degrees(radians float64) float32 {
	return float32(radians * 180 / math.Pi)
}

// toPoint converts a world position to engo's pixel space
func toPoint(p physics.Vec2, scale float32) engo.Point {
	return engo.Point{X: float32(p.X) * scale, Y: float32(p.Y) * scale}
}

func shipShape() common.Drawable {
	return common.Triangle{TriangleType: common.TriangleIsosceles}
}

func blockShape() common.Drawable {
	return common.Rectangle{}
}

func roundShape() common.Drawable {
	return common.Circle{}
}

func ringShape(border color.Color) common.Drawable {
	return common.Circle{BorderWidth: 2, BorderColor: border}
}
