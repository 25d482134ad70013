// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbital/pkg/physics"
)

// CameraSystem keeps engo's camera on the player ship, in world units
type CameraSystem struct {
	scale float32 // pixels per world unit

	target    physics.Vec2
	targetSet bool

	zoom    float32
	minZoom float32
	maxZoom float32

	followSpeed float64
	smoothing   bool

	currentPos physics.Vec2

	// pressed reports whether a named button is held
	pressed func(name string) bool
}

// NewCameraSystem creates a camera for a world drawn at scale pixels per
// unit.
func NewCameraSystem(scale float32) *CameraSystem {
	return &CameraSystem{
		scale:       scale,
		zoom:        1.0,
		minZoom:     0.25,
		maxZoom:     4.0,
		followSpeed: 6.0,
		smoothing:   true,
		pressed:     buttonDown,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
}

// Update handles zoom keys, moves towards the target and moves engo's
// camera.
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	cs.Follow(float64(dt))
	cs.applyCameraTransform()
}

func (cs *CameraSystem) handleZoomInput() {
	if cs.pressed(ButtonZoomIn) {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.pressed(ButtonZoomOut) {
		cs.SetZoom(cs.zoom / 1.02)
	}
	if cs.pressed(ButtonResetZoom) {
		cs.SetZoom(1.0)
	}
}

// Follow moves the camera towards the target over dt seconds
func (cs *CameraSystem) Follow(dt float64) {
	if !cs.targetSet {
		return
	}
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	k := cs.followSpeed * dt
	if k > 1 {
		k = 1
	}
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(k))
}

func (cs *CameraSystem) applyCameraTransform() {
	center := toPoint(cs.currentPos, cs.scale)
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.XAxis, Value: center.X})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.YAxis, Value: center.Y})
	engo.Mailbox.Dispatch(common.CameraMessage{Axis: common.ZAxis, Value: 1 / cs.zoom})
}

// SetTarget sets the position to follow. The first target is taken
// immediately.
func (cs *CameraSystem) SetTarget(target physics.Vec2) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if first || !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget stops following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the zoom level within the limits
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing switches between easing and snapping to the target
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the world position at the centre of the view
func (cs *CameraSystem) GetCurrentPosition() physics.Vec2 {
	return cs.currentPos
}

// WorldToScreen converts a world position to window pixels for a window
// of the given size.
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vec2, width, height float32) engo.Point {
	rel := worldPos.Sub(cs.currentPos).Scale(float64(cs.scale * cs.zoom))
	return engo.Point{X: float32(rel.X) + width/2, Y: float32(rel.Y) + height/2}
}

// ScreenToWorld converts window pixels back to a world position
func (cs *CameraSystem) ScreenToWorld(screen engo.Point, width, height float32) physics.Vec2 {
	rel := physics.Vec2{X: float64(screen.X - width/2), Y: float64(screen.Y - height/2)}
	return cs.currentPos.Add(rel.Scale(1 / float64(cs.scale*cs.zoom)))
}
