// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbital/pkg/entity"
)

// Button names registered with engo.Input
const (
	ButtonLeft      = "left"
	ButtonRight     = "right"
	ButtonRetro     = "retro"
	ButtonThrust    = "thrust"
	ButtonBomb      = "bomb"
	ButtonZoomIn    = "zoomIn"
	ButtonZoomOut   = "zoomOut"
	ButtonResetZoom = "resetZoom"
)

// SetupInputBindings registers the viewer's keys. Call it from
// Scene.Setup, after engo has initialised its input manager.
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonLeft, engo.KeyArrowLeft, engo.KeyA)
	engo.Input.RegisterButton(ButtonRight, engo.KeyArrowRight, engo.KeyD)
	engo.Input.RegisterButton(ButtonRetro, engo.KeyArrowDown, engo.KeyS)
	engo.Input.RegisterButton(ButtonThrust, engo.KeyArrowUp, engo.KeyW)
	engo.Input.RegisterButton(ButtonBomb, engo.KeyX, engo.KeySpace)
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyE)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyQ)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyR)
}

func buttonDown(name string) bool {
	return engo.Input.Button(name).Down()
}

// Keyboard reads the player's ShipControl from held buttons
type Keyboard struct {
	pressed func(name string) bool
}

// NewKeyboard reads buttons from engo.Input
func NewKeyboard() *Keyboard {
	return &Keyboard{pressed: buttonDown}
}

// Control returns the control implied by the held buttons. Thrust fires
// both side thrusters.
func (k *Keyboard) Control() entity.ShipControl {
	thrust := k.pressed(ButtonThrust)
	return entity.ShipControl{
		Left:     thrust || k.pressed(ButtonLeft),
		Right:    thrust || k.pressed(ButtonRight),
		Retro:    k.pressed(ButtonRetro),
		DropBomb: k.pressed(ButtonBomb),
	}
}
