// Package agent provides controllers that write ship controls before each
// simulation tick.
package agent

import (
	"math"

	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// Controller writes the ShipControl of one ship from the current state.
// It runs between ticks and must not modify anything else.
type Controller interface {
	Control(sim *engine.Sim)
}

// ControllerFunc adapts a function to the Controller interface
type ControllerFunc func(sim *engine.Sim)

// Control calls f(sim)
func (f ControllerFunc) Control(sim *engine.Sim) {
	f(sim)
}

// ApplyAll runs every controller in order. Call it before Sim.Update.
func ApplyAll(sim *engine.Sim, controllers []Controller) {
	for _, c := range controllers {
		c.Control(sim)
	}
}

// Idle clears the control of its ship every tick
type Idle struct {
	Index int
}

// Control releases every input of the ship
func (a Idle) Control(sim *engine.Sim) {
	sim.SetControl(a.Index, entity.ShipControl{})
}

// ScriptAgent keeps its ship in formation: it flies towards the ship's
// current spawn slot while matching the player's velocity, and copies the
// player's bomb input.
type ScriptAgent struct {
	Index int

	MaxSpeed  float64 // cap on the closing speed
	Gain      float64 // closing speed per unit of distance
	Deadband  float64 // velocity error below which thrusters stay off
	AlignedAt float64 // heading error for full forward thrust
	TurnAt    float64 // heading error beyond which retro fires while turning
}

// NewScriptAgent creates a formation agent for ship index with the
// default tuning.
func NewScriptAgent(index int) *ScriptAgent {
	return &ScriptAgent{
		Index:     index,
		MaxSpeed:  30,
		Gain:      3,
		Deadband:  4,
		AlignedAt: 0.2,
		TurnAt:    0.4,
	}
}

// Control writes the ship's thrusters for the next tick
func (a *ScriptAgent) Control(sim *engine.Sim) {
	ships := sim.Ships()
	i := a.Index
	if !ships.Alive[i] {
		return
	}

	target := ships.SpawnPosition(i)
	targetVelocity := ships.Velocity[entity.PlayerIndex]

	offset := target.Sub(ships.Position[i])
	distance := offset.Length()
	ideal := targetVelocity
	if distance > physics.MinRadius {
		speed := math.Min(a.Gain*distance, a.MaxSpeed)
		ideal = ideal.Add(offset.Scale(speed / distance))
	}

	dv := ideal.Sub(ships.Velocity[i])
	delta := physics.AngleBetween(ships.Angle[i], dv.Bearing())

	control := ships.Control[i]
	control.DropBomb = ships.Control[entity.PlayerIndex].DropBomb
	switch {
	case dv.Length() < a.Deadband:
		control.Left, control.Right, control.Retro = false, false, false
	case math.Abs(delta) < a.AlignedAt:
		control.Left, control.Right, control.Retro = true, true, false
	case math.Abs(delta) < a.TurnAt:
		control.Left, control.Right, control.Retro = delta > 0, delta < 0, false
	default:
		control.Left, control.Right, control.Retro = delta > 0, delta < 0, true
	}
	sim.SetControl(i, control)
}

// Formation returns a ScriptAgent for every ally of sim (indices >= 1)
func Formation(sim *engine.Sim) []Controller {
	n := sim.Ships().Len()
	controllers := make([]Controller, 0, n-1)
	for i := 1; i < n; i++ {
		controllers = append(controllers, NewScriptAgent(i))
	}
	return controllers
}
