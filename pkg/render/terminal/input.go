package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbital/pkg/entity"
)

// DefaultHoldTime is how long a key counts as held after its last press.
// Terminals only report presses (plus auto-repeat), never releases.
const DefaultHoldTime = 150 * time.Millisecond

type action int

const (
	actionLeft action = iota
	actionRight
	actionRetro
	actionThrust
	actionBomb
	actionCount
)

// Input turns terminal key presses into a ShipControl. A key stays held
// until HoldTime passes without a repeat.
type Input struct {
	HoldTime time.Duration

	pressed [actionCount]time.Time
	quit    bool
}

// NewInput creates an input mapper with DefaultHoldTime
func NewInput() *Input {
	return &Input{HoldTime: DefaultHoldTime}
}

// HandleEvent records a key press at now. It returns false for events
// that are not game keys.
func (in *Input) HandleEvent(ev tcell.Event, now time.Time) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch key.Key() {
	case tcell.KeyLeft:
		in.pressed[actionLeft] = now
	case tcell.KeyRight:
		in.pressed[actionRight] = now
	case tcell.KeyDown:
		in.pressed[actionRetro] = now
	case tcell.KeyUp:
		in.pressed[actionThrust] = now
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.quit = true
	case tcell.KeyRune:
		switch key.Rune() {
		case 'x', 'X':
			in.pressed[actionBomb] = now
		case 'q', 'Q':
			in.quit = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (in *Input) held(a action, now time.Time) bool {
	at := in.pressed[a]
	return !at.IsZero() && now.Sub(at) < in.HoldTime
}

// Control returns the ship control implied by the keys held at now. Up
// fires both side thrusters.
func (in *Input) Control(now time.Time) entity.ShipControl {
	thrust := in.held(actionThrust, now)
	return entity.ShipControl{
		Left:     thrust || in.held(actionLeft, now),
		Right:    thrust || in.held(actionRight, now),
		Retro:    in.held(actionRetro, now),
		DropBomb: in.held(actionBomb, now),
	}
}

// Quit reports whether a quit key was pressed
func (in *Input) Quit() bool {
	return in.quit
}

// Release forgets every held key
func (in *Input) Release() {
	in.pressed = [actionCount]time.Time{}
}
