// pkg/engine/statelog.go
package engine

import (
	"math"

	"github.com/opd-ai/go-orbital/pkg/entity"
)

// LogEntry is the player's state at the start of one tick. Positions and
// velocities are rounded to 3 decimals, angles to 4.
type LogEntry struct {
	Tick            uint64             `json:"tick" msgpack:"tick"`
	Control         entity.ShipControl `json:"control" msgpack:"control"`
	Position        [2]float64         `json:"position" msgpack:"position"`
	Velocity        [2]float64         `json:"velocity" msgpack:"velocity"`
	Angle           float64            `json:"angle" msgpack:"angle"`
	AngularVelocity float64            `json:"angularVelocity" msgpack:"angularVelocity"`
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

func (s *Sim) logEntry() LogEntry {
	sh := s.ships
	i := entity.PlayerIndex
	return LogEntry{
		Tick:            s.tick,
		Control:         sh.Control[i],
		Position:        [2]float64{roundTo(sh.Position[i].X, 3), roundTo(sh.Position[i].Y, 3)},
		Velocity:        [2]float64{roundTo(sh.Velocity[i].X, 3), roundTo(sh.Velocity[i].Y, 3)},
		Angle:           roundTo(sh.Angle[i], 4),
		AngularVelocity: roundTo(sh.AngularVelocity[i], 4),
	}
}

// EnableLog starts appending one entry per tick to the state log
func (s *Sim) EnableLog() { s.logEnabled = true }

// DisableLog stops the state log; recorded entries are kept
func (s *Sim) DisableLog() { s.logEnabled = false }

// LogEnabled reports whether the state log is recording
func (s *Sim) LogEnabled() bool { return s.logEnabled }

// Log returns the recorded entries. The slice is owned by the Sim.
func (s *Sim) Log() []LogEntry { return s.log }

// TruncateLog drops every recorded entry
func (s *Sim) TruncateLog() { s.log = s.log[:0] }
