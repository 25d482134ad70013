package telemetry

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
)

// ErrPendingLog is returned when the sim still holds state log entries
// that have not been drained
var ErrPendingLog = errors.New("sim has undrained state log entries")

// Divergence describes the first entry at which a replay disagreed with
// its recording
type Divergence struct {
	Index    int
	Recorded engine.LogEntry
	Replayed engine.LogEntry
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("replay diverged at entry %d (tick %d): recorded %+v, replayed %+v",
		d.Index, d.Recorded.Tick, d.Recorded, d.Replayed)
}

// Replay drives sim with the player controls of a recording and checks
// that every replayed entry matches. The sim must be at the tick the
// recording starts at and its state log must be empty: drain it first.
// before, if non-nil, runs after the player control
// is set and before each tick, so that the ally controllers of the
// recording can be reproduced. Replay returns a *Divergence on the first
// mismatch.
func Replay(sim *engine.Sim, recorded []engine.LogEntry, before func(*engine.Sim)) error {
	if len(recorded) == 0 {
		return nil
	}
	if recorded[0].Tick != sim.Tick() {
		return fmt.Errorf("recording starts at tick %d, sim is at tick %d", recorded[0].Tick, sim.Tick())
	}

	if n := len(sim.Log()); n > 0 {
		return fmt.Errorf("%w: %d entries", ErrPendingLog, n)
	}

	wasEnabled := sim.LogEnabled()
	sim.EnableLog()
	if !wasEnabled {
		defer sim.DisableLog()
	}

	for k, entry := range recorded {
		sim.SetControl(entity.PlayerIndex, entry.Control)
		if before != nil {
			before(sim)
		}
		sim.Update()

		log := sim.Log()
		if replayed := log[len(log)-1]; replayed != entry {
			return &Divergence{Index: k, Recorded: entry, Replayed: replayed}
		}
	}
	return nil
}
