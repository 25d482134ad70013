package telemetry

import (
	"bytes"
	"errors"
	"testing"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/entity"
)

func recordRun(t *testing.T, ticks int) []engine.LogEntry {
	t.Helper()
	sim, err := engine.NewSim(config.DefaultLevel(), config.DefaultSettings(), engine.WithStateLog())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < ticks; i++ {
		sim.SetControl(entity.PlayerIndex, entity.ShipControl{
			Left:  i%3 == 0,
			Right: i%4 != 0,
			Retro: i%11 == 0,
		})
		sim.Update()
	}
	return append([]engine.LogEntry(nil), sim.Log()...)
}

func TestReplay_MatchesRecording(t *testing.T) {
	recorded := recordRun(t, 200)

	// Round-trip through the msgpack sink format first.
	data, err := Encode(recorded, FormatMsgpack)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(bytes.NewReader(data), FormatMsgpack)
	if err != nil {
		t.Fatal(err)
	}

	sim, err := engine.NewSim(config.DefaultLevel(), config.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if err := Replay(sim, decoded, nil); err != nil {
		t.Errorf("Replay failed: %v", err)
	}
	if sim.LogEnabled() {
		t.Error("Replay should restore the disabled log")
	}
}

func TestReplay_DetectsDivergence(t *testing.T) {
	recorded := recordRun(t, 50)
	recorded[20].Position[0] += 1

	sim, err := engine.NewSim(config.DefaultLevel(), config.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	err = Replay(sim, recorded, nil)
	var divergence *Divergence
	if !errors.As(err, &divergence) {
		t.Fatalf("expected *Divergence, got %v", err)
	}
	if divergence.Index != 20 {
		t.Errorf("divergence at %d, want 20", divergence.Index)
	}
}

func TestReplay_TickMismatch(t *testing.T) {
	recorded := recordRun(t, 5)
	sim, err := engine.NewSim(config.DefaultLevel(), config.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	sim.Update()
	if err := Replay(sim, recorded, nil); err == nil {
		t.Error("expected error when the sim is not at the recording's first tick")
	}
	if err := Replay(sim, nil, nil); err != nil {
		t.Errorf("empty recording should replay trivially, got %v", err)
	}
}

func TestReplay_RefusesPendingLog(t *testing.T) {
	recorded := recordRun(t, 5)
	sim, err := engine.NewSim(config.DefaultLevel(), config.DefaultSettings(), engine.WithStateLog())
	if err != nil {
		t.Fatal(err)
	}
	sim.SetControl(entity.PlayerIndex, recorded[0].Control)
	sim.Update()
	pending := sim.Log()[0]

	err = Replay(sim, recorded[1:], nil)
	if !errors.Is(err, ErrPendingLog) {
		t.Fatalf("expected ErrPendingLog, got %v", err)
	}
	if len(sim.Log()) != 1 || sim.Log()[0] != pending {
		t.Error("Replay must leave undrained entries in place")
	}

	sim.TruncateLog()
	if err := Replay(sim, recorded[1:], nil); err != nil {
		t.Errorf("Replay after draining failed: %v", err)
	}
}
