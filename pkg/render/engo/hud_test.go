// pkg/render/engo/hud_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/event"
)

func TestHUD_Pips(t *testing.T) {
	sim := newTestSim(t)
	hud := NewHUD(sim, DefaultPalette())

	if len(hud.turretPips) != sim.Turrets().Len() || len(hud.factoryPips) != sim.Factories().Len() {
		t.Fatalf("expected one pip per structure")
	}
	if hud.turretPips[1].Position.X <= hud.turretPips[0].Position.X {
		t.Error("pips should run left to right")
	}

	sim.Turrets().Destroy(0)
	hud.Sync(sim)
	if hud.turretPips[0].Color != hud.palette.HUDDim {
		t.Error("destroyed turret pip should be dimmed")
	}
	if hud.turretPips[1].Color != hud.palette.Turret {
		t.Error("live turret pip should keep its colour")
	}
}

func TestHUD_RespawnBar(t *testing.T) {
	sim := newTestSim(t)
	hud := NewHUD(sim, DefaultPalette())

	hud.Sync(sim)
	if !hud.respawnBar.Hidden {
		t.Error("respawn bar should be hidden while the player is alive")
	}

	sim.Ships().Kill(0, &event.Events{})
	hud.Sync(sim)
	if hud.respawnBar.Hidden || hud.respawnBar.Width != hudBarWidth {
		t.Errorf("expected a full respawn bar, got hidden=%v width=%f", hud.respawnBar.Hidden, hud.respawnBar.Width)
	}
}

func TestHUD_CountsPlayerDeaths(t *testing.T) {
	bus := event.NewEventBus()
	sim := newTestSim(t, engine.WithEventBus(bus))
	hud := NewHUD(sim, DefaultPalette())
	hud.Subscribe(bus)

	bus.Publish(event.NewIndexEvent(event.ShipDestroyed, sim, 0, 1))
	bus.Publish(event.NewIndexEvent(event.ShipDestroyed, sim, 1, 1))
	if hud.Deaths() != 1 {
		t.Errorf("expected 1 player death, got %d", hud.Deaths())
	}

	hud.Sync(sim)
	if hud.deathPips[0].Hidden || !hud.deathPips[1].Hidden {
		t.Error("expected exactly one death pip shown")
	}

	hud.Close()
	if bus.HandlerCount(event.ShipDestroyed) != 0 {
		t.Error("Close should unsubscribe")
	}
}
