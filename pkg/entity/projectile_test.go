package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

func TestBullets_FireUsesFreeSlot(t *testing.T) {
	bullets := NewBullets(4)

	for i := 0; i < 3; i++ {
		if slot := bullets.Fire(physics.Vec2{X: float64(i)}, 0, 20, 4); slot != i {
			t.Errorf("bullet %d went to slot %d", i, slot)
		}
	}
	bullets.Expire(1)
	if slot := bullets.Fire(physics.Vec2{}, 0, 20, 4); slot != 1 {
		t.Errorf("expected freed slot 1 to be reused, got %d", slot)
	}
	if bullets.Live() != 4 {
		t.Errorf("Live() = %d, want 4", bullets.Live())
	}
}

func TestBullets_RecyclesOldestWhenFull(t *testing.T) {
	const capacity = 8
	bullets := NewBullets(capacity)
	planet := flatPlanet()
	high := physics.FromBearing(0, planet.Radius+30)

	// Fire capacity+1 bullets one tick apart: the first is the oldest.
	for i := 0; i <= capacity; i++ {
		bullets.Fire(high, math.Pi/2, 1, 4)
		bullets.Update(0.01, planet)
	}

	if bullets.Live() != capacity {
		t.Fatalf("Live() = %d, want %d", bullets.Live(), capacity)
	}
	// Slot 0 held the oldest bullet and now holds the newest.
	for i := 1; i < capacity; i++ {
		if bullets.TimeToLive[0] <= bullets.TimeToLive[i] {
			t.Errorf("slot 0 ttl %f should be the newest, slot %d has %f",
				bullets.TimeToLive[0], i, bullets.TimeToLive[i])
		}
	}
}

func TestBullets_RecyclesLowestTimeToLive(t *testing.T) {
	bullets := NewBullets(3)
	bullets.Fire(physics.Vec2{}, 0, 1, 5)
	bullets.Fire(physics.Vec2{}, 0, 1, 2)
	bullets.Fire(physics.Vec2{}, 0, 1, 3)

	if slot := bullets.Fire(physics.Vec2{X: 7}, 0, 1, 9); slot != 1 {
		t.Errorf("expected slot 1 (lowest ttl) to be recycled, got %d", slot)
	}
	if bullets.Position[1].X != 7 || bullets.TimeToLive[1] != 9 {
		t.Errorf("recycled slot not overwritten: %+v ttl %f", bullets.Position[1], bullets.TimeToLive[1])
	}
}

func TestBullets_Update(t *testing.T) {
	planet := flatPlanet()

	t.Run("straight line and ttl", func(t *testing.T) {
		bullets := NewBullets(1)
		start := physics.FromBearing(0, planet.Radius+20)
		bullets.Fire(start, math.Pi/2, 10, 1)
		bullets.Update(0.1, planet)

		want := start.Add(physics.Vec2{X: 1})
		if !approxEqual(bullets.Position[0].X, want.X, 1e-9) || !approxEqual(bullets.Position[0].Y, want.Y, 1e-9) {
			t.Errorf("Position = %v, want %v", bullets.Position[0], want)
		}
		if !approxEqual(bullets.TimeToLive[0], 0.9, 1e-12) {
			t.Errorf("TimeToLive = %f, want 0.9", bullets.TimeToLive[0])
		}
	})

	t.Run("expires after ttl", func(t *testing.T) {
		bullets := NewBullets(1)
		bullets.Fire(physics.FromBearing(0, planet.Radius+20), math.Pi/2, 1, 0.05)
		for i := 0; i < 10; i++ {
			bullets.Update(0.01, planet)
		}
		if bullets.IsLive(0) {
			t.Error("bullet should have expired")
		}
	})

	t.Run("terrain occlusion", func(t *testing.T) {
		bullets := NewBullets(1)
		// Fired straight down from just above the ground.
		bullets.Fire(physics.FromBearing(0, planet.Radius+0.5), math.Pi, 20, 4)
		bullets.Update(0.05, planet)
		if bullets.IsLive(0) {
			t.Errorf("bullet below terrain should expire, position %v", bullets.Position[0])
		}
	})

	t.Run("free slots stay put", func(t *testing.T) {
		bullets := NewBullets(2)
		bullets.Update(0.01, planet)
		if bullets.Position[0] != (physics.Vec2{}) || bullets.Live() != 0 {
			t.Error("free slots must not move")
		}
	})
}

func TestBombs_DropAndFall(t *testing.T) {
	planet := flatPlanet()
	bombs := NewBombs(2)
	turrets := NewTurrets(planet, nil, testSettings())
	factories := NewFactories(planet, nil)
	phys := BombPhysics{Gravity: 10, BlastRadius: 5}
	var events event.Events

	start := physics.FromBearing(0, planet.Radius+20)
	slot := bombs.Drop(start, physics.Vec2{}, 3, 10)
	if bombs.Owner[slot] != 3 {
		t.Errorf("Owner = %d, want 3", bombs.Owner[slot])
	}

	bombs.Update(0.1, phys, planet, turrets, factories, &events)
	// Gravity pulls towards the centre, which is +Y at bearing 0.
	if bombs.Velocity[slot].Y <= 0 || !approxEqual(bombs.Velocity[slot].Y, 1, 1e-9) {
		t.Errorf("Velocity = %v, want (0, 1)", bombs.Velocity[slot])
	}
	if bombs.Position[slot].Length() >= start.Length() {
		t.Error("bomb should lose altitude")
	}
	if len(events.Explosions) != 0 {
		t.Error("bomb should not explode mid-air")
	}
}

func TestBombs_BlastDestroysStructures(t *testing.T) {
	planet := flatPlanet()
	settings := testSettings()
	turrets := NewTurrets(planet, []config.TurretSpec{
		{Position: config.SurfaceOffset{0, 0}, Level: 0},
		{Position: config.SurfaceOffset{3, 0}, Level: 1},
		{Position: config.SurfaceOffset{30, 0}, Level: 2},
	}, settings)
	factories := NewFactories(planet, []config.SurfaceOffset{{-2, 0}, {-40, 0}})
	bombs := NewBombs(4)
	phys := BombPhysics{Gravity: settings.Gravity, BlastRadius: settings.BombBlastRadius}
	var events event.Events

	bombs.Drop(physics.FromBearing(0, planet.Radius+2), physics.Vec2{}, 0, 10)
	for i := 0; i < 200 && bombs.Live() > 0; i++ {
		bombs.Update(0.01, phys, planet, turrets, factories, &events)
	}

	if bombs.Live() != 0 {
		t.Fatal("bomb should have detonated on the terrain")
	}
	if turrets.Alive[0] || turrets.Alive[1] {
		t.Error("turrets inside the blast radius should be destroyed")
	}
	if !turrets.Alive[2] {
		t.Error("turret outside the blast radius should survive")
	}
	if factories.Alive[0] != false || factories.Alive[1] != true {
		t.Errorf("unexpected factory state %v", factories.Alive)
	}
	if len(events.Explosions) != 4 {
		t.Errorf("expected 4 explosions (bomb + 3 structures), got %d", len(events.Explosions))
	}
	if len(events.TurretsDestroyed) != 2 || len(events.FactoriesDestroyed) != 1 {
		t.Errorf("destroyed turrets %v factories %v", events.TurretsDestroyed, events.FactoriesDestroyed)
	}
	if turrets.Remaining() != 1 || factories.Remaining() != 1 {
		t.Errorf("Remaining turrets %d factories %d", turrets.Remaining(), factories.Remaining())
	}
}

func TestBombs_DestroyedStructuresStayDestroyed(t *testing.T) {
	planet := flatPlanet()
	settings := testSettings()
	turrets := NewTurrets(planet, []config.TurretSpec{{Position: config.SurfaceOffset{0, 0}}}, settings)
	factories := NewFactories(planet, nil)
	bombs := NewBombs(2)
	phys := BombPhysics{Gravity: settings.Gravity, BlastRadius: settings.BombBlastRadius}
	var events event.Events

	for drop := 0; drop < 2; drop++ {
		bombs.Drop(physics.FromBearing(0, planet.Radius+1), physics.Vec2{}, 0, 10)
		for i := 0; i < 100 && bombs.Live() > 0; i++ {
			bombs.Update(0.01, phys, planet, turrets, factories, &events)
		}
	}

	if len(events.TurretsDestroyed) != 1 {
		t.Errorf("turret destroyed %d times, want once", len(events.TurretsDestroyed))
	}
}
