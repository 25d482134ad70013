// pkg/engine/collision.go
package engine

import (
	"github.com/opd-ai/go-orbital/pkg/entity"
	"github.com/opd-ai/go-orbital/pkg/event"
)

// detectCollisions checks every live ship against every live bullet. A
// hit kills the ship and expires the bullet; a ship is hit at most once
// per tick. Ships are scanned in index order, bullets in slot order.
func detectCollisions(ships *entity.Ships, bullets *entity.Bullets, shipSize float64, events *event.Events) {
	thresholdSq := shipSize * shipSize
	for i := range ships.Position {
		if !ships.Alive[i] {
			continue
		}
		for j := range bullets.Position {
			if !bullets.IsLive(j) {
				continue
			}
			if ships.Position[i].DistanceSquared(bullets.Position[j]) < thresholdSq {
				ships.Kill(i, events)
				bullets.Expire(j)
				break
			}
		}
	}
}
