// pkg/entity/factory.go
package entity

import (
	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// Factories are surface structures with no behaviour: bombing objectives
type Factories struct {
	Position []physics.Vec2
	Alive    []bool
}

// NewFactories places one factory per surface offset
func NewFactories(planet *Planet, offsets []config.SurfaceOffset) *Factories {
	f := &Factories{
		Position: make([]physics.Vec2, len(offsets)),
		Alive:    make([]bool, len(offsets)),
	}
	for i, offset := range offsets {
		f.Position[i], _ = planet.SurfacePosition(offset)
		f.Alive[i] = true
	}
	return f
}

// Len returns the number of factories
func (f *Factories) Len() int {
	return len(f.Position)
}

// Destroy marks factory i destroyed. It reports whether it was alive.
func (f *Factories) Destroy(i int) bool {
	wasAlive := f.Alive[i]
	f.Alive[i] = false
	return wasAlive
}

// Remaining returns the number of factories still standing
func (f *Factories) Remaining() int {
	return countAlive(f.Alive)
}

func countAlive(alive []bool) int {
	n := 0
	for _, a := range alive {
		if a {
			n++
		}
	}
	return n
}
