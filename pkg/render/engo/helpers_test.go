// pkg/render/engo/helpers_test.go
package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/engine"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newTestSim(t *testing.T, opts ...engine.Option) *engine.Sim {
	t.Helper()
	sim, err := engine.NewSim(config.DefaultLevel(), config.DefaultSettings(), opts...)
	if err != nil {
		t.Fatalf("NewSim failed: %v", err)
	}
	return sim
}

// fakeButtons reports the named buttons as held
type fakeButtons map[string]bool

func (f fakeButtons) pressed(name string) bool {
	return f[name]
}

// recordingSystem stands in for common.RenderSystem
type recordingSystem struct {
	added []*ecs.BasicEntity
}

func (r *recordingSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	r.added = append(r.added, basic)
}
