package config

import (
	"fmt"
	"math"
	"sort"
)

// LevelTemplate is a named built-in level
type LevelTemplate struct {
	Name        string
	Description string
	build       func() *Level
}

var levelTemplates = map[string]LevelTemplate{
	"training": {
		Name:        "Training",
		Description: "Flat planet, one sweeping turret and one factory",
		build: func() *Level {
			return &Level{
				Spacing:   10,
				Height:    make([]float64, 24),
				Turrets:   []TurretSpec{{Position: SurfaceOffset{60, 0}, Level: 0}},
				Factories: []SurfaceOffset{{120, 0}},
			}
		},
	},
	"hills": {
		Name:        "Rolling Hills",
		Description: "Hilly terrain with mixed turrets and two allies",
		build: func() *Level {
			return &Level{
				Spacing: 10,
				Height:  rollingHills(36, 4, 3),
				Turrets: []TurretSpec{
					{Position: SurfaceOffset{50, 0}, Level: 0},
					{Position: SurfaceOffset{110, 0}, Level: 1},
					{Position: SurfaceOffset{190, 0}, Level: 2},
				},
				Factories: []SurfaceOffset{{80, 0}, {230, 0}},
				Allies:    2,
			}
		},
	},
	"fortress": {
		Name:        "Fortress",
		Description: "Large planet ringed by leading, player-hunting turrets",
		build: func() *Level {
			return &Level{
				Spacing: 10,
				Height:  rollingHills(48, 6, 5),
				Turrets: []TurretSpec{
					{Position: SurfaceOffset{60, 0}, Level: 1},
					{Position: SurfaceOffset{140, 0}, Level: 2},
					{Position: SurfaceOffset{220, 0}, Level: 3},
					{Position: SurfaceOffset{300, 0}, Level: 3},
					{Position: SurfaceOffset{380, 0}, Level: 2},
				},
				Factories: []SurfaceOffset{{100, 0}, {260, 0}, {420, 0}},
				Allies:    4,
			}
		},
	},
}

// rollingHills builds n height samples of a smooth periodic terrain. The
// first sample is always zero so the default spawn point is at radius.
func rollingHills(n int, amplitude float64, bumps int) []float64 {
	height := make([]float64, n)
	for i := range height {
		theta := 2 * math.Pi * float64(i) / float64(n)
		h := amplitude * (1 - math.Cos(float64(bumps)*theta)) / 2
		height[i] = math.Round(h*10) / 10
	}
	return height
}

// GetLevelTemplate returns a fresh copy of the named built-in level, or nil
func GetLevelTemplate(name string) *Level {
	template, ok := levelTemplates[name]
	if !ok {
		return nil
	}
	return template.build()
}

// ListLevelTemplates returns the names of the built-in levels, sorted
func ListLevelTemplates() []string {
	names := make([]string, 0, len(levelTemplates))
	for name := range levelTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DescribeLevelTemplate returns a one-line description of a built-in level
func DescribeLevelTemplate(name string) (string, error) {
	template, ok := levelTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown level template %q", name)
	}
	return fmt.Sprintf("%s: %s", template.Name, template.Description), nil
}

// DefaultLevel returns the level used when no level file is given
func DefaultLevel() *Level {
	return GetLevelTemplate("hills")
}
