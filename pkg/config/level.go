package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidLevel is returned for level descriptors that cannot be built
var ErrInvalidLevel = errors.New("invalid level")

// SurfaceOffset locates a structure relative to the planet surface:
// [distance along the arc from bearing 0, height above the terrain].
type SurfaceOffset [2]float64

// TurretSpec places one turret of the given behaviour level
type TurretSpec struct {
	Position SurfaceOffset `json:"position"`
	Level    int           `json:"level"`
}

// Level describes the terrain and structures of one playable planet
type Level struct {
	Spacing   float64         `json:"spacing"`
	Height    []float64       `json:"height"`
	Turrets   []TurretSpec    `json:"turrets"`
	Factories []SurfaceOffset `json:"factories"`
	Allies    int             `json:"allies"`
}

// Validate checks a level for values the simulation cannot handle
func (l *Level) Validate() error {
	if !(l.Spacing > 0) || math.IsInf(l.Spacing, 0) {
		return fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidLevel, l.Spacing)
	}
	if len(l.Height) < 3 {
		return fmt.Errorf("%w: need at least 3 height samples, got %d", ErrInvalidLevel, len(l.Height))
	}
	for i, h := range l.Height {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return fmt.Errorf("%w: height sample %d is not finite", ErrInvalidLevel, i)
		}
	}
	for i, turret := range l.Turrets {
		if turret.Level < 0 || turret.Level > MaxTurretLevel {
			return fmt.Errorf("%w: turret %d level %d outside 0..%d",
				ErrInvalidLevel, i, turret.Level, MaxTurretLevel)
		}
	}
	if l.Allies < 0 {
		return fmt.Errorf("%w: allies must not be negative, got %d", ErrInvalidLevel, l.Allies)
	}
	return nil
}

// ParseLevel decodes and validates a JSON level descriptor
func ParseLevel(data []byte) (*Level, error) {
	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return &level, nil
}

// LoadLevel loads a level from a JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level file %s: %w", path, err)
	}
	return level, nil
}

// SaveLevel saves a level to a JSON file
func SaveLevel(level *Level, path string) error {
	data, err := json.MarshalIndent(level, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal level: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	return nil
}
