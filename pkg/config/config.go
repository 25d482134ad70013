// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// MaxTurretLevel is the highest turret behaviour level.
const MaxTurretLevel = 3

// TurretLevel contains the per-level turret tuning
type TurretLevel struct {
	RotationRate float64 `json:"rotationRate"` // radians per second
	BulletSpeed  float64 `json:"bulletSpeed"`
}

// Settings contains every physics constant of the simulation. It is
// passed by value into the simulation and never mutated afterwards.
type Settings struct {
	Dt float64 `json:"dt"` // seconds per tick

	// Ship flight model
	Gravity         float64 `json:"gravity"`
	Thrust          float64 `json:"thrust"`
	VelocityDamping float64 `json:"velocityDamping"`
	RotationRate    float64 `json:"rotationRate"`
	RotationDamping float64 `json:"rotationDamping"`
	Lift            float64 `json:"lift"`
	ShipSize        float64 `json:"shipSize"`
	MaxAltitude     float64 `json:"maxAltitude"`

	// Spawning
	SpawnAltitude     float64 `json:"spawnAltitude"`
	AllySpacing       float64 `json:"allySpacing"`
	AllyColumns       int     `json:"allyColumns"`
	PlayerRespawnTime float64 `json:"playerRespawnTime"`
	AllyRespawnTime   float64 `json:"allyRespawnTime"`

	// Bombs
	BombReloadTime  float64 `json:"bombReloadTime"`
	BombOffset      float64 `json:"bombOffset"`
	BombTimeToLive  float64 `json:"bombTimeToLive"`
	BombBlastRadius float64 `json:"bombBlastRadius"`
	MaxBombs        int     `json:"maxBombs"`

	// Turrets and bullets
	TurretReloadTime  float64                         `json:"turretReloadTime"`
	TurretLength      float64                         `json:"turretLength"`
	TurretSweepArc    float64                         `json:"turretSweepArc"`
	TurretAngleWeight float64                         `json:"turretAngleWeight"`
	TurretPlayerBias  float64                         `json:"turretPlayerBias"`
	BulletRange       float64                         `json:"bulletRange"`
	MaxBullets        int                             `json:"maxBullets"`
	TurretLevels      [MaxTurretLevel + 1]TurretLevel `json:"turretLevels"`
}

// DefaultSettings returns the tuned game constants
func DefaultSettings() Settings {
	return Settings{
		Dt: 0.01,

		Gravity:         10,
		Thrust:          30,
		VelocityDamping: 0.07,
		RotationRate:    5,
		RotationDamping: 1.5,
		Lift:            0.1,
		ShipSize:        2,
		MaxAltitude:     40,

		SpawnAltitude:     10,
		AllySpacing:       3,
		AllyColumns:       3,
		PlayerRespawnTime: 2,
		AllyRespawnTime:   1,

		BombReloadTime:  0.5,
		BombOffset:      1.5,
		BombTimeToLive:  10,
		BombBlastRadius: 5,
		MaxBombs:        20,

		TurretReloadTime:  0.75,
		TurretLength:      1.5,
		TurretSweepArc:    math.Pi / 3,
		TurretAngleWeight: 10,
		TurretPlayerBias:  150,
		BulletRange:       80,
		MaxBullets:        100,
		TurretLevels: [MaxTurretLevel + 1]TurretLevel{
			{RotationRate: 0.5, BulletSpeed: 20},
			{RotationRate: 0.5, BulletSpeed: 20},
			{RotationRate: 1.0, BulletSpeed: 25},
			{RotationRate: 1.5, BulletSpeed: 30},
		},
	}
}

// ShipRadius returns the collision radius of a ship against terrain
func (s Settings) ShipRadius() float64 {
	return s.ShipSize / 2
}

// BulletTimeToLive returns the lifetime of a bullet fired by a turret of
// the given level, so that every level reaches exactly BulletRange.
func (s Settings) BulletTimeToLive(level int) float64 {
	return s.BulletRange / s.TurretLevels[level].BulletSpeed
}

// RespawnTime returns the respawn delay of ship index i
func (s Settings) RespawnTime(i int) float64 {
	if i == 0 {
		return s.PlayerRespawnTime
	}
	return s.AllyRespawnTime
}

// Validate checks that the settings describe a runnable simulation
func (s Settings) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"dt", s.Dt},
		{"shipSize", s.ShipSize},
		{"maxAltitude", s.MaxAltitude},
		{"bombTimeToLive", s.BombTimeToLive},
		{"turretReloadTime", s.TurretReloadTime},
		{"bulletRange", s.BulletRange},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("setting %s must be positive and finite, got %v", p.name, p.value)
		}
	}
	if s.MaxBullets < 1 {
		return fmt.Errorf("setting maxBullets must be at least 1, got %d", s.MaxBullets)
	}
	if s.MaxBombs < 1 {
		return fmt.Errorf("setting maxBombs must be at least 1, got %d", s.MaxBombs)
	}
	if s.AllyColumns < 1 {
		return fmt.Errorf("setting allyColumns must be at least 1, got %d", s.AllyColumns)
	}
	if s.SpawnAltitude <= s.ShipRadius() || s.SpawnAltitude >= s.MaxAltitude {
		return fmt.Errorf("setting spawnAltitude %v must lie between ship radius %v and maxAltitude %v",
			s.SpawnAltitude, s.ShipRadius(), s.MaxAltitude)
	}
	if s.TurretAngleWeight < 0 {
		return fmt.Errorf("setting turretAngleWeight must not be negative, got %v", s.TurretAngleWeight)
	}
	// Target cost spans [0, bulletRange+turretAngleWeight*π]; a larger bias
	// makes level 3 turrets take the player whenever it is in range.
	if maxCost := s.BulletRange + s.TurretAngleWeight*math.Pi; !(s.TurretPlayerBias > maxCost) {
		return fmt.Errorf("setting turretPlayerBias %v must exceed the largest target cost %v",
			s.TurretPlayerBias, maxCost)
	}
	for i, level := range s.TurretLevels {
		if !(level.BulletSpeed > 0) {
			return fmt.Errorf("turret level %d bullet speed must be positive, got %v", i, level.BulletSpeed)
		}
		if level.RotationRate < 0 {
			return fmt.Errorf("turret level %d rotation rate must not be negative, got %v", i, level.RotationRate)
		}
	}
	return nil
}

// LoadSettings loads settings from a JSON file. Fields missing from the
// file keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	return settings, nil
}

// SaveSettings saves settings to a JSON file
func SaveSettings(settings Settings, path string) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
