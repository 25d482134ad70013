package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files. Files that do
// not exist are skipped; with no arguments ".env" is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load environment file: %w", err)
	}
	return nil
}

// ApplyEnvironmentOverrides overrides settings from ORBITAL_* variables
// and validates the result.
func ApplyEnvironmentOverrides(settings *Settings) error {
	floats := []struct {
		key    string
		target *float64
	}{
		{"ORBITAL_DT", &settings.Dt},
		{"ORBITAL_GRAVITY", &settings.Gravity},
		{"ORBITAL_PLAYER_RESPAWN", &settings.PlayerRespawnTime},
		{"ORBITAL_ALLY_RESPAWN", &settings.AllyRespawnTime},
	}
	for _, f := range floats {
		if err := overrideFloat(f.key, f.target); err != nil {
			return err
		}
	}

	ints := []struct {
		key    string
		target *int
	}{
		{"ORBITAL_MAX_BULLETS", &settings.MaxBullets},
		{"ORBITAL_MAX_BOMBS", &settings.MaxBombs},
	}
	for _, i := range ints {
		if err := overrideInt(i.key, i.target); err != nil {
			return err
		}
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}
	return nil
}

func overrideFloat(key string, target *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func overrideInt(key string, target *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}
