// cmd/orbital/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/engine"
	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/logging"
	"github.com/opd-ai/go-orbital/pkg/telemetry"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

	levelName := flag.String("level", "hills", "Level template name or path to a level JSON file")
	settingsPath := flag.String("settings", "", "Path to a settings JSON file (defaults when empty)")
	renderer := flag.String("renderer", "terminal", "Front end: 'headless', 'terminal' or 'engo'")
	ticks := flag.Int("ticks", 6000, "Ticks to run in headless mode")
	logOut := flag.String("log-out", "", "Write the per-tick state log to this file")
	logFormat := flag.String("log-format", "jsonl", "State log format: 'jsonl' or 'msgpack'")
	defaultLevel := flag.String("default-level", "", "Write the built-in level to this path and exit")
	listLevels := flag.Bool("list-levels", false, "List the level templates and exit")
	sound := flag.Bool("audio", true, "Play sound cues (terminal and engo only)")
	volume := flag.Float64("volume", 0.5, "Sound volume, 0 to 1")
	flag.Parse()

	if *listLevels {
		for _, name := range config.ListLevelTemplates() {
			description, _ := config.DescribeLevelTemplate(name)
			fmt.Println(description)
		}
		return
	}

	if *defaultLevel != "" {
		if err := config.SaveLevel(config.DefaultLevel(), *defaultLevel); err != nil {
			logger.Error(ctx, "Failed to write default level", err, "path", *defaultLevel)
			os.Exit(1)
		}
		logger.Info(ctx, "Wrote default level", "path", *defaultLevel)
		return
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Error(ctx, "Failed to load .env file", err)
		os.Exit(1)
	}

	level, err := loadLevel(*levelName)
	if err != nil {
		logger.Error(ctx, "Failed to load level", err, "level", *levelName)
		os.Exit(1)
	}

	settings := config.DefaultSettings()
	if *settingsPath != "" {
		settings, err = config.LoadSettings(*settingsPath)
		if err != nil {
			logger.Error(ctx, "Failed to load settings", err, "settings_path", *settingsPath)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnvironmentOverrides(&settings); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	bus := event.NewEventBus()
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx),
	}

	var exporter *telemetry.Exporter
	if *logOut != "" {
		format, err := telemetry.ParseFormat(*logFormat)
		if err != nil {
			logger.Error(ctx, "Invalid log format", err, "format", *logFormat)
			os.Exit(1)
		}
		file, err := os.Create(*logOut)
		if err != nil {
			logger.Error(ctx, "Failed to create state log", err, "path", *logOut)
			os.Exit(1)
		}
		defer file.Close()

		exporter, err = telemetry.NewExporter(file, format, telemetry.DefaultBreakerSettings(), logger)
		if err != nil {
			logger.Error(ctx, "Failed to create exporter", err)
			os.Exit(1)
		}
		opts = append(opts, engine.WithStateLog())
	}

	sim, err := engine.NewSim(level, settings, opts...)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err, "level", *levelName)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := &runner{
		sim:      sim,
		bus:      bus,
		exporter: exporter,
		logger:   logger,
		sound:    *sound,
		volume:   *volume,
	}

	switch *renderer {
	case "headless":
		err = run.headless(ctx, *ticks)
	case "terminal":
		err = run.terminal(ctx)
	case "engo":
		err = run.engo(ctx)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Simulation failed", err, "renderer", *renderer)
		os.Exit(1)
	}

	if err := run.finish(ctx); err != nil {
		logger.Error(ctx, "Failed to export state log", err, "path", *logOut)
		os.Exit(1)
	}
}

// loadLevel resolves name as a level template first, then as a file
func loadLevel(name string) (*config.Level, error) {
	if level := config.GetLevelTemplate(name); level != nil {
		return level, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("no level template or file named %q: %w", name, err)
	}
	return config.LoadLevel(name)
}

