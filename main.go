package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hollowmere/thornvale/audio"
	"github.com/hollowmere/thornvale/bindings"
	"github.com/hollowmere/thornvale/engine"
	"github.com/hollowmere/thornvale/event"
	"github.com/hollowmere/thornvale/script"
	"github.com/hollowmere/thornvale/service"
)

// Config holds the top-level settings; audio has its own section
type Config struct {
	ScriptPath string `env:"THORNVALE_SCRIPT" envDefault:"scripts/main.lua"`
	LevelName  string `env:"THORNVALE_LEVEL" envDefault:"meadow_1"`
	LogLevel   string `env:"THORNVALE_LOG_LEVEL" envDefault:"info"`
}

// buildServices orders startup. Audio must start before the script
// service: its Start attaches the backend, and the boot script running in
// the script service's Start makes play calls at its top level
func buildServices(scriptSvc *script.Service, audioSvc *audio.Service) []service.Service {
	return []service.Service{audioSvc, scriptSvc}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "thornvale: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; the real environment wins either way
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().Timestamp().Logger()

	scriptSvc := script.NewService(cfg.ScriptPath, log)
	audioSvc := audio.NewService(log)
	services := buildServices(scriptSvc, audioSvc)

	// Init only: the boot script must not run until bindings exist
	for _, s := range services {
		if err := s.Init(); err != nil {
			return fmt.Errorf("init %s: %w", s.Name(), err)
		}
	}
	defer service.StopAll(services)

	ctx := scriptSvc.Context()
	audioEngine := audioSvc.Engine()

	registry := event.NewRegistry()
	dispatcher := event.NewDispatcher(registry, log)
	audioEngine.WireDispatcher(dispatcher)

	binder := bindings.New(ctx, registry)
	binder.InstallSaveData()
	binder.InstallAudio(audioEngine)

	gameLevel := engine.NewLevel(cfg.LevelName, registry, dispatcher, log)
	player := engine.NewPlayer(registry, dispatcher, audioEngine, log)
	binder.InstallEmitter("Level", "thornvale.level", gameLevel, nil)
	binder.InstallEmitter("Player", "thornvale.player", player, nil)
	defer gameLevel.Destroy()
	defer player.Destroy()

	for _, s := range services {
		if err := s.Start(); err != nil {
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine.NewLoop(audioEngine, log).Run(runCtx)
	return nil
}
