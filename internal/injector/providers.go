package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/racetrack/internal/config"
	"github.com/zeusync/racetrack/internal/core/events/bus"
	"github.com/zeusync/racetrack/internal/core/observability/log"
	"github.com/zeusync/racetrack/internal/replay"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	bus.New,
	ProvideRunnerOptions,
	replay.NewRunner,
	NewApp,
)

// App is the assembled object graph used by the command line.
type App struct {
	Config config.Config
	Logger *log.Logger
	Bus    bus.EventBus
	Runner *replay.Runner
}

func NewApp(cfg config.Config, logger *log.Logger, b bus.EventBus, runner *replay.Runner) *App {
	return &App{Config: cfg, Logger: logger, Bus: b, Runner: runner}
}

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	return log.NewWithOptions(log.Options{
		Level:    cfg.LogLevel(),
		Encoding: cfg.Log.Encoding,
	})
}

func ProvideRunnerOptions(cfg config.Config) replay.Options {
	return replay.Options{
		Parallel:          cfg.Replay.Parallel,
		EnableCheckpoints: cfg.Reactor.EnableCheckpoints,
	}
}
