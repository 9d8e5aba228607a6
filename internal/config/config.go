package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/racetrack/internal/core/observability/log"
)

const EnvPrefix = "RACETRACK_"

var (
	ErrInvalidLevel    = errors.New("invalid log level")
	ErrInvalidEncoding = errors.New("invalid log encoding")
	ErrInvalidParallel = errors.New("replay parallelism must be at least 1")
)

type Config struct {
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Reactor ReactorConfig `yaml:"reactor" envPrefix:"REACTOR_"`
	Replay  ReplayConfig  `yaml:"replay" envPrefix:"REPLAY_"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LEVEL"`
	Encoding string `yaml:"encoding" env:"ENCODING"`
}

type ReactorConfig struct {
	// EnableCheckpoints registers the checkpoint handler on every reactor.
	EnableCheckpoints bool `yaml:"enable_checkpoints" env:"ENABLE_CHECKPOINTS"`
}

type ReplayConfig struct {
	// Parallel is the number of contacts delivered concurrently. 1 keeps file order.
	Parallel int `yaml:"parallel" env:"PARALLEL"`
}

func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Replay: ReplayConfig{Parallel: 1},
	}
}

// Load reads path (if non-empty) over the defaults and then applies
// RACETRACK_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
		if err = decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "decode config %s", path)
		}
	}
	if err := ApplyEnv(&cfg, os.Environ()); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from KEY=VALUE pairs. Unset keys keep their value.
func ApplyEnv(cfg *Config, environ []string) error {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: vars}); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if _, ok := log.ParseLevel(c.Log.Level); !ok {
		return errors.Wrapf(ErrInvalidLevel, "%q", c.Log.Level)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return errors.Wrapf(ErrInvalidEncoding, "%q", c.Log.Encoding)
	}
	if c.Replay.Parallel < 1 {
		return ErrInvalidParallel
	}
	return nil
}

// LogLevel returns the parsed level. Call after Validate.
func (c Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}
