package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/racetrack/internal/core/observability/log"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "racetrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, log.LevelInfo, cfg.LogLevel())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
  encoding: json
reactor:
  enable_checkpoints: true
replay:
  parallel: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.True(t, cfg.Reactor.EnableCheckpoints)
	assert.Equal(t, 4, cfg.Replay.Parallel)
	assert.Equal(t, log.LevelDebug, cfg.LogLevel())
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "reactor:\n  destroy_cars: true\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "log:\n  level: debug\nreplay:\n  parallel: 2\n")
	t.Setenv("RACETRACK_LOG_LEVEL", "warn")
	t.Setenv("RACETRACK_REACTOR_ENABLE_CHECKPOINTS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Reactor.EnableCheckpoints)
	assert.Equal(t, 2, cfg.Replay.Parallel)
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, []string{"RACETRACK_REPLAY_PARALLEL=many"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLevel)

	cfg = Default()
	cfg.Log.Encoding = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidEncoding)

	cfg = Default()
	cfg.Replay.Parallel = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidParallel)
}
