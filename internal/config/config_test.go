package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LANES_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "same_board", cfg.Moves.CrossBoard)
	assert.Equal(t, 5*time.Second, cfg.Moves.LockTimeout)
	assert.Equal(t, int64(1024), cfg.Ordering.Stride)
	assert.Equal(t, int64(2), cfg.Ordering.MinGap)
	assert.Equal(t, "local", cfg.Lock.Backend)
	assert.Equal(t, "lanes", cfg.Events.SubjectPrefix)
	assert.Empty(t, cfg.Events.NATSURL)
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("LANES_CONFIG", "")

	configDir := filepath.Join(tempDir, "lanes")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `moves:
  cross_board: same_project
  lock_timeout: 250ms
ordering:
  stride: 64
compaction:
  interval: 1m
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "same_project", cfg.Moves.CrossBoard)
	assert.Equal(t, 250*time.Millisecond, cfg.Moves.LockTimeout)
	assert.Equal(t, int64(64), cfg.Ordering.Stride)
	assert.Equal(t, time.Minute, cfg.Compaction.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)

	// unspecified values still get defaults
	assert.Equal(t, int64(2), cfg.Ordering.MinGap)
	assert.Equal(t, "local", cfg.Lock.Backend)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("moves:\n  cross_board: any\n"), 0o644))

	t.Setenv("LANES_CROSS_BOARD", "same_board")
	t.Setenv("LANES_LOCK_TIMEOUT", "2s")
	t.Setenv("LANES_LOCK_BACKEND", "redis")
	t.Setenv("LANES_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LANES_MIN_GAP", "16")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "same_board", cfg.Moves.CrossBoard)
	assert.Equal(t, 2*time.Second, cfg.Moves.LockTimeout)
	assert.Equal(t, "redis", cfg.Lock.Backend)
	assert.Equal(t, int64(16), cfg.Ordering.MinGap)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"unknown cross board policy", "moves:\n  cross_board: anywhere\n", nil},
		{"stride too small", "ordering:\n  stride: 1\n", nil},
		{"redis without url", "lock:\n  backend: redis\n", nil},
		{"bad yaml", "moves: [\n", nil},
		{"bad duration env", "", map[string]string{"LANES_LOCK_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LANES_CONFIG", "")

	cfg := Default()
	cfg.Moves.CrossBoard = "any"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "any", loaded.Moves.CrossBoard)
}
