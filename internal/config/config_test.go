package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(1337), cfg.Seed)
	assert.Equal(t, 60, cfg.TickRateHz)
	assert.Equal(t, 33, cfg.SurfaceRes)
	assert.Equal(t, 3, cfg.RenderDistance)
	assert.Equal(t, 0.7, cfg.Player.Radius)
	assert.Equal(t, 1.6, cfg.Player.EyeHeight)
	assert.Equal(t, 50.0, cfg.Player.Gravity)
	assert.Equal(t, 18.0, cfg.Player.JumpVelocity)
	assert.Equal(t, 25.0, cfg.POI.NearbyDistance)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := []byte("seed: 42\nrender_distance: 5\nplayer:\n  move_speed: 12\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.RenderDistance)
	assert.Equal(t, 12.0, cfg.Player.MoveSpeed)

	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.TickRateHz)
	assert.Equal(t, 0.7, cfg.Player.Radius)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.TickRateHz = 0 }},
		{"negative chunk size", func(c *Config) { c.ChunkSize = -1 }},
		{"degenerate surface res", func(c *Config) { c.SurfaceRes = 1 }},
		{"negative render distance", func(c *Config) { c.RenderDistance = -1 }},
		{"zero scatter spacing", func(c *Config) { c.ScatterSpacing = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
