package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meshvr.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 640

[interaction]
max_scale = 10.0
mode = "inspect"

[colors]
grab = "#00ff00"

[bridge]
serial = "/dev/ttyUSB0"
baud = 9600
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, float32(10), cfg.Interaction.MaxScale)
	assert.Equal(t, "inspect", cfg.Interaction.Mode)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Bridge.Serial)

	g := cfg.Gesture()
	assert.Equal(t, float32(10), g.MaxScale)
	assert.Equal(t, rl.NewColor(0, 255, 0, 255), g.GrabColor)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"inverted scale", "[interaction]\nmin_scale = 5.0\nmax_scale = 1.0\n"},
		{"zero min scale", "[interaction]\nmin_scale = 0.0\n"},
		{"negative reach", "[interaction]\ngrab_reach = -1.0\n"},
		{"bad color", "[colors]\nmesh = \"Chartreuse\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"unknown key", "[window]\ncolour = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(writeConfig(t, "[window\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.Title = "bunny"
	cfg.Haptics.GrabMs = 75
	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, 75*time.Millisecond, got.Gesture().GrabPulse.Duration)
}

func TestGestureDefaultsMatch(t *testing.T) {
	g := Default().Gesture()
	assert.Equal(t, float32(0.01), g.MinScale)
	assert.Equal(t, float32(100), g.MaxScale)
	assert.Equal(t, float32(0.3), g.GrabReach)
	assert.NotEqual(t, g.LaserColors[xr.Left], g.LaserColors[xr.Right])
	assert.Equal(t, rl.Gold, Default().SelectedColor())
}
