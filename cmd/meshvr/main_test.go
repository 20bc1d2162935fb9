package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"meshvr/internal/assets"
	"meshvr/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBinarySTL writes a one-triangle binary STL.
func writeBinarySTL(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	for _, v := range []float32{
		0, 0, 1, // normal
		0, 0, 0,
		2, 0, 0,
		0, 3, 0,
	} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		changed []string
		check   func(t *testing.T, c config.Config)
	}{
		{
			name: "untouched flags keep the file values",
			opts: options{listen: "0.0.0.0:1", baud: 9600},
			check: func(t *testing.T, c config.Config) {
				assert.Equal(t, config.Default().Bridge, c.Bridge)
			},
		},
		{
			name:    "listen off disables the bridge",
			opts:    options{listen: "off"},
			changed: []string{"listen"},
			check: func(t *testing.T, c config.Config) {
				assert.Empty(t, c.Bridge.Listen)
			},
		},
		{
			name:    "serial and baud",
			opts:    options{serial: "/dev/ttyACM0", baud: 9600},
			changed: []string{"serial", "baud"},
			check: func(t *testing.T, c config.Config) {
				assert.Equal(t, "/dev/ttyACM0", c.Bridge.Serial)
				assert.Equal(t, 9600, c.Bridge.Baud)
			},
		},
		{
			name:    "log level",
			opts:    options{logLevel: "debug"},
			changed: []string{"log-level"},
			check: func(t *testing.T, c config.Config) {
				assert.Equal(t, "debug", c.Log.Level)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			changed := func(name string) bool {
				for _, c := range tt.changed {
					if c == name {
						return true
					}
				}
				return false
			}
			applyFlags(&cfg, tt.opts, changed)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigRejectsBadFlag(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "loud"}))
	var opts options
	opts.configPath = filepath.Join(t.TempDir(), "none.toml")
	opts.logLevel = "loud"
	_, err := loadConfig(cmd, opts)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	writeBinarySTL(t, path)

	var out bytes.Buffer
	require.NoError(t, runInfo(&out, path))
	assert.Contains(t, out.String(), "Triangles: 1")
	assert.Contains(t, out.String(), "Size:      2 x 3 x 0")

	err := runInfo(&out, "scene.glb")
	assert.ErrorIs(t, err, assets.ErrUnsupportedFormat)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshvr.toml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init-config", path})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "Wrote "))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cmd = newRootCmd()
	cmd.SetArgs([]string{"init-config", path})
	assert.Error(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init-config", "--force", path})
	assert.NoError(t, cmd.Execute())
}
