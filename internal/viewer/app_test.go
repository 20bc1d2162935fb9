package viewer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"meshvr/internal/assets"
	"meshvr/internal/bridge"
	"meshvr/internal/config"
	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Interaction.GrabReach = 0
	a := New(cfg, nil)
	a.now = func() float64 { return 0 }
	require.NotNil(t, a.emulator)
	a.stage.SetMesh(&assets.Mesh{
		Path:   "cube.stl",
		Bounds: rl.BoundingBox{Min: rl.Vector3{X: -0.1, Y: -0.1, Z: -0.1}, Max: rl.Vector3{X: 0.1, Y: 0.1, Z: 0.1}},
	}, rl.LightGray, rl.Gold)
	return a
}

func TestEmulatedGrabAfterSessionStart(t *testing.T) {
	right := func(k bridge.Keys) bridge.Keys {
		k.Hand = xr.Right
		return k
	}

	tests := []struct {
		name        string
		beforeStart []bridge.Keys
		afterStart  []bridge.Keys
	}{
		{
			name:        "connect, start, trigger",
			beforeStart: []bridge.Keys{{Toggle: true}},
			afterStart:  []bridge.Keys{{Trigger: true}},
		},
		{
			name:        "trigger held before start",
			beforeStart: []bridge.Keys{{Toggle: true}, {Trigger: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			h := a.stage.Current()
			start := h.Actor().Transform.Position

			for _, k := range tt.beforeStart {
				a.feedEmulator(right(k), 0)
			}
			a.session.Start()
			for _, k := range tt.afterStart {
				a.feedEmulator(right(k), 0)
			}
			a.driver.Tick()
			require.NotNil(t, a.coord.Grab.Session())
			assert.Equal(t, rl.Vector3{X: 0.3, Z: 1.5}, a.coord.Grab.Session().ControllerStart)

			a.feedEmulator(right(bridge.Keys{Trigger: true, Move: rl.Vector3{X: 1}}), 0.5)
			a.driver.Tick()

			got := h.Actor().Transform.Position
			assert.InDelta(t, start.X+0.4, got.X, 1e-5)
			assert.InDelta(t, start.Y, got.Y, 1e-5)
			assert.InDelta(t, start.Z, got.Z, 1e-5)
		})
	}
}

func TestSessionStopReleasesEmulatedGrab(t *testing.T) {
	a := newTestApp(t)
	a.feedEmulator(bridge.Keys{Hand: xr.Left, Toggle: true}, 0)
	a.session.Start()
	a.feedEmulator(bridge.Keys{Hand: xr.Left, Trigger: true}, 0)
	a.driver.Tick()
	require.NotNil(t, a.coord.Grab.Session())

	a.session.Stop()
	assert.Nil(t, a.coord.Grab.Session())
	c := a.registry.Get(xr.Left)
	require.NotNil(t, c)
	assert.False(t, c.TriggerPressed)
}

func TestLogWatcherExit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"clean exit", nil, 0},
		{"canceled", context.Canceled, 0},
		{"wrapped cancel", fmt.Errorf("watch: %w", context.Canceled), 0},
		{"failure", errors.New("inotify limit"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logWatcherExit(zap.New(core), tt.err)
			assert.Equal(t, tt.want, logs.Len())
			if tt.want > 0 {
				assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
			}
		})
	}
}
