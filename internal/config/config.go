// Package config loads meshvr's TOML settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"meshvr/internal/assets"
	"meshvr/internal/gesture"
	"meshvr/internal/interact"
	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window      WindowConfig      `toml:"window"`
	Interaction InteractionConfig `toml:"interaction"`
	Colors      ColorConfig       `toml:"colors"`
	Haptics     HapticsConfig     `toml:"haptics"`
	Bridge      BridgeConfig      `toml:"bridge"`
	Log         LogConfig         `toml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`
	Title  string `toml:"title"`
	// IPD is the stereo eye separation in world units.
	IPD float32 `toml:"ipd"`
}

type InteractionConfig struct {
	MinScale       float32 `toml:"min_scale"`
	MaxScale       float32 `toml:"max_scale"`
	TwoHanded      bool    `toml:"two_handed"`
	GrabReach      float32 `toml:"grab_reach"`
	LaserThreshold float32 `toml:"laser_threshold"`
	LaserLength    float32 `toml:"laser_length"`
	// OrbitStep is degrees per frame while a controller button is held.
	OrbitStep float32 `toml:"orbit_step"`
	Mode      string  `toml:"mode"`

	RotateSensitivity float32 `toml:"rotate_sensitivity"`
	PanSensitivity    float32 `toml:"pan_sensitivity"`
	ZoomSensitivity   float32 `toml:"zoom_sensitivity"`
	ScaleSensitivity  float32 `toml:"scale_sensitivity"`

	FocusSeconds float32 `toml:"focus_seconds"`
	HotReload    bool    `toml:"hot_reload"`
}

// ColorConfig values are color names or #rrggbb[aa].
type ColorConfig struct {
	Mesh       string `toml:"mesh"`
	Selected   string `toml:"selected"`
	Grab       string `toml:"grab"`
	LaserLeft  string `toml:"laser_left"`
	LaserRight string `toml:"laser_right"`
}

type HapticsConfig struct {
	GrabIntensity  float32 `toml:"grab_intensity"`
	GrabMs         int     `toml:"grab_ms"`
	HoverIntensity float32 `toml:"hover_intensity"`
	HoverMs        int     `toml:"hover_ms"`
}

type BridgeConfig struct {
	// Listen is the websocket address; empty disables the bridge.
	Listen string `toml:"listen"`
	// Serial is the tracker port; empty disables it.
	Serial   string `toml:"serial"`
	Baud     int    `toml:"baud"`
	Keyboard bool   `toml:"keyboard"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

func Default() Config {
	g := gesture.DefaultConfig()
	return Config{
		Window: WindowConfig{Width: 1280, Height: 800, FPS: 60, Title: "meshvr", IPD: 0.064},
		Interaction: InteractionConfig{
			MinScale:          g.MinScale,
			MaxScale:          g.MaxScale,
			TwoHanded:         g.TwoHanded,
			GrabReach:         g.GrabReach,
			LaserThreshold:    g.LaserThreshold,
			LaserLength:       g.LaserLength,
			OrbitStep:         1,
			Mode:              interact.ModeRotate.String(),
			RotateSensitivity: interact.DefaultSensitivity.RotateDegPerPixel,
			PanSensitivity:    interact.DefaultSensitivity.PanPerPixel,
			ZoomSensitivity:   interact.DefaultSensitivity.ZoomPerPixel,
			ScaleSensitivity:  interact.DefaultSensitivity.ScalePerPixel,
			FocusSeconds:      0.6,
			HotReload:         true,
		},
		Colors: ColorConfig{
			Mesh:       "LightGray",
			Selected:   "Gold",
			Grab:       assets.FormatColor(g.GrabColor),
			LaserLeft:  assets.FormatColor(g.LaserColors[xr.Left]),
			LaserRight: assets.FormatColor(g.LaserColors[xr.Right]),
		},
		Haptics: HapticsConfig{
			GrabIntensity:  g.GrabPulse.Intensity,
			GrabMs:         int(g.GrabPulse.Duration / time.Millisecond),
			HoverIntensity: g.HoverPulse.Intensity,
			HoverMs:        int(g.HoverPulse.Duration / time.Millisecond),
		},
		Bridge: BridgeConfig{Listen: "127.0.0.1:8765", Baud: 115200, Keyboard: true},
		Log:    LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	in := c.Interaction
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Window.FPS)
	case in.MinScale <= 0:
		return fmt.Errorf("%w: min_scale must be positive", ErrInvalid)
	case in.MaxScale <= in.MinScale:
		return fmt.Errorf("%w: max_scale %g not above min_scale %g", ErrInvalid, in.MaxScale, in.MinScale)
	case in.GrabReach < 0:
		return fmt.Errorf("%w: grab_reach %g", ErrInvalid, in.GrabReach)
	case in.LaserThreshold < 0 || in.LaserLength <= 0:
		return fmt.Errorf("%w: laser threshold/length", ErrInvalid)
	case c.Bridge.Serial != "" && c.Bridge.Baud <= 0:
		return fmt.Errorf("%w: baud %d", ErrInvalid, c.Bridge.Baud)
	}
	for _, s := range []string{c.Colors.Mesh, c.Colors.Selected, c.Colors.Grab, c.Colors.LaserLeft, c.Colors.LaserRight} {
		if _, err := assets.ParseColor(s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Gesture converts the interaction, color and haptic sections. Colors
// are assumed validated.
func (c Config) Gesture() gesture.Config {
	g := gesture.DefaultConfig()
	g.MinScale = c.Interaction.MinScale
	g.MaxScale = c.Interaction.MaxScale
	g.TwoHanded = c.Interaction.TwoHanded
	g.GrabReach = c.Interaction.GrabReach
	g.LaserThreshold = c.Interaction.LaserThreshold
	g.LaserLength = c.Interaction.LaserLength
	g.GrabColor = c.color(c.Colors.Grab, g.GrabColor)
	g.LaserColors[xr.Left] = c.color(c.Colors.LaserLeft, g.LaserColors[xr.Left])
	g.LaserColors[xr.Right] = c.color(c.Colors.LaserRight, g.LaserColors[xr.Right])
	g.GrabPulse = gesture.Pulse{
		Intensity: c.Haptics.GrabIntensity,
		Duration:  time.Duration(c.Haptics.GrabMs) * time.Millisecond,
	}
	g.HoverPulse = gesture.Pulse{
		Intensity: c.Haptics.HoverIntensity,
		Duration:  time.Duration(c.Haptics.HoverMs) * time.Millisecond,
	}
	return g
}

func (c Config) Sensitivity() interact.Sensitivity {
	return interact.Sensitivity{
		RotateDegPerPixel: c.Interaction.RotateSensitivity,
		PanPerPixel:       c.Interaction.PanSensitivity,
		ZoomPerPixel:      c.Interaction.ZoomSensitivity,
		ScalePerPixel:     c.Interaction.ScaleSensitivity,
	}
}

func (c Config) MeshColor() rl.Color {
	return c.color(c.Colors.Mesh, rl.LightGray)
}

func (c Config) SelectedColor() rl.Color {
	return c.color(c.Colors.Selected, rl.Gold)
}

func (c Config) color(s string, fallback rl.Color) rl.Color {
	col, err := assets.ParseColor(s)
	if err != nil {
		return fallback
	}
	return col
}
