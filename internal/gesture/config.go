package gesture

import (
	"time"

	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Pulse is a haptic feedback setting.
type Pulse struct {
	Intensity float32
	Duration  time.Duration
}

// Config holds the recognizer tunables.
type Config struct {
	// MinScale and MaxScale bound every scale component a pinch produces.
	MinScale float32
	MaxScale float32

	// TwoHanded adds yaw from the left->right vector to the pinch.
	TwoHanded bool

	// GrabReach is how far a controller may be from a target's bounding
	// sphere and still grab it. Zero means any distance.
	GrabReach float32

	// LaserThreshold is the allowed miss distance, measured from a target's
	// bounding sphere. LaserLength limits how far the ray reaches.
	LaserThreshold float32
	LaserLength    float32

	GrabColor   rl.Color
	LaserColors [2]rl.Color // indexed by xr.Hand

	GrabPulse  Pulse
	HoverPulse Pulse
}

func DefaultConfig() Config {
	return Config{
		MinScale:       0.01,
		MaxScale:       100,
		TwoHanded:      true,
		GrabReach:      0.3,
		LaserThreshold: 0.05,
		LaserLength:    10,
		GrabColor:      rl.NewColor(80, 200, 120, 255),
		LaserColors: [2]rl.Color{
			xr.Left:  rl.NewColor(90, 160, 255, 255),
			xr.Right: rl.NewColor(255, 120, 90, 255),
		},
		GrabPulse:  Pulse{Intensity: 0.6, Duration: 40 * time.Millisecond},
		HoverPulse: Pulse{Intensity: 0.2, Duration: 15 * time.Millisecond},
	}
}

// sendPulse is best effort; failures never interrupt a gesture.
func sendPulse(log *zap.Logger, c *xr.Controller, p Pulse) {
	if err := c.Pulse(p.Intensity, p.Duration); err != nil {
		log.Debug("haptic pulse failed", zap.Stringer("hand", c.Hand), zap.Error(err))
	}
}
