package xr

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Device describes a controller at connect time.
type Device struct {
	Hand    Hand
	Haptics HapticActuator // nil when the platform exposes no actuator
}

// Controller is the live state of one tracked input device.
type Controller struct {
	Hand        Hand
	Position    rl.Vector3
	Direction   rl.Vector3 // zero when the source only reports orientation
	Orientation mgl32.Quat
	// TriggerPressed and GripPressed are the two digital inputs.
	TriggerPressed bool
	GripPressed    bool

	haptics HapticActuator
}

func newController(d Device) *Controller {
	return &Controller{
		Hand:        d.Hand,
		Orientation: mgl32.QuatIdent(),
		haptics:     d.Haptics,
	}
}

// Haptics reports the actuator, if the device has one.
func (c *Controller) Haptics() (HapticActuator, bool) {
	return c.haptics, c.haptics != nil
}

// Pulse sends a best-effort vibration. Devices without an actuator are
// skipped silently.
func (c *Controller) Pulse(intensity float32, duration time.Duration) error {
	h, ok := c.Haptics()
	if !ok || duration <= 0 {
		return nil
	}
	return h.Pulse(ClampIntensity(intensity), duration)
}

// Forward returns the unit pointing direction. An explicit Direction wins;
// otherwise the controller's -Z axis is rotated by its orientation.
func (c *Controller) Forward() (rl.Vector3, bool) {
	if rl.Vector3LengthSqr(c.Direction) > 1e-12 {
		return rl.Vector3Normalize(c.Direction), true
	}
	q := c.Orientation
	if q.Len() < 1e-6 {
		return rl.Vector3{}, false
	}
	v := q.Normalize().Rotate(mgl32.Vec3{0, 0, -1})
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}, true
}
