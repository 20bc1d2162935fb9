package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// focusAnim holds the tweens of an animated FocusOn.
type focusAnim struct {
	tweens [4]*gween.Tween // target X, Y, Z and distance
	done   [4]bool
}

// OrbitCamera circles a target point. Yaw and Pitch are in degrees.
type OrbitCamera struct {
	Target   rl.Vector3
	Distance float32
	Yaw      float32
	Pitch    float32
	Fovy     float32

	MinDistance float32
	MaxDistance float32

	focus *focusAnim
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		Yaw:         45,
		Pitch:       25,
		Fovy:        45,
		MinDistance: 0.05,
		MaxDistance: 500,
	}
}

// Orbit turns the camera around the target by the given azimuth and
// elevation deltas.
func (c *OrbitCamera) Orbit(azimuth, elevation float32) {
	c.Yaw += azimuth
	c.Pitch += elevation

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Pan slides the target in the view plane. Offsets are in units of the
// current distance so panning feels the same at any zoom.
func (c *OrbitCamera) Pan(dx, dy float32) {
	c.focus = nil
	_, right, up := c.basis()
	offset := rl.Vector3Add(rl.Vector3Scale(right, dx*c.Distance), rl.Vector3Scale(up, dy*c.Distance))
	c.Target = rl.Vector3Add(c.Target, offset)
}

// Zoom scales the distance by 1+amount. Pan and Zoom cancel a running
// focus animation.
func (c *OrbitCamera) Zoom(amount float32) {
	f := 1 + amount
	if f <= 0 {
		return
	}
	c.focus = nil
	c.Distance = rl.Clamp(c.Distance*f, c.MinDistance, c.MaxDistance)
}

// Position is the eye point.
func (c *OrbitCamera) Position() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	return rl.Vector3{
		X: c.Target.X + c.Distance*math32.Cos(pitch)*math32.Cos(yaw),
		Y: c.Target.Y + c.Distance*math32.Sin(pitch),
		Z: c.Target.Z + c.Distance*math32.Cos(pitch)*math32.Sin(yaw),
	}
}

// basis returns the camera's unit forward, right and up vectors.
func (c *OrbitCamera) basis() (forward, right, up rl.Vector3) {
	forward = rl.Vector3Normalize(rl.Vector3Subtract(c.Target, c.Position()))
	right = rl.Vector3Normalize(rl.Vector3CrossProduct(forward, rl.Vector3{Y: 1}))
	up = rl.Vector3CrossProduct(right, forward)
	return
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// EyeCameras returns the left and right eye views for side-by-side stereo,
// separated by ipd along the camera's right vector.
func (c *OrbitCamera) EyeCameras(ipd float32) (left, right rl.Camera3D) {
	_, r, _ := c.basis()
	half := rl.Vector3Scale(r, ipd/2)
	left, right = c.GetRaylibCamera(), c.GetRaylibCamera()
	left.Position = rl.Vector3Subtract(left.Position, half)
	left.Target = rl.Vector3Subtract(left.Target, half)
	right.Position = rl.Vector3Add(right.Position, half)
	right.Target = rl.Vector3Add(right.Target, half)
	return left, right
}

// FitDistance is the distance at which a sphere of radius fills the view.
func (c *OrbitCamera) FitDistance(radius float32) float32 {
	half := c.Fovy / 2 * rl.Deg2rad
	d := radius / math32.Sin(half) * 1.1
	return rl.Clamp(d, c.MinDistance, c.MaxDistance)
}

// FocusOn animates the target to center and the distance to fit a sphere
// of radius, over duration seconds. A non-positive duration snaps.
func (c *OrbitCamera) FocusOn(center rl.Vector3, radius, duration float32) {
	dist := c.FitDistance(radius)
	if duration <= 0 {
		c.focus = nil
		c.Target = center
		c.Distance = dist
		return
	}
	c.focus = &focusAnim{tweens: [4]*gween.Tween{
		gween.New(c.Target.X, center.X, duration, ease.OutCubic),
		gween.New(c.Target.Y, center.Y, duration, ease.OutCubic),
		gween.New(c.Target.Z, center.Z, duration, ease.OutCubic),
		gween.New(c.Distance, dist, duration, ease.OutCubic),
	}}
}

// Animating reports whether a focus animation is running.
func (c *OrbitCamera) Animating() bool {
	return c.focus != nil
}

// Update advances the focus animation. It reports whether the camera moved.
func (c *OrbitCamera) Update(dt float32) bool {
	if c.focus == nil {
		return false
	}
	fields := [4]*float32{&c.Target.X, &c.Target.Y, &c.Target.Z, &c.Distance}
	finished := true
	for i, tw := range c.focus.tweens {
		if c.focus.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		*fields[i] = val
		c.focus.done[i] = done
		finished = finished && done
	}
	if finished {
		c.focus = nil
	}
	return true
}
