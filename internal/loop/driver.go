// Package loop runs the per-frame controller work while an XR session is
// active.
package loop

import (
	"meshvr/internal/interact"
	"meshvr/internal/xr"
)

// Orbiter is the camera the held-button actions turn.
type Orbiter interface {
	Orbit(azimuth, elevation float32)
}

// Gestures is the recognizer set polled each tick.
type Gestures interface {
	Poll(targets []*interact.Handle) bool
	Busy(h xr.Hand) bool
}

// Driver is ticked once per display frame.
type Driver struct {
	session  *xr.Session
	registry *xr.Registry
	gestures Gestures
	camera   Orbiter
	redraw   interact.Redrawer
	targets  func() []*interact.Handle

	// Step is the orbit angle in degrees applied per tick while a button is
	// held.
	Step float32
}

func NewDriver(session *xr.Session, registry *xr.Registry, gestures Gestures, camera Orbiter,
	targets func() []*interact.Handle, redraw interact.Redrawer) *Driver {
	if redraw == nil {
		redraw = interact.RedrawFunc(nil)
	}
	if targets == nil {
		targets = func() []*interact.Handle { return nil }
	}
	return &Driver{
		session:  session,
		registry: registry,
		gestures: gestures,
		camera:   camera,
		redraw:   redraw,
		targets:  targets,
		Step:     1,
	}
}

// handSign makes the two hands orbit in opposite directions.
var handSign = [2]float32{xr.Left: 1, xr.Right: -1}

// Tick runs one frame. Outside a session it does nothing. Gestures are
// polled first; then for every hand not held by a gesture, a held trigger
// orbits vertically and a held grip orbits horizontally. At most one
// redraw is requested, and only when something happened.
func (d *Driver) Tick() bool {
	if !d.session.Active() {
		return false
	}

	fired := false
	if d.gestures != nil && d.gestures.Poll(d.targets()) {
		fired = true
	}

	for _, c := range d.registry.Live() {
		if d.gestures != nil && d.gestures.Busy(c.Hand) {
			continue
		}
		step := handSign[c.Hand] * d.Step
		if c.TriggerPressed {
			d.camera.Orbit(0, step)
			fired = true
		}
		if c.GripPressed {
			d.camera.Orbit(step, 0)
			fired = true
		}
	}

	if fired {
		d.redraw.RequestRedraw()
	}
	return fired
}
