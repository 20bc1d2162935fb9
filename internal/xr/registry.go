package xr

import (
	"meshvr/internal/engine"

	"go.uber.org/zap"
)

// Registry tracks at most one left and one right controller.
type Registry struct {
	slots [2]*Controller

	// OnConnect fires after a controller is stored.
	OnConnect engine.EventWithArg[*Controller]
	// OnDisconnect fires after a controller's slot is cleared, including when
	// a reconnect of the same hand replaces it.
	OnDisconnect engine.EventWithArg[*Controller]

	log *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log}
}

// Connect stores a new controller for d.Hand and returns it.
func (r *Registry) Connect(d Device) *Controller {
	if !d.Hand.valid() {
		r.log.Warn("ignoring controller with invalid hand", zap.Int("hand", int(d.Hand)))
		return nil
	}
	if old := r.slots[d.Hand]; old != nil {
		r.log.Info("controller reconnected, replacing previous entry", zap.Stringer("hand", d.Hand))
		r.Disconnect(d.Hand)
	}
	c := newController(d)
	r.slots[d.Hand] = c
	_, haptic := c.Haptics()
	r.log.Info("controller connected", zap.Stringer("hand", d.Hand), zap.Bool("haptics", haptic))
	r.OnConnect.Invoke(c)
	return c
}

// Disconnect clears the slot for h. Unknown or empty slots are a no-op.
func (r *Registry) Disconnect(h Hand) {
	if !h.valid() {
		return
	}
	c := r.slots[h]
	if c == nil {
		return
	}
	r.slots[h] = nil
	r.log.Info("controller disconnected", zap.Stringer("hand", h))
	r.OnDisconnect.Invoke(c)
}

// DisconnectAll clears both slots.
func (r *Registry) DisconnectAll() {
	for _, h := range Hands {
		r.Disconnect(h)
	}
}

// Get returns the live controller for h, or nil.
func (r *Registry) Get(h Hand) *Controller {
	if !h.valid() {
		return nil
	}
	return r.slots[h]
}

// Pair returns both controllers when both are live.
func (r *Registry) Pair() (left, right *Controller, ok bool) {
	left, right = r.slots[Left], r.slots[Right]
	return left, right, left != nil && right != nil
}

// Live returns the connected controllers, left first.
func (r *Registry) Live() []*Controller {
	var out []*Controller
	for _, c := range r.slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) Count() int {
	return len(r.Live())
}

// Apply folds one raw input event into the registry. Events for a hand
// with no live controller (other than connects) are dropped.
func (r *Registry) Apply(ev Event) {
	if ev.Type == EventConnected {
		r.Connect(Device{Hand: ev.Hand, Haptics: ev.Haptics})
		return
	}
	if ev.Type == EventDisconnected {
		r.Disconnect(ev.Hand)
		return
	}

	c := r.Get(ev.Hand)
	if c == nil {
		r.log.Debug("dropping event for unconnected hand",
			zap.Stringer("type", ev.Type), zap.Stringer("hand", ev.Hand))
		return
	}

	switch ev.Type {
	case EventPose:
		c.Position = ev.Position
		if ev.HasDirection {
			c.Direction = ev.Direction
		}
		if ev.HasOrientation {
			c.Orientation = ev.Orientation
		}
	case EventTrigger:
		c.TriggerPressed = ev.Pressed
	case EventGrip:
		c.GripPressed = ev.Pressed
	}
}

// ReleaseAll clears the pressed flags of every live controller, for when
// release events may have been missed.
func (r *Registry) ReleaseAll() {
	for _, c := range r.Live() {
		c.TriggerPressed = false
		c.GripPressed = false
	}
}
