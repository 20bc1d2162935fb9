package gesture

import (
	"meshvr/internal/engine"
	"meshvr/internal/interact"
	"meshvr/internal/xr"

	"go.uber.org/zap"
)

// Coordinator owns the controller registry and every recognizer, and is
// the single place gesture state lives.
type Coordinator struct {
	Registry *xr.Registry
	Grab     *Grab
	Pinch    *Pinch
	Laser    *Laser

	cfg          Config
	log          *zap.Logger
	disconnectID engine.ListenerID
}

func NewCoordinator(reg *xr.Registry, cfg Config, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{Registry: reg, cfg: cfg, log: log}
	c.Grab = NewGrab(&c.cfg, log.Named("grab"))
	c.Pinch = NewPinch(&c.cfg, log.Named("pinch"))
	c.Laser = NewLaser(&c.cfg, log.Named("laser"))
	c.disconnectID = reg.OnDisconnect.AddListener(c.handleDisconnect)
	return c
}

func (c *Coordinator) handleDisconnect(ctrl *xr.Controller) {
	c.Grab.HandleDisconnect(ctrl)
	c.Pinch.HandleDisconnect(ctrl)
	c.Laser.HandleDisconnect(ctrl)
}

// Apply feeds one raw input event to the registry. Continuous work waits
// for the next Poll.
func (c *Coordinator) Apply(ev xr.Event) {
	c.Registry.Apply(ev)
}

// Poll runs every recognizer once against targets and reports whether
// anything changed.
func (c *Coordinator) Poll(targets []*interact.Handle) bool {
	changed := c.Grab.Poll(c.Registry, targets)
	if c.Pinch.Poll(c.Registry, targets) {
		changed = true
	}
	if c.Laser.Poll(c.Registry, targets) {
		changed = true
	}
	return changed
}

// Busy reports whether h is part of an active grab or pinch.
func (c *Coordinator) Busy(h xr.Hand) bool {
	return c.Grab.Busy(h) || c.Pinch.Busy(h)
}

// Forget releases every gesture touching h, before its actor is replaced.
func (c *Coordinator) Forget(h *interact.Handle) {
	if s := c.Grab.Session(); s != nil && s.Handle == h {
		c.Grab.end()
	}
	if s := c.Pinch.Session(); s != nil && s.Handle == h {
		c.Pinch.end()
	}
	c.Laser.Forget(h)
}

// Cancel ends every gesture as if its buttons were released and drops
// laser highlights.
func (c *Coordinator) Cancel() {
	if c.Grab.Session() != nil {
		c.Grab.end()
	}
	c.Grab.wasPressed = [2]bool{}
	if c.Pinch.Session() != nil {
		c.Pinch.end()
	}
	for _, h := range xr.Hands {
		c.Laser.set(h, nil)
	}
}

// Config returns the active tunables.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// Close detaches from the registry.
func (c *Coordinator) Close() {
	c.Registry.OnDisconnect.RemoveListener(c.disconnectID)
}
