package gesture

import (
	"meshvr/internal/engine"
	"meshvr/internal/interact"
	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const tintGrab = "grab"

// GrabSession ties one controller to one actor while the trigger is held.
type GrabSession struct {
	Handle          *interact.Handle
	Controller      *xr.Controller
	ControllerStart rl.Vector3
	ObjectStart     rl.Vector3
}

// Grab moves the nearest pickable actor within reach with the controller
// whose trigger went down. There is at most one grab at a time.
type Grab struct {
	cfg     *Config
	log     *zap.Logger
	session *GrabSession
	// wasPressed holds the trigger state seen by the previous poll, so a
	// trigger already held when a grab ends does not start a new one.
	wasPressed [2]bool
}

func NewGrab(cfg *Config, log *zap.Logger) *Grab {
	if log == nil {
		log = zap.NewNop()
	}
	return &Grab{cfg: cfg, log: log}
}

// Session returns the active grab, or nil.
func (g *Grab) Session() *GrabSession {
	return g.session
}

// Poll advances the recognizer one frame and reports whether the scene
// changed.
func (g *Grab) Poll(reg *xr.Registry, targets []*interact.Handle) bool {
	if g.session != nil {
		changed := g.follow()
		if !g.session.Controller.TriggerPressed {
			g.end()
			changed = true
		}
		g.remember(reg)
		return changed
	}

	changed := false
	for _, c := range reg.Live() {
		if c.TriggerPressed && !g.wasPressed[c.Hand] && g.begin(c, targets) {
			changed = true
			break
		}
	}
	g.remember(reg)
	return changed
}

func (g *Grab) remember(reg *xr.Registry) {
	for _, h := range xr.Hands {
		c := reg.Get(h)
		g.wasPressed[h] = c != nil && c.TriggerPressed
	}
}

func (g *Grab) begin(c *xr.Controller, targets []*interact.Handle) bool {
	h := NearestWithin(c.Position, targets, g.cfg.GrabReach)
	if h == nil {
		g.log.Debug("trigger out of reach", zap.Stringer("hand", c.Hand))
		return false
	}
	if !h.Acquire(interact.OwnerGrab) {
		g.log.Debug("grab refused, actor owned", zap.Stringer("hand", c.Hand),
			zap.String("owner", string(h.Owner())))
		return false
	}
	g.session = &GrabSession{
		Handle:          h,
		Controller:      c,
		ControllerStart: c.Position,
		ObjectStart:     h.Actor().Transform.Position,
	}
	h.SetTint(tintGrab, g.cfg.GrabColor)
	sendPulse(g.log, c, g.cfg.GrabPulse)
	g.log.Debug("grab started", zap.Stringer("hand", c.Hand), zap.String("actor", h.Actor().Name))
	return true
}

// follow places the actor at its start position plus the controller's
// displacement since the grab began.
func (g *Grab) follow() bool {
	s := g.session
	delta := rl.Vector3Subtract(s.Controller.Position, s.ControllerStart)
	target := rl.Vector3Add(s.ObjectStart, delta)
	if target == s.Handle.Actor().Transform.Position {
		return false
	}
	return s.Handle.Mutate(interact.OwnerGrab, func(t *engine.Transform) {
		t.Position = target
	})
}

func (g *Grab) end() {
	s := g.session
	g.session = nil
	s.Handle.ClearTint(tintGrab)
	s.Handle.Release(interact.OwnerGrab)
	g.log.Debug("grab ended", zap.Stringer("hand", s.Controller.Hand))
}

// HandleDisconnect ends the grab held by c, treating it as a release.
func (g *Grab) HandleDisconnect(c *xr.Controller) {
	g.wasPressed[c.Hand] = false
	if g.session != nil && g.session.Controller == c {
		g.end()
	}
}

// Busy reports whether h is holding the grab.
func (g *Grab) Busy(h xr.Hand) bool {
	return g.session != nil && g.session.Controller.Hand == h
}
