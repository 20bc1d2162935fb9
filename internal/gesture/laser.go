package gesture

import (
	"meshvr/internal/interact"
	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var laserTints = [2]string{xr.Left: "laser-left", xr.Right: "laser-right"}

// Laser highlights, per hand, the target the controller points at.
type Laser struct {
	cfg  *Config
	log  *zap.Logger
	hits [2]*interact.Handle
}

func NewLaser(cfg *Config, log *zap.Logger) *Laser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Laser{cfg: cfg, log: log}
}

// Hit returns the handle currently pointed at by h, or nil.
func (l *Laser) Hit(h xr.Hand) *interact.Handle {
	return l.hits[h]
}

// Ray returns the beam of h for drawing: origin and end point.
func (l *Laser) Ray(c *xr.Controller) (from, to rl.Vector3, ok bool) {
	dir, ok := c.Forward()
	if !ok {
		return rl.Vector3{}, rl.Vector3{}, false
	}
	length := l.cfg.LaserLength
	if h := l.hits[c.Hand]; h != nil {
		center, _ := h.Sphere()
		length = rl.Vector3DotProduct(rl.Vector3Subtract(center, c.Position), dir)
	}
	return c.Position, rl.Vector3Add(c.Position, rl.Vector3Scale(dir, length)), true
}

func (l *Laser) Poll(reg *xr.Registry, targets []*interact.Handle) bool {
	changed := false
	for _, hand := range xr.Hands {
		var hit *interact.Handle
		c := reg.Get(hand)
		if c != nil {
			if dir, ok := c.Forward(); ok {
				hit, _ = RayPick(c.Position, dir, targets, l.cfg.LaserThreshold, l.cfg.LaserLength)
			}
		}
		if l.set(hand, hit) {
			changed = true
			if hit != nil {
				sendPulse(l.log, c, l.cfg.HoverPulse)
			}
		}
	}
	return changed
}

func (l *Laser) set(hand xr.Hand, hit *interact.Handle) bool {
	prev := l.hits[hand]
	if prev == hit {
		return false
	}
	if prev != nil {
		prev.ClearTint(laserTints[hand])
	}
	if hit != nil {
		hit.SetTint(laserTints[hand], l.cfg.LaserColors[hand])
	}
	l.hits[hand] = hit
	return true
}

// HandleDisconnect drops the highlight owned by c's hand.
func (l *Laser) HandleDisconnect(c *xr.Controller) {
	l.set(c.Hand, nil)
}

// Forget drops every highlight on h, used when its actor leaves the scene.
func (l *Laser) Forget(h *interact.Handle) {
	for i := range l.hits {
		if l.hits[i] == h {
			l.set(xr.Hand(i), nil)
		}
	}
}
