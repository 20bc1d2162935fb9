package gesture

import (
	"meshvr/internal/engine"
	"meshvr/internal/interact"
	"meshvr/internal/xr"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// PinchSession records the state captured when both grips went down.
type PinchSession struct {
	Handle        *interact.Handle
	StartScale    rl.Vector3
	StartDistance float32
	// Two-handed only.
	StartAngle    float32
	StartRotation rl.Vector3
}

// Pinch scales an actor by the change in distance between the two
// controllers while both grips are held. With TwoHanded set it also yaws
// the actor by the change in heading of the left->right vector.
type Pinch struct {
	cfg     *Config
	log     *zap.Logger
	session *PinchSession
}

func NewPinch(cfg *Config, log *zap.Logger) *Pinch {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pinch{cfg: cfg, log: log}
}

func (p *Pinch) Session() *PinchSession {
	return p.session
}

// Poll advances the recognizer one frame and reports whether the scene
// changed.
func (p *Pinch) Poll(reg *xr.Registry, targets []*interact.Handle) bool {
	left, right, ok := reg.Pair()
	held := ok && left.GripPressed && right.GripPressed

	if p.session != nil {
		if !held {
			p.end()
			return false
		}
		return p.update(left, right)
	}
	if !held {
		return false
	}
	return p.begin(left, right, targets)
}

func (p *Pinch) begin(left, right *xr.Controller, targets []*interact.Handle) bool {
	mid := rl.Vector3Lerp(left.Position, right.Position, 0.5)
	h := Nearest(mid, targets)
	if h == nil {
		return false
	}
	if !h.Acquire(interact.OwnerPinch) {
		return false
	}
	tr := h.Actor().Transform
	p.session = &PinchSession{
		Handle:        h,
		StartScale:    tr.Scale,
		StartDistance: rl.Vector3Distance(left.Position, right.Position),
		StartAngle:    heading(left.Position, right.Position),
		StartRotation: tr.Rotation,
	}
	p.log.Debug("pinch started", zap.String("actor", h.Actor().Name),
		zap.Float32("distance", p.session.StartDistance), zap.Bool("twoHanded", p.cfg.TwoHanded))
	return false
}

func (p *Pinch) update(left, right *xr.Controller) bool {
	s := p.session
	return s.Handle.Mutate(interact.OwnerPinch, func(t *engine.Transform) {
		// Hands that started together give no usable ratio.
		if s.StartDistance > 1e-6 {
			k := rl.Vector3Distance(left.Position, right.Position) / s.StartDistance
			t.Scale = rl.Vector3{
				X: p.clampScale(s.StartScale.X * k),
				Y: p.clampScale(s.StartScale.Y * k),
				Z: p.clampScale(s.StartScale.Z * k),
			}
		}
		if p.cfg.TwoHanded {
			delta := wrapAngle(heading(left.Position, right.Position) - s.StartAngle)
			// A positive yaw turns +X toward -Z, which lowers the heading.
			t.Rotation.Y = s.StartRotation.Y - delta*rl.Rad2deg
		}
	})
}

func (p *Pinch) end() {
	s := p.session
	p.session = nil
	s.Handle.Release(interact.OwnerPinch)
	p.log.Debug("pinch ended", zap.Float32("scale", s.Handle.Actor().Transform.Scale.X))
}

// HandleDisconnect ends the pinch; it always involves both hands.
func (p *Pinch) HandleDisconnect(*xr.Controller) {
	if p.session != nil {
		p.end()
	}
}

// Busy reports whether a pinch holds both hands.
func (p *Pinch) Busy(xr.Hand) bool {
	return p.session != nil
}

func (p *Pinch) clampScale(v float32) float32 {
	return rl.Clamp(v, p.cfg.MinScale, p.cfg.MaxScale)
}

// heading is the angle of the a->b vector projected on the XZ plane.
func heading(a, b rl.Vector3) float32 {
	return math32.Atan2(b.Z-a.Z, b.X-a.X)
}

// wrapAngle maps a radian angle to [-Pi, Pi].
func wrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}
