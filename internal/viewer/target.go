package viewer

import (
	"meshvr/internal/camera"
	"meshvr/internal/engine"
	"meshvr/internal/interact"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// deskTarget routes the switchboard's manipulators: camera operations go
// to the orbit camera, object scaling to the current mesh.
type deskTarget struct {
	cam      *camera.OrbitCamera
	current  func() *interact.Handle
	minScale float32
	maxScale float32
}

func (t *deskTarget) Orbit(azimuth, elevation float32) {
	t.cam.Orbit(azimuth, elevation)
}

func (t *deskTarget) Pan(dx, dy float32) {
	t.cam.Pan(dx, dy)
}

func (t *deskTarget) Zoom(amount float32) {
	t.cam.Zoom(amount)
}

// ScaleObject multiplies the mesh scale by factor. It is refused while a
// controller gesture owns the transform.
func (t *deskTarget) ScaleObject(factor float32) {
	h := t.current()
	if h == nil || !h.Acquire(interact.OwnerDesktop) {
		return
	}
	defer h.Release(interact.OwnerDesktop)
	h.Mutate(interact.OwnerDesktop, func(tr *engine.Transform) {
		tr.Scale = rl.Vector3{
			X: rl.Clamp(tr.Scale.X*factor, t.minScale, t.maxScale),
			Y: rl.Clamp(tr.Scale.Y*factor, t.minScale, t.maxScale),
			Z: rl.Clamp(tr.Scale.Z*factor, t.minScale, t.maxScale),
		}
	})
}
