package gesture

import (
	"meshvr/internal/interact"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Nearest returns the handle whose bounding sphere center is closest to p.
func Nearest(p rl.Vector3, targets []*interact.Handle) *interact.Handle {
	var best *interact.Handle
	var bestDist float32
	for _, h := range targets {
		center, _ := h.Sphere()
		d := rl.Vector3DistanceSqr(p, center)
		if best == nil || d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

// NearestWithin is Nearest limited to targets whose bounding sphere
// surface lies within reach of p. A reach of zero or less means no limit.
func NearestWithin(p rl.Vector3, targets []*interact.Handle, reach float32) *interact.Handle {
	h := Nearest(p, targets)
	if h == nil || reach <= 0 {
		return h
	}
	center, radius := h.Sphere()
	if rl.Vector3Distance(p, center)-radius > reach {
		return nil
	}
	return h
}

// RayPick is the nearest-center heuristic: a target is hit when the ray
// passes within threshold of its bounding sphere, in front of the origin
// and no further than length along the ray. The hit closest along the ray
// wins. dir must be normalized.
func RayPick(origin, dir rl.Vector3, targets []*interact.Handle, threshold, length float32) (*interact.Handle, float32) {
	var best *interact.Handle
	var bestT float32
	for _, h := range targets {
		center, radius := h.Sphere()
		toCenter := rl.Vector3Subtract(center, origin)
		t := rl.Vector3DotProduct(toCenter, dir)
		if t <= 0 || t > length {
			continue
		}
		closest := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
		miss := rl.Vector3Distance(closest, center)
		if miss > radius+threshold {
			continue
		}
		if best == nil || t < bestT {
			best, bestT = h, t
		}
	}
	return best, bestT
}
