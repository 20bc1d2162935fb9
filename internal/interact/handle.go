package interact

import (
	"meshvr/internal/components"
	"meshvr/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Owner names the gesture currently allowed to mutate an actor's transform.
type Owner string

const (
	NoOwner      Owner = ""
	OwnerGrab    Owner = "grab"
	OwnerPinch   Owner = "pinch"
	OwnerDesktop Owner = "desktop"
)

// Tint sources. The selection tint is owned by Highlight.
const tintSelected = "selected"

type tint struct {
	source string
	color  rl.Color
}

// Handle is the interaction state of one renderable: the reset snapshot,
// selection, color layers and the transform owner token.
type Handle struct {
	actor    *engine.Actor
	renderer *components.MeshRenderer
	redraw   Redrawer

	initial       engine.Transform
	selected      bool
	baseColor     rl.Color
	selectedColor rl.Color
	tints         []tint
	owner         Owner
}

// MakeInteractive snapshots the actor's current transform as its reset
// target and returns a handle for it. The actor is marked not selected.
func MakeInteractive(actor *engine.Actor, selectedColor rl.Color, redraw Redrawer) *Handle {
	if redraw == nil {
		redraw = RedrawFunc(nil)
	}
	h := &Handle{
		actor:         actor,
		renderer:      engine.GetComponent[*components.MeshRenderer](actor),
		redraw:        redraw,
		initial:       actor.Transform,
		selectedColor: selectedColor,
	}
	if h.renderer != nil {
		h.baseColor = h.renderer.Color
	}
	return h
}

func (h *Handle) Actor() *engine.Actor {
	return h.actor
}

// Initial returns the transform captured by MakeInteractive.
func (h *Handle) Initial() engine.Transform {
	return h.initial
}

// Reset restores the captured transform exactly and redraws.
func (h *Handle) Reset() {
	h.actor.Transform = h.initial
	h.redraw.RequestRedraw()
}

// Highlight applies the selected color when enabled, and restores the
// underlying color when disabled. It always requests one redraw.
func (h *Handle) Highlight(enabled bool) {
	h.selected = enabled
	h.tints = removeTint(h.tints, tintSelected)
	if enabled {
		h.tints = append(h.tints, tint{source: tintSelected, color: h.selectedColor})
	}
	h.paint()
	h.redraw.RequestRedraw()
}

func (h *Handle) Selected() bool {
	return h.selected
}

// SetTint pushes a color layer for source, replacing any earlier layer from
// the same source. The newest layer is the one displayed.
func (h *Handle) SetTint(source string, c rl.Color) {
	h.tints = removeTint(h.tints, source)
	h.tints = append(h.tints, tint{source: source, color: c})
	h.applyColor()
}

// ClearTint removes source's layer, revealing the next one down or the
// base color.
func (h *Handle) ClearTint(source string) {
	before := len(h.tints)
	h.tints = removeTint(h.tints, source)
	if len(h.tints) != before {
		h.applyColor()
	}
}

// SetBaseColor changes the color shown when no tint is active.
func (h *Handle) SetBaseColor(c rl.Color) {
	h.baseColor = c
	h.applyColor()
}

func (h *Handle) BaseColor() rl.Color {
	return h.baseColor
}

// Color returns the color currently displayed.
func (h *Handle) Color() rl.Color {
	if n := len(h.tints); n > 0 {
		return h.tints[n-1].color
	}
	return h.baseColor
}

func (h *Handle) applyColor() {
	h.paint()
	h.redraw.RequestRedraw()
}

func (h *Handle) paint() {
	if h.renderer != nil {
		h.renderer.Color = h.Color()
	}
}

func removeTint(s []tint, source string) []tint {
	for i := range s {
		if s[i].source == source {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// Acquire makes o the transform owner. It fails if another gesture holds it.
func (h *Handle) Acquire(o Owner) bool {
	if o == NoOwner {
		return false
	}
	if h.owner != NoOwner && h.owner != o {
		return false
	}
	h.owner = o
	return true
}

// Release gives up ownership. Releasing a token not held is a no-op.
func (h *Handle) Release(o Owner) {
	if h.owner == o {
		h.owner = NoOwner
	}
}

func (h *Handle) Owner() Owner {
	return h.owner
}

// Mutate runs fn on the transform if o owns it, then redraws.
func (h *Handle) Mutate(o Owner, fn func(t *engine.Transform)) bool {
	if o == NoOwner || h.owner != o {
		return false
	}
	fn(&h.actor.Transform)
	h.redraw.RequestRedraw()
	return true
}

// Sphere is the world bounding sphere used for picking. Actors without a
// mesh renderer are treated as a point at their position.
func (h *Handle) Sphere() (center rl.Vector3, radius float32) {
	if h.renderer != nil {
		return h.renderer.WorldSphere()
	}
	return h.actor.Transform.Position, 0
}
