package viewer

import (
	"meshvr/internal/engine"
	"meshvr/internal/interact"
)

const maxUndoStack = 50

// undoState captures a mesh transform before a desktop edit.
type undoState struct {
	handle    *interact.Handle
	transform engine.Transform
}

type undoStack struct {
	states []undoState
}

// push saves the current transform of h.
func (u *undoStack) push(h *interact.Handle) {
	if h == nil {
		return
	}
	// Cap stack size
	if len(u.states) >= maxUndoStack {
		u.states = u.states[1:]
	}
	u.states = append(u.states, undoState{handle: h, transform: h.Actor().Transform})
}

// undo restores the last saved state. The state stays on the stack when a
// gesture holds the transform.
func (u *undoStack) undo() bool {
	if len(u.states) == 0 {
		return false
	}
	state := u.states[len(u.states)-1]
	if !state.handle.Acquire(interact.OwnerDesktop) {
		return false
	}
	defer state.handle.Release(interact.OwnerDesktop)
	u.states = u.states[:len(u.states)-1]
	state.handle.Mutate(interact.OwnerDesktop, func(t *engine.Transform) {
		*t = state.transform
	})
	return true
}

// forget drops every state of h, used when its actor leaves the scene.
func (u *undoStack) forget(h *interact.Handle) {
	kept := u.states[:0]
	for _, s := range u.states {
		if s.handle != h {
			kept = append(kept, s)
		}
	}
	u.states = kept
}

func (u *undoStack) len() int {
	return len(u.states)
}
