package interact

import "meshvr/internal/engine"

// Handles owns the interaction handles of the scene's actors, keyed by
// actor UID.
type Handles struct {
	byUID map[uint64]*Handle
	order []*Handle
}

func NewHandles() *Handles {
	return &Handles{byUID: make(map[uint64]*Handle)}
}

func (s *Handles) Add(h *Handle) {
	if old, ok := s.byUID[h.actor.UID]; ok {
		s.Remove(old.actor)
	}
	s.byUID[h.actor.UID] = h
	s.order = append(s.order, h)
}

func (s *Handles) Remove(a *engine.Actor) {
	h, ok := s.byUID[a.UID]
	if !ok {
		return
	}
	delete(s.byUID, a.UID)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Handles) Lookup(a *engine.Actor) *Handle {
	if a == nil {
		return nil
	}
	return s.byUID[a.UID]
}

// Pickable returns the handles of visible pickable actors, in insertion
// order.
func (s *Handles) Pickable() []*Handle {
	var out []*Handle
	for _, h := range s.order {
		if h.actor.Pickable && h.actor.Visible {
			out = append(out, h)
		}
	}
	return out
}

func (s *Handles) All() []*Handle {
	return append([]*Handle(nil), s.order...)
}
