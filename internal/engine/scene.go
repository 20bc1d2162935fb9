package engine

type Scene struct {
	Name   string
	Actors []*Actor
	byUID  map[uint64]*Actor
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:   name,
		Actors: make([]*Actor, 0),
		byUID:  make(map[uint64]*Actor),
	}
}

func (s *Scene) Add(a *Actor) {
	if s.byUID == nil {
		s.byUID = make(map[uint64]*Actor)
	}
	a.Scene = s
	s.Actors = append(s.Actors, a)
	s.byUID[a.UID] = a
}

func (s *Scene) Remove(a *Actor) {
	for i, obj := range s.Actors {
		if obj == a {
			s.Actors = append(s.Actors[:i], s.Actors[i+1:]...)
			delete(s.byUID, a.UID)
			a.Scene = nil
			return
		}
	}
}

// FindByUID is an O(1) lookup.
func (s *Scene) FindByUID(uid uint64) *Actor {
	return s.byUID[uid]
}

func (s *Scene) FindByName(name string) *Actor {
	for _, a := range s.Actors {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Pickables returns the visible actors that gestures may target.
func (s *Scene) Pickables() []*Actor {
	var result []*Actor
	for _, a := range s.Actors {
		if a.Pickable && a.Visible {
			result = append(result, a)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, a := range s.Actors {
		a.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, a := range s.Actors {
		a.Update(deltaTime)
	}
}
