package xr

import "meshvr/internal/engine"

// Session is the inline VR session toggle.
type Session struct {
	active bool
	// OnChange fires with the new state after every transition.
	OnChange engine.EventWithArg[bool]
}

func (s *Session) Active() bool {
	return s.active
}

func (s *Session) Start() {
	if s.active {
		return
	}
	s.active = true
	s.OnChange.Invoke(true)
}

func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.OnChange.Invoke(false)
}

func (s *Session) Toggle() {
	if s.active {
		s.Stop()
	} else {
		s.Start()
	}
}

// Label is the text for the session toggle button.
func (s *Session) Label() string {
	if s.active {
		return "Exit VR"
	}
	return "Enter VR"
}
