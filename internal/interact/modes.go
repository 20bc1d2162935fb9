package interact

import "strings"

// Mode selects which desktop manipulators the mouse buttons drive.
type Mode int

const (
	ModeRotate Mode = iota
	ModeScale
	ModeTranslate
	ModeInspect
)

var modeNames = [...]string{"rotate", "scale", "translate", "inspect"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return modeNames[ModeRotate]
	}
	return modeNames[m]
}

// ParseMode maps a selector value to a Mode. Unknown names fall back to
// ModeRotate.
func ParseMode(name string) Mode {
	for i, n := range modeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Mode(i)
		}
	}
	return ModeRotate
}

// Modes lists every mode in selector order.
func Modes() []Mode {
	return []Mode{ModeRotate, ModeScale, ModeTranslate, ModeInspect}
}

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Manipulator is a camera or object operation driven by a pointer drag.
type Manipulator int

const (
	ManipNone Manipulator = iota
	ManipRotate
	ManipPan
	ManipZoom
	ManipScale
)

func (m Manipulator) String() string {
	switch m {
	case ManipRotate:
		return "rotate"
	case ManipPan:
		return "pan"
	case ManipZoom:
		return "zoom"
	case ManipScale:
		return "scale"
	}
	return "none"
}

// modeBindings is the fixed button layout of each mode.
var modeBindings = map[Mode]map[Button]Manipulator{
	ModeRotate: {
		ButtonLeft:   ManipRotate,
		ButtonMiddle: ManipPan,
		ButtonRight:  ManipZoom,
	},
	ModeScale: {
		ButtonLeft:   ManipScale,
		ButtonMiddle: ManipPan,
		ButtonRight:  ManipRotate,
	},
	ModeTranslate: {
		ButtonLeft:   ManipPan,
		ButtonMiddle: ManipRotate,
		ButtonRight:  ManipZoom,
	},
	ModeInspect: {
		ButtonLeft:  ManipRotate,
		ButtonRight: ManipZoom,
	},
}

// Target receives the manipulator operations.
type Target interface {
	Orbit(azimuthDeg, elevationDeg float32)
	Pan(dx, dy float32)
	Zoom(amount float32)
	ScaleObject(factor float32)
}

// Sensitivity converts pointer pixels into manipulator units.
type Sensitivity struct {
	RotateDegPerPixel float32
	PanPerPixel       float32
	ZoomPerPixel      float32
	ScalePerPixel     float32
}

// DefaultSensitivity matches a 1280x720 window.
var DefaultSensitivity = Sensitivity{
	RotateDegPerPixel: 0.3,
	PanPerPixel:       0.002,
	ZoomPerPixel:      0.005,
	ScalePerPixel:     0.005,
}

// Switchboard holds the interaction mode and its active bindings.
type Switchboard struct {
	mode     Mode
	bindings map[Button]Manipulator
	redraw   Redrawer
	sens     Sensitivity
}

// NewSwitchboard starts in ModeRotate. Construction does not redraw.
func NewSwitchboard(sens Sensitivity, redraw Redrawer) *Switchboard {
	if redraw == nil {
		redraw = RedrawFunc(nil)
	}
	s := &Switchboard{redraw: redraw, sens: sens}
	s.bind(ModeRotate)
	return s
}

// SetMode clears every binding, binds exactly m's set and requests one
// redraw.
func (s *Switchboard) SetMode(m Mode) {
	if _, ok := modeBindings[m]; !ok {
		m = ModeRotate
	}
	s.bind(m)
	s.redraw.RequestRedraw()
}

// SetModeName is SetMode for selector strings.
func (s *Switchboard) SetModeName(name string) Mode {
	m := ParseMode(name)
	s.SetMode(m)
	return m
}

func (s *Switchboard) bind(m Mode) {
	s.bindings = make(map[Button]Manipulator, len(modeBindings[m]))
	for b, manip := range modeBindings[m] {
		s.bindings[b] = manip
	}
	s.mode = m
}

// CurrentMode returns the last mode set.
func (s *Switchboard) CurrentMode() Mode {
	return s.mode
}

// Binding returns the manipulator bound to b, or ManipNone.
func (s *Switchboard) Binding(b Button) Manipulator {
	return s.bindings[b]
}

// Bindings returns a copy of the active bindings.
func (s *Switchboard) Bindings() map[Button]Manipulator {
	out := make(map[Button]Manipulator, len(s.bindings))
	for b, m := range s.bindings {
		out[b] = m
	}
	return out
}

// Drag feeds a pointer drag of (dx, dy) pixels on button b to its
// manipulator. It reports whether anything was applied.
func (s *Switchboard) Drag(t Target, b Button, dx, dy float32) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	switch s.bindings[b] {
	case ManipRotate:
		t.Orbit(-dx*s.sens.RotateDegPerPixel, dy*s.sens.RotateDegPerPixel)
	case ManipPan:
		t.Pan(-dx*s.sens.PanPerPixel, dy*s.sens.PanPerPixel)
	case ManipZoom:
		t.Zoom(dy * s.sens.ZoomPerPixel)
	case ManipScale:
		// Dragging up grows the object.
		factor := 1 - dy*s.sens.ScalePerPixel
		if factor <= 0 {
			return false
		}
		t.ScaleObject(factor)
	default:
		return false
	}
	s.redraw.RequestRedraw()
	return true
}
