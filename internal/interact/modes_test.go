package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingTarget struct {
	orbits [][2]float32
	pans   [][2]float32
	zooms  []float32
	scales []float32
}

func (r *recordingTarget) Orbit(az, el float32)  { r.orbits = append(r.orbits, [2]float32{az, el}) }
func (r *recordingTarget) Pan(dx, dy float32)    { r.pans = append(r.pans, [2]float32{dx, dy}) }
func (r *recordingTarget) Zoom(amount float32)   { r.zooms = append(r.zooms, amount) }
func (r *recordingTarget) ScaleObject(f float32) { r.scales = append(r.scales, f) }

func TestSwitchboardDefault(t *testing.T) {
	var redraws RedrawCounter
	s := NewSwitchboard(DefaultSensitivity, &redraws)

	assert.Equal(t, ModeRotate, s.CurrentMode())
	assert.Equal(t, ManipRotate, s.Binding(ButtonLeft))
	assert.Equal(t, ManipPan, s.Binding(ButtonMiddle))
	assert.Equal(t, ManipZoom, s.Binding(ButtonRight))
	assert.Zero(t, redraws.Pending(), "construction does not redraw")
}

func TestSwitchboardBindings(t *testing.T) {
	tests := []struct {
		mode Mode
		want map[Button]Manipulator
	}{
		{ModeRotate, map[Button]Manipulator{ButtonLeft: ManipRotate, ButtonMiddle: ManipPan, ButtonRight: ManipZoom}},
		{ModeScale, map[Button]Manipulator{ButtonLeft: ManipScale, ButtonMiddle: ManipPan, ButtonRight: ManipRotate}},
		{ModeTranslate, map[Button]Manipulator{ButtonLeft: ManipPan, ButtonMiddle: ManipRotate, ButtonRight: ManipZoom}},
		{ModeInspect, map[Button]Manipulator{ButtonLeft: ManipRotate, ButtonRight: ManipZoom}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var redraws RedrawCounter
			s := NewSwitchboard(DefaultSensitivity, &redraws)
			s.SetMode(tt.mode)
			assert.Equal(t, tt.want, s.Bindings())
			assert.Equal(t, tt.mode, s.CurrentMode())
			assert.Equal(t, 1, redraws.Pending(), "each switch requests exactly one redraw")
		})
	}
}

func TestSwitchboardModeReentry(t *testing.T) {
	s := NewSwitchboard(DefaultSensitivity, nil)
	want := s.Bindings()

	for _, m := range Modes() {
		s.SetMode(m)
		s.SetMode(ModeRotate)
		assert.Equal(t, want, s.Bindings(), "returning from %v", m)
	}
}

func TestSwitchboardInspectHasNoPan(t *testing.T) {
	s := NewSwitchboard(DefaultSensitivity, nil)
	s.SetMode(ModeInspect)
	assert.Equal(t, ManipNone, s.Binding(ButtonMiddle))
	for _, m := range s.Bindings() {
		assert.NotEqual(t, ManipPan, m)
		assert.NotEqual(t, ManipScale, m)
	}
}

func TestSwitchboardUnknownMode(t *testing.T) {
	s := NewSwitchboard(DefaultSensitivity, nil)
	s.SetMode(ModeTranslate)

	got := s.SetModeName("juggle")
	assert.Equal(t, ModeRotate, got)
	assert.Equal(t, ModeRotate, s.CurrentMode())
	assert.Equal(t, ManipRotate, s.Binding(ButtonLeft))

	s.SetMode(Mode(42))
	assert.Equal(t, ModeRotate, s.CurrentMode())
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeScale, ParseMode("Scale"))
	assert.Equal(t, ModeTranslate, ParseMode(" translate "))
	assert.Equal(t, ModeInspect, ParseMode("inspect"))
	assert.Equal(t, ModeRotate, ParseMode(""))
	assert.Equal(t, "rotate", Mode(-1).String())
}

func TestSwitchboardDrag(t *testing.T) {
	var redraws RedrawCounter
	s := NewSwitchboard(Sensitivity{RotateDegPerPixel: 1, PanPerPixel: 1, ZoomPerPixel: 1, ScalePerPixel: 0.1}, &redraws)
	target := &recordingTarget{}

	assert.True(t, s.Drag(target, ButtonLeft, 2, 3))
	assert.Equal(t, [][2]float32{{-2, 3}}, target.orbits)

	assert.True(t, s.Drag(target, ButtonRight, 0, 4))
	assert.Equal(t, []float32{4}, target.zooms)

	assert.False(t, s.Drag(target, ButtonLeft, 0, 0))

	s.SetMode(ModeScale)
	redraws.Take()
	assert.True(t, s.Drag(target, ButtonLeft, 0, -5))
	assert.InDelta(t, 1.5, target.scales[0], 1e-6)
	assert.False(t, s.Drag(target, ButtonLeft, 0, 20), "non-positive factors are ignored")
	assert.Equal(t, 1, redraws.Pending())

	s.SetMode(ModeInspect)
	assert.False(t, s.Drag(target, ButtonMiddle, 1, 1))
	assert.Empty(t, target.pans)
}
