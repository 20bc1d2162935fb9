package xr

import (
	"errors"
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingActuator struct {
	pulses []float32
	err    error
}

func (a *recordingActuator) Pulse(intensity float32, duration time.Duration) error {
	a.pulses = append(a.pulses, intensity)
	return a.err
}

func TestRegistryConnectDisconnect(t *testing.T) {
	r := NewRegistry(nil)
	var connected, disconnected []Hand
	r.OnConnect.AddListener(func(c *Controller) { connected = append(connected, c.Hand) })
	r.OnDisconnect.AddListener(func(c *Controller) { disconnected = append(disconnected, c.Hand) })

	left := r.Connect(Device{Hand: Left})
	right := r.Connect(Device{Hand: Right})
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, 2, r.Count())
	assert.Same(t, left, r.Get(Left))

	l, rr, ok := r.Pair()
	assert.True(t, ok)
	assert.Same(t, left, l)
	assert.Same(t, right, rr)

	r.Disconnect(Left)
	assert.Nil(t, r.Get(Left))
	assert.Equal(t, 1, r.Count())
	_, _, ok = r.Pair()
	assert.False(t, ok)

	assert.Equal(t, []Hand{Left, Right}, connected)
	assert.Equal(t, []Hand{Left}, disconnected)
}

func TestRegistryReconnectReplaces(t *testing.T) {
	r := NewRegistry(nil)
	var disconnected []*Controller
	r.OnDisconnect.AddListener(func(c *Controller) { disconnected = append(disconnected, c) })

	first := r.Connect(Device{Hand: Right})
	second := r.Connect(Device{Hand: Right})

	assert.NotSame(t, first, second)
	assert.Same(t, second, r.Get(Right))
	require.Len(t, disconnected, 1)
	assert.Same(t, first, disconnected[0])
	assert.Equal(t, 1, r.Count())
}

func TestRegistryDisconnectEmptySlot(t *testing.T) {
	r := NewRegistry(nil)
	fired := 0
	r.OnDisconnect.AddListener(func(*Controller) { fired++ })

	r.Disconnect(Left)
	r.Disconnect(Hand(7))

	assert.Zero(t, fired)
}

func TestRegistryApply(t *testing.T) {
	r := NewRegistry(nil)
	act := &recordingActuator{}

	r.Apply(Event{Type: EventTrigger, Hand: Left, Pressed: true}) // dropped: not connected
	assert.Nil(t, r.Get(Left))

	r.Apply(Event{Type: EventConnected, Hand: Left, Haptics: act})
	r.Apply(Event{Type: EventPose, Hand: Left, Position: rl.Vector3{X: 1, Y: 2, Z: 3},
		Direction: rl.Vector3{Z: -2}, HasDirection: true})
	r.Apply(Event{Type: EventTrigger, Hand: Left, Pressed: true})
	r.Apply(Event{Type: EventGrip, Hand: Left, Pressed: true})

	c := r.Get(Left)
	require.NotNil(t, c)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, c.Position)
	assert.True(t, c.TriggerPressed)
	assert.True(t, c.GripPressed)
	h, ok := c.Haptics()
	assert.True(t, ok)
	assert.Same(t, act, h)

	r.Apply(Event{Type: EventTrigger, Hand: Left, Pressed: false})
	assert.False(t, c.TriggerPressed)

	r.Apply(Event{Type: EventDisconnected, Hand: Left})
	assert.Nil(t, r.Get(Left))
}

func TestControllerPulse(t *testing.T) {
	act := &recordingActuator{}
	c := newController(Device{Hand: Right, Haptics: act})

	require.NoError(t, c.Pulse(1.5, 20*time.Millisecond))
	require.NoError(t, c.Pulse(0.5, 0)) // zero duration is skipped
	assert.Equal(t, []float32{1}, act.pulses)

	act.err = errors.New("gone")
	assert.Error(t, c.Pulse(0.2, time.Millisecond))

	bare := newController(Device{Hand: Left})
	_, ok := bare.Haptics()
	assert.False(t, ok)
	assert.NoError(t, bare.Pulse(1, time.Second))
}

func TestControllerForward(t *testing.T) {
	c := newController(Device{Hand: Left})

	fwd, ok := c.Forward()
	require.True(t, ok)
	assert.InDelta(t, -1, fwd.Z, 1e-6)

	// Quarter turn about +Y points -Z at -X.
	c.Orientation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	fwd, ok = c.Forward()
	require.True(t, ok)
	assert.InDelta(t, -1, fwd.X, 1e-5)
	assert.InDelta(t, 0, fwd.Z, 1e-5)

	c.Direction = rl.Vector3{Y: 3}
	fwd, ok = c.Forward()
	require.True(t, ok)
	assert.InDelta(t, 1, fwd.Y, 1e-6)
	assert.Zero(t, fwd.X)

	c.Direction = rl.Vector3{}
	c.Orientation = mgl32.Quat{}
	_, ok = c.Forward()
	assert.False(t, ok)
}

func TestParseHand(t *testing.T) {
	tests := []struct {
		in      string
		want    Hand
		wantErr bool
	}{
		{"left", Left, false},
		{"R", Right, false},
		{" Right ", Right, false},
		{"both", Left, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHand(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession(t *testing.T) {
	var s Session
	var changes []bool
	s.OnChange.AddListener(func(active bool) { changes = append(changes, active) })

	assert.Equal(t, "Enter VR", s.Label())
	s.Start()
	s.Start()
	assert.True(t, s.Active())
	assert.Equal(t, "Exit VR", s.Label())
	s.Toggle()
	assert.False(t, s.Active())
	s.Stop()

	assert.Equal(t, []bool{true, false}, changes)
}

func TestReleaseAll(t *testing.T) {
	r := NewRegistry(nil)
	l := r.Connect(Device{Hand: Left})
	l.TriggerPressed, l.GripPressed = true, true
	r.ReleaseAll()
	assert.False(t, l.TriggerPressed)
	assert.False(t, l.GripPressed)
}
