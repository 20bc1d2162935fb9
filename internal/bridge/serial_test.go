package bridge

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	s, err := ParseLine("right,0.1,1.2,-0.5,0,0,0,1,1,0\r\n")
	require.NoError(t, err)
	assert.Equal(t, xr.Right, s.Hand)
	assert.Equal(t, rl.Vector3{X: 0.1, Y: 1.2, Z: -0.5}, s.Position)
	assert.Equal(t, float32(1), s.Orientation.W)
	assert.True(t, s.Trigger)
	assert.False(t, s.Grip)

	s, err = ParseLine("l, disconnect")
	require.NoError(t, err)
	assert.True(t, s.Disconnect)
	assert.Equal(t, xr.Left, s.Hand)
}

func TestParseLineErrors(t *testing.T) {
	tests := map[string]string{
		"bad hand":    "up,0,0,0,0,0,0,1,0,0",
		"short":       "left,0,0,0",
		"bad float":   "left,x,0,0,0,0,0,1,0,0",
		"bad flag":    "left,0,0,0,0,0,0,1,2,0",
		"empty":       "",
		"bad command": "left,explode",
	}
	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLine(line)
			assert.Error(t, err)
		})
	}
}

func eventTypes(evs []xr.Event) []xr.EventType {
	out := make([]xr.EventType, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

func TestSampleDecoderEdges(t *testing.T) {
	var d sampleDecoder
	s := Sample{Hand: xr.Left}

	assert.Equal(t, []xr.EventType{xr.EventConnected, xr.EventPose}, eventTypes(d.events(s)))
	assert.Equal(t, []xr.EventType{xr.EventPose}, eventTypes(d.events(s)))

	s.Trigger = true
	evs := d.events(s)
	assert.Equal(t, []xr.EventType{xr.EventPose, xr.EventTrigger}, eventTypes(evs))
	assert.True(t, evs[1].Pressed)

	s.Trigger, s.Grip = false, true
	assert.Equal(t, []xr.EventType{xr.EventPose, xr.EventTrigger, xr.EventGrip}, eventTypes(d.events(s)))

	assert.Equal(t, []xr.EventType{xr.EventDisconnected}, eventTypes(d.events(Sample{Hand: xr.Left, Disconnect: true})))
	assert.Empty(t, d.events(Sample{Hand: xr.Left, Disconnect: true}), "already gone")
}

func collect(t *testing.T, ch <-chan xr.Event, n int) []xr.Event {
	t.Helper()
	var out []xr.Event
	for len(out) < n {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("got %d of %d events", len(out), n)
		}
	}
	return out
}

func TestSerialSourceRun(t *testing.T) {
	src := NewSerialSource("fake", 9600, nil)
	src.Retry = 10 * time.Millisecond
	attempts := 0
	src.open = func(port string, baud int) (io.ReadCloser, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("busy")
		}
		if attempts == 2 {
			lines := "right,0,1,0,0,0,0,1,0,0\ngarbage\nright,0,1,0,0,0,0,1,1,0\n"
			return io.NopCloser(strings.NewReader(lines)), nil
		}
		r, _ := io.Pipe() // blocks until closed
		return r, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	evs := collect(t, src.Events(), 5)
	assert.Equal(t, []xr.EventType{
		xr.EventConnected, xr.EventPose, xr.EventPose, xr.EventTrigger,
		xr.EventDisconnected, // port hit EOF
	}, eventTypes(evs))

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
