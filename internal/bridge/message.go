// Package bridge feeds controller events into meshvr from outside the
// process: a browser WebXR page over websocket, a serial tracker, or the
// keyboard.
package bridge

import (
	"encoding/json"
	"fmt"

	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Message is one inbound controller event.
type Message struct {
	Type        string      `json:"type"`
	Hand        string      `json:"hand"`
	Position    *[3]float32 `json:"position,omitempty"`
	Direction   *[3]float32 `json:"direction,omitempty"`
	Orientation *[4]float32 `json:"orientation,omitempty"` // x, y, z, w
	Pressed     bool        `json:"pressed,omitempty"`
	// Haptics is set on "connected" when the device has an actuator.
	Haptics bool `json:"haptics,omitempty"`
}

// PulseMessage is the outbound haptic request.
type PulseMessage struct {
	Type       string  `json:"type"`
	Hand       string  `json:"hand"`
	Intensity  float32 `json:"intensity"`
	DurationMs int64   `json:"durationMs"`
}

// Decode parses a message into an event. The haptic actuator, if any, is
// attached by the transport.
func Decode(data []byte) (Message, xr.Event, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return m, xr.Event{}, fmt.Errorf("decode message: %w", err)
	}
	ev, err := m.Event()
	return m, ev, err
}

func (m Message) Event() (xr.Event, error) {
	typ, ok := xr.ParseEventType(m.Type)
	if !ok {
		return xr.Event{}, fmt.Errorf("unknown event type %q", m.Type)
	}
	hand, err := xr.ParseHand(m.Hand)
	if err != nil {
		return xr.Event{}, err
	}
	ev := xr.Event{Type: typ, Hand: hand, Pressed: m.Pressed}
	if typ != xr.EventPose {
		return ev, nil
	}

	if m.Position == nil {
		return xr.Event{}, fmt.Errorf("pose without position")
	}
	ev.Position = vec3(*m.Position)
	if m.Direction != nil {
		ev.Direction = vec3(*m.Direction)
		ev.HasDirection = true
	}
	if o := m.Orientation; o != nil {
		ev.Orientation = mgl32.Quat{W: o[3], V: mgl32.Vec3{o[0], o[1], o[2]}}
		ev.HasOrientation = true
	}
	return ev, nil
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
