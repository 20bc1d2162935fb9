package xr

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// EventType enumerates the raw input events a source can deliver.
type EventType int

const (
	EventConnected EventType = iota
	EventDisconnected
	EventPose
	EventTrigger
	EventGrip
)

var eventTypeNames = [...]string{"connected", "disconnected", "pose", "trigger", "grip"}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return "unknown"
	}
	return eventTypeNames[t]
}

// ParseEventType maps a wire name to an EventType.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// Event is one raw input event. Which fields are meaningful depends on Type.
type Event struct {
	Type EventType
	Hand Hand

	// Pose
	Position       rl.Vector3
	Direction      rl.Vector3
	HasDirection   bool
	Orientation    mgl32.Quat
	HasOrientation bool

	// Trigger and Grip
	Pressed bool

	// Connected
	Haptics HapticActuator
}
