package bridge

import (
	"meshvr/internal/xr"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Keys is one frame of emulator input, already read from the keyboard.
type Keys struct {
	Hand    xr.Hand // the hand the other fields act on
	Toggle  bool    // connect or disconnect Hand
	Trigger bool
	Grip    bool
	Move    rl.Vector3 // direction, scaled by Speed and dt
	Turn    float32    // yaw direction, scaled by TurnSpeed and dt
}

// Emulator fakes two controllers from the keyboard. Emulated controllers
// have no haptics.
type Emulator struct {
	Speed     float32 // units per second
	TurnSpeed float32 // radians per second

	live    [2]bool
	pos     [2]rl.Vector3
	yaw     [2]float32
	trigger [2]bool
	grip    [2]bool
}

var emulatorHome = [2]rl.Vector3{
	xr.Left:  {X: -0.3, Y: 0, Z: 1.5},
	xr.Right: {X: 0.3, Y: 0, Z: 1.5},
}

func NewEmulator() *Emulator {
	return &Emulator{Speed: 0.8, TurnSpeed: 1.5}
}

// Live reports whether the emulator has connected h.
func (e *Emulator) Live(h xr.Hand) bool {
	return e.live[h]
}

// Step returns the events produced by one frame of input.
func (e *Emulator) Step(k Keys, dt float32) []xr.Event {
	h := k.Hand
	var out []xr.Event

	if k.Toggle {
		if e.live[h] {
			e.live[h], e.trigger[h], e.grip[h] = false, false, false
			return append(out, xr.Event{Type: xr.EventDisconnected, Hand: h})
		}
		e.live[h] = true
		e.pos[h] = emulatorHome[h]
		e.yaw[h] = 0
		out = append(out, xr.Event{Type: xr.EventConnected, Hand: h}, e.pose(h))
	}
	if !e.live[h] {
		return out
	}

	if k.Move != (rl.Vector3{}) || k.Turn != 0 {
		e.pos[h] = rl.Vector3Add(e.pos[h], rl.Vector3Scale(k.Move, e.Speed*dt))
		e.yaw[h] += k.Turn * e.TurnSpeed * dt
		out = append(out, e.pose(h))
	}
	if k.Trigger != e.trigger[h] {
		e.trigger[h] = k.Trigger
		out = append(out, xr.Event{Type: xr.EventTrigger, Hand: h, Pressed: k.Trigger})
	}
	if k.Grip != e.grip[h] {
		e.grip[h] = k.Grip
		out = append(out, xr.Event{Type: xr.EventGrip, Hand: h, Pressed: k.Grip})
	}
	return out
}

// Sync restates the pose and button state of every live hand. Events
// dropped while no session was active are recovered by applying these.
func (e *Emulator) Sync() []xr.Event {
	var out []xr.Event
	for _, h := range xr.Hands {
		if !e.live[h] {
			continue
		}
		out = append(out,
			e.pose(h),
			xr.Event{Type: xr.EventTrigger, Hand: h, Pressed: e.trigger[h]},
			xr.Event{Type: xr.EventGrip, Hand: h, Pressed: e.grip[h]},
		)
	}
	return out
}

// pose points the controller along -Z turned by its yaw.
func (e *Emulator) pose(h xr.Hand) xr.Event {
	yaw := e.yaw[h]
	return xr.Event{
		Type:         xr.EventPose,
		Hand:         h,
		Position:     e.pos[h],
		Direction:    rl.Vector3{X: -math32.Sin(yaw), Z: -math32.Cos(yaw)},
		HasDirection: true,
	}
}
