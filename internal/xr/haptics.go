package xr

import "time"

// HapticActuator is the optional vibration capability of a controller.
type HapticActuator interface {
	Pulse(intensity float32, duration time.Duration) error
}

// ClampIntensity limits a pulse intensity to [0, 1].
func ClampIntensity(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
