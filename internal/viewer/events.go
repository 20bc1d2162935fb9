package viewer

import "meshvr/internal/xr"

// maxEventsPerFrame bounds how much of one source is drained per frame so
// a flooding bridge cannot stall rendering.
const maxEventsPerFrame = 256

// accept reports whether ev may reach the registry. Connection changes
// always pass so the registry knows which controllers exist; poses and
// buttons only count inside a session.
func accept(ev xr.Event, active bool) bool {
	switch ev.Type {
	case xr.EventConnected, xr.EventDisconnected:
		return true
	}
	return active
}

// drain feeds every event waiting on ch to fn without blocking.
func drain(ch <-chan xr.Event, fn func(xr.Event)) int {
	for n := 0; n < maxEventsPerFrame; n++ {
		select {
		case ev, ok := <-ch:
			if !ok {
				return n
			}
			fn(ev)
		default:
			return n
		}
	}
	return maxEventsPerFrame
}

// firstSupported picks the first loadable file of a drop.
func firstSupported(files []string, supported func(string) bool) (string, bool) {
	for _, f := range files {
		if supported(f) {
			return f, true
		}
	}
	return "", false
}
