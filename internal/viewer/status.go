package viewer

import "fmt"

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 2.0

// status is the short-lived message shown at the bottom of the panel.
type status struct {
	text   string
	at     float64
	failed bool
}

func (s *status) set(now float64, failed bool, format string, args ...any) {
	s.text = fmt.Sprintf(format, args...)
	s.at = now
	s.failed = failed
}

func (s *status) visible(now float64) bool {
	return s.text != "" && now-s.at < statusSeconds
}
