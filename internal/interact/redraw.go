package interact

// Redrawer receives redraw requests. Requests are coalesced by the viewer,
// so callers may request freely.
type Redrawer interface {
	RequestRedraw()
}

// RedrawFunc adapts a function to Redrawer.
type RedrawFunc func()

func (f RedrawFunc) RequestRedraw() {
	if f != nil {
		f()
	}
}

// RedrawCounter counts requests; the viewer consumes it once per frame.
type RedrawCounter struct {
	n int
}

func (c *RedrawCounter) RequestRedraw() {
	c.n++
}

// Pending reports the number of requests since the last Take.
func (c *RedrawCounter) Pending() int {
	return c.n
}

// Take reports whether any redraw was requested and resets the counter.
func (c *RedrawCounter) Take() bool {
	pending := c.n > 0
	c.n = 0
	return pending
}
