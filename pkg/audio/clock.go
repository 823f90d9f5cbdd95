package audio

// Clock is the logical transport position of the host. It has no relation to
// wall time; it only counts sample frames handed through the processing loop.
type Clock struct {
	currentSample uint64
	running       bool
}

// NewClock creates a clock positioned at sample zero, running.
func NewClock() *Clock {
	return &Clock{running: true}
}

// CurrentSample returns the current transport position in frames.
func (c *Clock) CurrentSample() uint64 {
	return c.currentSample
}

// IsRunning reports whether the transport is still advancing.
func (c *Clock) IsRunning() bool {
	return c.running
}

// Advance moves the transport forward by n frames. Calls on a stopped clock
// are ignored, as are non-positive advances.
func (c *Clock) Advance(n int) {
	if !c.running || n <= 0 {
		return
	}
	c.currentSample += uint64(n)
}

// Stop freezes the transport. The final position equals the total number of
// frames processed.
func (c *Clock) Stop() {
	c.running = false
}
