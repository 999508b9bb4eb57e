package reconcile

import (
	"sync"

	"mdvault/internal/ports"
)

// EchoCounter tracks how many upcoming watcher events were caused by the
// app's own mutations. The count never drops below zero.
type EchoCounter struct {
	mu    sync.Mutex
	count int
}

var _ ports.EchoRecorder = (*EchoCounter)(nil)

// NewEchoCounter creates a counter at zero
func NewEchoCounter() *EchoCounter {
	return &EchoCounter{}
}

// Expect adds n expected events. Non-positive n is ignored.
func (c *EchoCounter) Expect(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.count += n
	c.mu.Unlock()
}

// Cancel withdraws up to n expected events
func (c *EchoCounter) Cancel(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.count = max(c.count-n, 0)
	c.mu.Unlock()
}

// Consume attributes one event to the app if any are expected.
// It reports whether the event was an echo and the count left afterwards.
func (c *EchoCounter) Consume() (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return false, 0
	}
	c.count--
	return true, c.count
}

// Pending returns the number of expected events not yet observed
func (c *EchoCounter) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset drops every expectation
func (c *EchoCounter) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}
