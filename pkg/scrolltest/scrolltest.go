// Package scrolltest provides deterministic test support for the scroll
// engine: a controllable clock, a frame pump, and a notification recorder.
package scrolltest

import (
	"sync"
	"time"

	"github.com/go-drift/kinetic/pkg/animation"
	"github.com/go-drift/kinetic/pkg/scroll"
)

// FakeClock provides controllable time for deterministic animation tests.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Harness installs a fake clock for the duration of a test and pumps
// frames through the animation ticker registry.
type Harness struct {
	Clock   *FakeClock
	restore animation.Clock
}

// NewHarness installs a fresh fake clock. Call Restore when done,
// typically via t.Cleanup.
func NewHarness() *Harness {
	clock := NewFakeClock()
	prev := animation.SetClock(clock)
	return &Harness{Clock: clock, restore: prev}
}

// Restore reinstates the clock that was active before NewHarness.
func (h *Harness) Restore() {
	animation.SetClock(h.restore)
}

// Pump advances the clock by d and delivers one frame to all active
// tickers. It returns the number of tickers that ran.
func (h *Harness) Pump(d time.Duration) int {
	h.Clock.Advance(d)
	return animation.StepTickers()
}

// PumpUntilSettled pumps 16ms frames until no ticker remains active or
// maxFrames elapses. It returns the number of frames pumped.
func (h *Harness) PumpUntilSettled(maxFrames int) int {
	const frame = 16 * time.Millisecond
	for i := 0; i < maxFrames; i++ {
		if !animation.HasActiveTickers() {
			return i
		}
		h.Pump(frame)
	}
	return maxFrames
}

// Recorder collects scroll notifications for later assertions.
type Recorder struct {
	Notifications []scroll.Notification
}

// Attach subscribes the recorder to a position and returns the
// unsubscribe function.
func (r *Recorder) Attach(p *scroll.Position) func() {
	return p.AddNotificationListener(func(n scroll.Notification) {
		r.Notifications = append(r.Notifications, n)
	})
}

// Overscrolls returns the recorded overscroll notifications.
func (r *Recorder) Overscrolls() []scroll.OverscrollNotification {
	var out []scroll.OverscrollNotification
	for _, n := range r.Notifications {
		if o, ok := n.(scroll.OverscrollNotification); ok {
			out = append(out, o)
		}
	}
	return out
}

// Starts returns the number of recorded start notifications.
func (r *Recorder) Starts() int {
	count := 0
	for _, n := range r.Notifications {
		if _, ok := n.(scroll.StartNotification); ok {
			count++
		}
	}
	return count
}

// Ends returns the number of recorded end notifications.
func (r *Recorder) Ends() int {
	count := 0
	for _, n := range r.Notifications {
		if _, ok := n.(scroll.EndNotification); ok {
			count++
		}
	}
	return count
}
