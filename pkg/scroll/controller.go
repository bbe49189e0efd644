package scroll

import (
	"slices"
	"time"

	"github.com/go-drift/kinetic/pkg/errors"
)

// Controller is the host-facing handle to one or more positions. The zero
// value is usable; positions attach as their scrollables come alive and
// detach when they go away. Reads delegate to the first attached position,
// commands fan out to all of them.
type Controller struct {
	// InitialScrollOffset seeds positions created through CreatePosition
	// and is the offset reported while nothing is attached.
	InitialScrollOffset float64

	positions      []*Position
	listeners      map[int]func()
	unsubscribes   map[*Position]func()
	nextListenerID int
}

// Offset returns the current scroll offset, or InitialScrollOffset when
// no position is attached.
func (c *Controller) Offset() float64 {
	if len(c.positions) > 0 {
		return c.positions[0].Pixels()
	}
	return c.InitialScrollOffset
}

// HasClients reports whether any position is attached.
func (c *Controller) HasClients() bool { return len(c.positions) > 0 }

// Position returns the single attached position. Zero or multiple
// attachments are contract violations; the first position (or nil) is
// returned regardless.
func (c *Controller) Position() *Position {
	if len(c.positions) != 1 {
		errors.Report(errors.ContractError("scroll.Controller.Position",
			"expected exactly one attached position, have %d", len(c.positions)))
	}
	if len(c.positions) == 0 {
		return nil
	}
	return c.positions[0]
}

// CreatePosition builds a position wired to this controller's initial
// offset and attaches it.
func (c *Controller) CreatePosition(physics Physics, axis Axis, label string) *Position {
	p := NewPosition(PositionConfig{
		Physics:       physics,
		Axis:          axis,
		InitialPixels: c.InitialScrollOffset,
		Label:         label,
	})
	c.Attach(p)
	return p
}

// Attach registers a position with the controller.
func (c *Controller) Attach(p *Position) {
	if p == nil || slices.Contains(c.positions, p) {
		return
	}
	c.positions = append(c.positions, p)
	if c.unsubscribes == nil {
		c.unsubscribes = make(map[*Position]func())
	}
	c.unsubscribes[p] = p.AddListener(c.notifyListeners)
}

// Detach removes a position from the controller. The position itself is
// not disposed.
func (c *Controller) Detach(p *Position) {
	for i, existing := range c.positions {
		if existing == p {
			c.positions = append(c.positions[:i], c.positions[i+1:]...)
			break
		}
	}
	if unsub, ok := c.unsubscribes[p]; ok {
		unsub()
		delete(c.unsubscribes, p)
	}
}

// AddListener registers a callback for offset changes on any attached
// position and returns a function that removes it.
func (c *Controller) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

// JumpTo moves all attached positions to offset immediately.
func (c *Controller) JumpTo(offset float64) {
	c.InitialScrollOffset = offset
	if len(c.positions) == 0 {
		c.notifyListeners()
		return
	}
	for _, p := range c.positions {
		p.JumpTo(offset)
	}
}

// AnimateTo animates all attached positions to offset. The returned
// channel closes when the first attached position finishes; with nothing
// attached it is already closed.
func (c *Controller) AnimateTo(offset float64, duration time.Duration, curve func(float64) float64) <-chan struct{} {
	c.InitialScrollOffset = offset
	if len(c.positions) == 0 {
		c.notifyListeners()
		return closedChan()
	}
	var done <-chan struct{}
	for _, p := range c.positions {
		ch := p.AnimateTo(offset, duration, curve)
		if done == nil {
			done = ch
		}
	}
	return done
}

// Dispose detaches every position. Positions remain owned by their
// scrollables and are not disposed here.
func (c *Controller) Dispose() {
	for _, unsub := range c.unsubscribes {
		unsub()
	}
	c.unsubscribes = nil
	c.positions = nil
	c.listeners = nil
}

func (c *Controller) notifyListeners() {
	snapshot := make([]func(), 0, len(c.listeners))
	for _, l := range c.listeners {
		snapshot = append(snapshot, l)
	}
	for _, l := range snapshot {
		l()
	}
}
