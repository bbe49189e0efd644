package scroll

import (
	"math"
	"time"

	"github.com/go-drift/kinetic/pkg/errors"
	"github.com/go-drift/kinetic/pkg/gestures"
)

// SituationReport is the synthetic coordinate space a nested group settles
// in. Metrics describes the combined outer+inner range a ballistic
// simulation runs over; MinRange and MaxRange bound the slice of that
// range the outer position owns; CorrectionOffset translates combined
// values back into the outer position's own coordinates.
type SituationReport struct {
	Metrics          Metrics
	MinRange         float64
	MaxRange         float64
	CorrectionOffset float64
}

// Coordinator couples one outer position with any number of inner
// positions so they scroll as a single logical surface: drags spill from
// one to the other at the boundaries and flings settle across both. It
// implements Delegate so drag and hold controllers can drive the whole
// group.
//
// Like Position, a Coordinator is single-goroutine.
type Coordinator struct {
	outer *Position
	inner []*Position

	currentDrag         *DragController
	userScrollDirection Direction
}

// NewCoordinator couples inner positions (attached later) to outer.
func NewCoordinator(outer *Position) *Coordinator {
	if outer == nil {
		errors.Report(errors.ContractError("scroll.NewCoordinator",
			"coordinator created without an outer position"))
	}
	return &Coordinator{outer: outer}
}

// Outer returns the outer position.
func (c *Coordinator) Outer() *Position { return c.outer }

// InnerPositions returns the attached inner positions.
func (c *Coordinator) InnerPositions() []*Position { return c.inner }

// AttachInner couples an inner position to the group.
func (c *Coordinator) AttachInner(p *Position) {
	if p == nil {
		return
	}
	for _, existing := range c.inner {
		if existing == p {
			return
		}
	}
	c.inner = append(c.inner, p)
}

// DetachInner removes an inner position from the group without disposing
// it.
func (c *Coordinator) DetachInner(p *Position) {
	for i, existing := range c.inner {
		if existing == p {
			c.inner = append(c.inner[:i], c.inner[i+1:]...)
			return
		}
	}
}

// Offset returns the group's combined-space offset: the outer travel plus
// whatever the furthest inner position has scrolled past the boundary.
func (c *Coordinator) Offset() float64 {
	if c.outer == nil {
		return 0
	}
	combined := c.unnestOffset(c.outer.pixels, c.outer)
	for _, p := range c.inner {
		if v := c.unnestOffset(p.pixels, p); v > combined {
			combined = v
		}
	}
	return combined
}

// UserScrollDirection reports the group's current user scroll direction.
func (c *Coordinator) UserScrollDirection() Direction { return c.userScrollDirection }

func (c *Coordinator) updateUserScrollDirection(d Direction) {
	if c.userScrollDirection == d {
		return
	}
	c.userScrollDirection = d
	c.outer.updateUserScrollDirection(d)
	for _, p := range c.inner {
		p.updateUserScrollDirection(d)
	}
}

// beginActivities starts a new activity on every position in the group,
// outer first so its listeners observe the transition before any inner
// position moves. The shared drag, if any, is displaced.
func (c *Coordinator) beginActivities(outerActivity *Activity, innerActivity func(*Position) *Activity) {
	c.outer.BeginActivity(outerActivity)
	scrolling := outerActivity.IsScrolling()
	for _, p := range c.inner {
		activity := innerActivity(p)
		p.BeginActivity(activity)
		scrolling = scrolling && activity.IsScrolling()
	}
	if c.currentDrag != nil {
		c.currentDrag.dispose()
		c.currentDrag = nil
	}
	if !scrolling {
		c.updateUserScrollDirection(DirectionIdle)
	}
}

// GoIdle stops all motion across the group.
func (c *Coordinator) GoIdle() {
	if c.outer == nil {
		return
	}
	c.beginActivities(NewIdleActivity(c.outer), func(p *Position) *Activity {
		return NewIdleActivity(p)
	})
}

// GoBallistic releases the group to physics with a starting velocity. The
// outer position settles within the window computed from the
// representative inner position; inner positions settle in the combined
// space projected back into their own coordinates.
func (c *Coordinator) GoBallistic(velocity float64) {
	if c.outer == nil {
		return
	}
	velocity = c.outer.normalizeVelocity(velocity, "scroll.Coordinator.GoBallistic")
	c.beginActivities(
		c.createOuterBallisticActivity(velocity),
		func(p *Position) *Activity { return c.createInnerBallisticActivity(p, velocity) },
	)
}

// representativeInner selects the inner position whose offset leads the
// motion: the least-scrolled for forward velocity, the most-scrolled for
// reverse. Ties resolve to the later attachment. Zero velocity has no
// representative; the outer position settles independently.
func (c *Coordinator) representativeInner(velocity float64) *Position {
	if velocity == 0 {
		return nil
	}
	var chosen *Position
	for _, p := range c.inner {
		if chosen != nil {
			if velocity > 0 && chosen.pixels < p.pixels {
				continue
			}
			if velocity < 0 && chosen.pixels > p.pixels {
				continue
			}
		}
		chosen = p
	}
	return chosen
}

// computeSituationReport builds the combined coordinate space for a
// ballistic that must carry motion across the outer/inner boundary.
// velocity must be nonzero when inner is away from its minimum.
func (c *Coordinator) computeSituationReport(inner *Position, velocity float64) SituationReport {
	outer := c.outer
	var pixels, minRange, maxRange, correction float64
	extra := 0.0
	if inner.pixels == inner.minExtent {
		// The boundary case: all travel so far belongs to the outer
		// position, so the combined offset is just the outer offset.
		pixels = clamp(outer.pixels, outer.minExtent, outer.maxExtent)
		minRange = outer.minExtent
		maxRange = outer.maxExtent
	} else {
		if inner.pixels < inner.minExtent {
			pixels = inner.pixels - inner.minExtent + outer.minExtent
		} else {
			pixels = inner.pixels - inner.minExtent + outer.maxExtent
		}
		switch {
		case velocity > 0 && inner.pixels > inner.minExtent:
			// Moving forward with inner travel left to unwind: the outer
			// position may still take up its remaining slack.
			extra = outer.maxExtent - outer.pixels
			minRange = pixels
			maxRange = pixels + extra
			correction = outer.pixels - pixels
		case velocity < 0 && inner.pixels < inner.minExtent:
			extra = outer.pixels - outer.minExtent
			minRange = pixels - extra
			maxRange = pixels
			correction = outer.pixels - pixels
		default:
			if velocity > 0 {
				extra = outer.minExtent - outer.pixels
			} else {
				extra = outer.pixels - (outer.maxExtent - outer.minExtent)
			}
			minRange = outer.minExtent
			maxRange = outer.maxExtent + extra
		}
	}
	return SituationReport{
		Metrics: Metrics{
			MinExtent:         outer.minExtent,
			MaxExtent:         outer.maxExtent + inner.maxExtent - inner.minExtent + extra,
			Pixels:            pixels,
			ViewportDimension: outer.viewportDimension,
			Axis:              outer.axis,
		},
		MinRange:         minRange,
		MaxRange:         maxRange,
		CorrectionOffset: correction,
	}
}

func (c *Coordinator) createOuterBallisticActivity(velocity float64) *Activity {
	inner := c.representativeInner(velocity)
	if inner == nil {
		// No inner motion to coordinate with; settle independently.
		sim := c.outer.physics.CreateBallisticSimulation(c.outer.Metrics(), velocity)
		if sim == nil {
			return NewIdleActivity(c.outer)
		}
		return NewBallisticActivity(c.outer, sim)
	}
	report := c.computeSituationReport(inner, velocity)
	if report.MinRange == report.MaxRange {
		// Degenerate window: the outer position has nowhere to go.
		errors.Report(errors.NumericError("scroll.Coordinator.GoBallistic",
			"degenerate coordination window at %g for velocity %g", report.MinRange, velocity))
		return NewIdleActivity(c.outer)
	}
	sim := c.outer.physics.CreateBallisticSimulation(report.Metrics, velocity)
	if sim == nil {
		return NewIdleActivity(c.outer)
	}
	activity := NewBallisticActivity(c.outer, sim)
	activity.moveTo = c.outerMover(report, velocity)
	return activity
}

// outerMover projects combined-space values onto the outer position. The
// outer position only moves while the simulation is inside its window;
// before the window it waits, past the window it stops at the edge.
func (c *Coordinator) outerMover(report SituationReport, velocity float64) func(float64) bool {
	return func(value float64) bool {
		done := false
		switch {
		case velocity > 0:
			if value < report.MinRange {
				return true
			}
			if value > report.MaxRange {
				value = report.MaxRange
				done = true
			}
		case velocity < 0:
			if value > report.MaxRange {
				return true
			}
			if value < report.MinRange {
				value = report.MinRange
				done = true
			}
		default:
			value = clamp(value, report.MinRange, report.MaxRange)
			done = true
		}
		moved := c.outer.SetPixels(value+report.CorrectionOffset) == 0
		return !done && moved
	}
}

func (c *Coordinator) createInnerBallisticActivity(p *Position, velocity float64) *Activity {
	m := p.Metrics()
	if velocity != 0 {
		m = c.computeSituationReport(p, velocity).Metrics
	}
	sim := p.physics.CreateBallisticSimulation(m, velocity)
	if sim == nil {
		return NewIdleActivity(p)
	}
	activity := NewBallisticActivity(p, sim)
	activity.moveTo = func(value float64) bool {
		return p.SetPixels(c.nestOffset(value, p)) == 0
	}
	return activity
}

// unnestOffset maps a position's local offset into the group's combined
// coordinate space.
func (c *Coordinator) unnestOffset(value float64, source *Position) float64 {
	if source == c.outer {
		return clamp(value, c.outer.minExtent, c.outer.maxExtent)
	}
	if value < source.minExtent {
		return value - source.minExtent + c.outer.minExtent
	}
	return value - source.minExtent + c.outer.maxExtent
}

// nestOffset maps a combined-space offset into target's local
// coordinates. Combined values below the outer minimum become inner
// underscroll, values past the outer maximum become inner travel, and
// values inside the outer range pin the inner position at its minimum.
func (c *Coordinator) nestOffset(value float64, target *Position) float64 {
	if target == c.outer {
		return clamp(value, c.outer.minExtent, c.outer.maxExtent)
	}
	if value < c.outer.minExtent {
		return value - c.outer.minExtent + target.minExtent
	}
	if value > c.outer.maxExtent {
		return value - c.outer.maxExtent + target.minExtent
	}
	return target.minExtent
}

// ApplyUserOffset distributes a drag delta across the group. Forward
// deltas (exposing earlier content) go to the inner positions first with
// the leftover overscroll offered to the outer position; reverse deltas
// drain the outer position before the inner ones move.
func (c *Coordinator) ApplyUserOffset(delta float64) {
	if c.outer == nil || delta == 0 {
		return
	}
	c.updateUserScrollDirection(directionFor(delta))
	if len(c.inner) == 0 {
		c.outer.applyFullDragUpdate(delta)
		return
	}
	if delta < 0 {
		// Reverse: the outer position consumes what it can, the rest goes
		// to every inner position.
		//
		// TODO: prioritize inner positions that are already overscrolled
		// at their leading edge so they recover before the others move.
		innerDelta := c.outer.applyClampedDragUpdate(delta)
		if innerDelta != 0 {
			for _, p := range c.inner {
				p.applyFullDragUpdate(innerDelta)
			}
		}
		return
	}
	// Forward: inner positions consume first. Only the overscroll every
	// inner position agrees on is offered to the outer position, so one
	// long inner list cannot stall the others behind the header.
	overscrolls := make([]float64, len(c.inner))
	common := math.Inf(1)
	for i, p := range c.inner {
		overscrolls[i] = p.applyClampedDragUpdate(delta)
		common = math.Min(common, overscrolls[i])
	}
	consumedByOuter := 0.0
	if common > 0 {
		consumedByOuter = common - c.outer.applyClampedDragUpdate(common)
	}
	for i, p := range c.inner {
		remaining := overscrolls[i] - consumedByOuter
		if remaining > 0 {
			p.applyFullDragUpdate(remaining)
		}
	}
}

// SetPixels is a contract violation on a coordinator: pixels belong to
// the individual positions.
func (c *Coordinator) SetPixels(value float64) float64 {
	errors.Report(errors.ContractError("scroll.Coordinator.SetPixels",
		"pixels set directly on a coordinator (value %g)", value))
	return 0
}

// JumpTo moves the group to a combined-space offset immediately, then
// lets physics settle anything out of range.
func (c *Coordinator) JumpTo(to float64) {
	if c.outer == nil {
		return
	}
	c.GoIdle()
	c.outer.localJumpTo(c.nestOffset(to, c.outer))
	for _, p := range c.inner {
		p.localJumpTo(c.nestOffset(to, p))
	}
	c.GoBallistic(0)
}

// AnimateTo animates the group to a combined-space offset. The returned
// channel closes when the outer position's animation completes or is
// interrupted.
func (c *Coordinator) AnimateTo(to float64, duration time.Duration, curve func(float64) float64) <-chan struct{} {
	if c.outer == nil {
		return closedChan()
	}
	outerActivity := NewDrivenActivity(
		c.outer, c.outer.pixels, c.nestOffset(to, c.outer), duration, curve)
	c.beginActivities(outerActivity, func(p *Position) *Activity {
		return NewDrivenActivity(p, p.pixels, c.nestOffset(to, p), duration, curve)
	})
	return outerActivity.Done()
}

// Drag starts a drag gesture shared by the whole group. Momentum is
// carried from the outer position's current motion.
func (c *Coordinator) Drag(details gestures.DragStartDetails, onCanceled func()) *DragController {
	if c.outer == nil {
		return nil
	}
	drag := &DragController{
		delegate:         c,
		onCanceled:       onCanceled,
		carriedVelocity:  c.outer.physics.CarriedMomentum(c.outer.activityVelocity()),
		minFlingVelocity: c.outer.physics.MinFlingVelocity(),
	}
	c.beginActivities(NewDragActivity(c.outer, drag), func(p *Position) *Activity {
		return NewDragActivity(p, drag)
	})
	c.currentDrag = drag
	return drag
}

// Hold pins the whole group while a pointer is down but not yet dragging.
func (c *Coordinator) Hold(onCanceled func()) *HoldHandle {
	if c.outer == nil {
		return nil
	}
	handle := &HoldHandle{delegate: c}
	c.beginActivities(NewHoldActivity(c.outer, func() {
		handle.dispose()
		if onCanceled != nil {
			onCanceled()
		}
	}), func(p *Position) *Activity {
		return NewHoldActivity(p, nil)
	})
	return handle
}

// Dispose releases the coordinator's shared drag. The positions remain
// owned by their scrollables.
func (c *Coordinator) Dispose() {
	if c.currentDrag != nil {
		c.currentDrag.dispose()
		c.currentDrag = nil
	}
}
