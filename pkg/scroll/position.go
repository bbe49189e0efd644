package scroll

import (
	"math"
	"time"

	"github.com/go-drift/kinetic/pkg/errors"
	"github.com/go-drift/kinetic/pkg/gestures"
)

// PositionConfig configures a new Position.
type PositionConfig struct {
	// Physics decides boundary behavior and fling simulations. Required.
	Physics Physics
	// Axis is the scroll direction. Defaults to AxisDown.
	Axis Axis
	// InitialPixels is the offset applied when content dimensions first
	// become known.
	InitialPixels float64
	// Label names the position in error reports.
	Label string
}

// Position owns one scrollable's offset. It runs the activity state
// machine, applies physics at the boundaries, and emits notifications as
// pixels move. All methods must be called from the frame goroutine; the
// type is not safe for concurrent use.
type Position struct {
	physics Physics
	axis    Axis
	label   string

	pixels        float64
	havePixels    bool
	initialPixels float64

	minExtent, maxExtent float64
	viewportDimension    float64
	haveDimensions       bool

	activity    *Activity
	currentDrag *DragController

	userScrollDirection Direction

	listeners             map[int]func()
	notificationListeners map[int]func(Notification)
	nextListenerID        int

	disposed bool
}

// NewPosition creates a position from config. The position reports no
// metrics until ApplyViewportDimension and ApplyContentDimensions have
// been called.
func NewPosition(config PositionConfig) *Position {
	p := &Position{
		physics:               config.Physics,
		axis:                  config.Axis,
		label:                 config.Label,
		initialPixels:         config.InitialPixels,
		listeners:             map[int]func(){},
		notificationListeners: map[int]func(Notification){},
	}
	if p.physics == nil {
		errors.Report(errors.ContractError("scroll.NewPosition",
			"position %q created without physics", p.label))
		p.physics = NewClampingPhysics(nil)
	}
	p.activity = NewIdleActivity(p)
	return p
}

// Pixels returns the current offset. Zero until dimensions are known.
func (p *Position) Pixels() float64 { return p.pixels }

// HavePixels reports whether the offset has been established.
func (p *Position) HavePixels() bool { return p.havePixels }

// Physics returns the physics driving this position.
func (p *Position) Physics() Physics { return p.physics }

// SetPhysics replaces the physics. Takes effect on the next activity; an
// in-flight simulation keeps the parameters it started with.
func (p *Position) SetPhysics(physics Physics) {
	if physics == nil {
		errors.Report(errors.ContractError("scroll.Position.SetPhysics",
			"position %q given nil physics", p.label))
		return
	}
	p.physics = physics
}

// Metrics returns an immutable snapshot of the position's coordinate
// space.
func (p *Position) Metrics() Metrics {
	return Metrics{
		MinExtent:         p.minExtent,
		MaxExtent:         p.maxExtent,
		Pixels:            p.pixels,
		ViewportDimension: p.viewportDimension,
		Axis:              p.axis,
	}
}

// Activity returns the activity currently driving the position.
func (p *Position) Activity() *Activity { return p.activity }

// UserScrollDirection reports which way the user is currently moving the
// content, or DirectionIdle outside user gestures.
func (p *Position) UserScrollDirection() Direction { return p.userScrollDirection }

// IsScrolling reports whether the current activity moves pixels.
func (p *Position) IsScrolling() bool {
	return p.activity != nil && p.activity.IsScrolling()
}

// AddListener registers a callback invoked after every pixel change and
// returns a function that removes it.
func (p *Position) AddListener(listener func()) func() {
	id := p.nextListenerID
	p.nextListenerID++
	p.listeners[id] = listener
	return func() { delete(p.listeners, id) }
}

// AddNotificationListener registers a callback for scroll notifications
// and returns a function that removes it.
func (p *Position) AddNotificationListener(listener func(Notification)) func() {
	id := p.nextListenerID
	p.nextListenerID++
	p.notificationListeners[id] = listener
	return func() { delete(p.notificationListeners, id) }
}

func (p *Position) notifyListeners() {
	// Snapshot so a listener can unsubscribe during the callback.
	snapshot := make([]func(), 0, len(p.listeners))
	for _, l := range p.listeners {
		snapshot = append(snapshot, l)
	}
	for _, l := range snapshot {
		l()
	}
}

func (p *Position) dispatch(n Notification) {
	snapshot := make([]func(Notification), 0, len(p.notificationListeners))
	for _, l := range p.notificationListeners {
		snapshot = append(snapshot, l)
	}
	for _, l := range snapshot {
		l(n)
	}
}

// BeginActivity replaces the current activity. The old activity is
// disposed first so its ticker cannot fire into the new state. Start and
// End notifications are emitted on the scrolling transitions.
func (p *Position) BeginActivity(activity *Activity) {
	if activity == nil {
		return
	}
	wasScrolling := p.activity != nil && p.activity.IsScrolling()
	if p.activity != nil {
		p.activity.Dispose()
	}
	// Only drags this position created are its to dispose; a coordinator
	// sharing one drag across positions owns that one.
	if p.currentDrag != nil && activity.drag != p.currentDrag {
		p.currentDrag.dispose()
		p.currentDrag = nil
	}
	p.activity = activity
	isScrolling := activity.IsScrolling()
	if !wasScrolling && isScrolling {
		p.dispatch(StartNotification{Metrics: p.Metrics()})
	} else if wasScrolling && !isScrolling {
		p.dispatch(EndNotification{Metrics: p.Metrics()})
	}
	if !isScrolling {
		p.updateUserScrollDirection(DirectionIdle)
	}
	activity.start()
}

func (p *Position) updateUserScrollDirection(d Direction) {
	if p.userScrollDirection == d {
		return
	}
	p.userScrollDirection = d
	p.dispatch(DirectionNotification{Metrics: p.Metrics(), Direction: d})
}

// ApplyUserOffset applies a user drag delta through physics. Positive
// deltas move the finger toward larger offsets, shrinking pixels.
func (p *Position) ApplyUserOffset(delta float64) {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.ApplyUserOffset",
			"position %q is disposed", p.label))
		return
	}
	p.updateUserScrollDirection(directionFor(delta))
	p.SetPixels(p.pixels - p.physics.ApplyPhysicsToUserOffset(p.Metrics(), delta))
}

// SetPixels proposes a new offset. Physics may refuse part of the change;
// the refused portion is returned as overscroll and reported through an
// OverscrollNotification. Only the current activity may call SetPixels
// while scrolling; violations are reported and then applied anyway.
func (p *Position) SetPixels(value float64) float64 {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.SetPixels",
			"position %q is disposed", p.label))
		return 0
	}
	if p.activity == nil || !p.activity.IsScrolling() {
		// Report-and-apply: the violation surfaces during development but
		// never wedges the host's frame loop.
		errors.Report(errors.ContractError("scroll.Position.SetPixels",
			"position %q: pixels set outside a scrolling activity", p.label))
	}
	if value == p.pixels {
		return 0
	}
	overscroll := p.physics.ApplyBoundaryConditions(p.Metrics(), value)
	if math.IsNaN(overscroll) || math.IsInf(overscroll, 0) {
		errors.Report(errors.NumericError("scroll.Position.SetPixels",
			"position %q: boundary condition produced %g for value %g", p.label, overscroll, value))
		overscroll = 0
	}
	old := p.pixels
	p.pixels = value - overscroll
	p.havePixels = true
	if p.pixels != old {
		p.notifyListeners()
		p.dispatch(UpdateNotification{Metrics: p.Metrics(), Delta: p.pixels - old})
	}
	if overscroll != 0 {
		p.dispatch(OverscrollNotification{
			Metrics:    p.Metrics(),
			Overscroll: overscroll,
			Velocity:   p.activityVelocity(),
		})
	}
	return overscroll
}

func (p *Position) activityVelocity() float64 {
	if p.activity == nil {
		return 0
	}
	return p.activity.Velocity()
}

// ForcePixels overwrites the offset without consulting physics and
// without emitting an update. Callers are responsible for surrounding
// notifications; JumpTo is the usual entry point.
func (p *Position) ForcePixels(value float64) {
	p.pixels = value
	p.havePixels = true
	p.notifyListeners()
}

// CorrectBy shifts the offset without physics or notifications. Used when
// the content's coordinate space itself moved, so the visual position is
// unchanged.
func (p *Position) CorrectBy(correction float64) {
	p.pixels += correction
	p.havePixels = true
}

// forceTo applies an already physics-checked value and emits the update.
func (p *Position) forceTo(value float64) {
	old := p.pixels
	if value == old {
		return
	}
	p.pixels = value
	p.havePixels = true
	p.notifyListeners()
	p.dispatch(UpdateNotification{Metrics: p.Metrics(), Delta: value - old})
}

// applyClampedDragUpdate applies as much of delta as stays strictly in
// range and returns the unconsumed remainder. Out-of-range positions may
// move back toward range but not further out.
func (p *Position) applyClampedDragUpdate(delta float64) float64 {
	// A position overscrolled at the start may travel back to the edge it
	// exceeded, but no further out. Positive deltas shrink pixels, so the
	// lower bound is the active one and vice versa.
	min := math.Min(p.minExtent, p.pixels)
	if delta < 0 {
		min = math.Inf(-1)
	}
	max := math.Max(p.maxExtent, p.pixels)
	if delta > 0 {
		max = math.Inf(1)
	}
	oldPixels := p.pixels
	newPixels := clamp(p.pixels-delta, min, max)
	clampedDelta := newPixels - p.pixels
	if clampedDelta == 0 {
		return delta
	}
	overscroll := p.physics.ApplyBoundaryConditions(p.Metrics(), newPixels)
	actualNewPixels := newPixels - overscroll
	offset := actualNewPixels - oldPixels
	if offset != 0 {
		p.forceTo(actualNewPixels)
	}
	return delta + offset
}

// applyFullDragUpdate applies delta with physics resistance and returns
// any overscroll beyond the boundaries.
func (p *Position) applyFullDragUpdate(delta float64) float64 {
	oldPixels := p.pixels
	newPixels := p.pixels - p.physics.ApplyPhysicsToUserOffset(p.Metrics(), delta)
	if newPixels == oldPixels {
		return 0
	}
	overscroll := p.physics.ApplyBoundaryConditions(p.Metrics(), newPixels)
	actualNewPixels := newPixels - overscroll
	if actualNewPixels != oldPixels {
		p.forceTo(actualNewPixels)
	}
	if overscroll != 0 {
		p.dispatch(OverscrollNotification{
			Metrics:    p.Metrics(),
			Overscroll: overscroll,
			Velocity:   p.activityVelocity(),
		})
		return overscroll
	}
	return 0
}

// GoIdle stops all motion immediately.
func (p *Position) GoIdle() {
	p.BeginActivity(NewIdleActivity(p))
}

// GoBallistic hands the position to physics with a starting velocity.
// Non-finite velocities are treated as zero and velocities beyond the
// physics cap are clamped. When physics has nothing to settle, the
// position goes idle.
func (p *Position) GoBallistic(velocity float64) {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.GoBallistic",
			"position %q is disposed", p.label))
		return
	}
	velocity = p.normalizeVelocity(velocity, "scroll.Position.GoBallistic")
	sim := p.physics.CreateBallisticSimulation(p.Metrics(), velocity)
	if sim == nil {
		p.GoIdle()
		return
	}
	p.BeginActivity(NewBallisticActivity(p, sim))
}

func (p *Position) normalizeVelocity(velocity float64, op string) float64 {
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		errors.Report(errors.NumericError(op,
			"position %q: non-finite velocity %g", p.label, velocity))
		return 0
	}
	max := p.physics.MaxFlingVelocity()
	if math.Abs(velocity) > max {
		velocity = math.Copysign(max, velocity)
	}
	return velocity
}

// JumpTo moves the offset to value immediately, interrupting any activity,
// then lets physics settle if value is out of range.
func (p *Position) JumpTo(value float64) {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.JumpTo",
			"position %q is disposed", p.label))
		return
	}
	p.GoIdle()
	p.localJumpTo(value)
	p.GoBallistic(0)
}

// localJumpTo moves the offset immediately without touching the activity,
// bracketing the change in start and end notifications.
func (p *Position) localJumpTo(value float64) {
	if p.pixels == value {
		return
	}
	p.dispatch(StartNotification{Metrics: p.Metrics()})
	old := p.pixels
	p.ForcePixels(value)
	p.dispatch(UpdateNotification{Metrics: p.Metrics(), Delta: value - old})
	p.dispatch(EndNotification{Metrics: p.Metrics()})
}

// AnimateTo animates the offset to target over duration using curve (nil
// eases out). The returned channel closes when the animation completes or
// is interrupted. Degenerate requests jump instead.
func (p *Position) AnimateTo(target float64, duration time.Duration, curve func(float64) float64) <-chan struct{} {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.AnimateTo",
			"position %q is disposed", p.label))
		return closedChan()
	}
	tol := p.physics.Tolerance()
	if duration <= 0 || math.Abs(target-p.pixels) < tol.Distance {
		p.JumpTo(target)
		return closedChan()
	}
	activity := NewDrivenActivity(p, p.pixels, target, duration, curve)
	p.BeginActivity(activity)
	return activity.Done()
}

func closedChan() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// Drag starts a drag gesture, inheriting momentum from any motion the
// user just caught. onCanceled fires when the drag is displaced by
// another activity.
func (p *Position) Drag(details gestures.DragStartDetails, onCanceled func()) *DragController {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.Drag",
			"position %q is disposed", p.label))
		return nil
	}
	drag := &DragController{
		delegate:         p,
		onCanceled:       onCanceled,
		carriedVelocity:  p.physics.CarriedMomentum(p.activityVelocity()),
		minFlingVelocity: p.physics.MinFlingVelocity(),
	}
	p.BeginActivity(NewDragActivity(p, drag))
	p.currentDrag = drag
	return drag
}

// Hold pins the position while a pointer is down but not yet dragging.
// onCanceled fires when the hold is displaced without becoming a drag.
func (p *Position) Hold(onCanceled func()) *HoldHandle {
	if p.disposed {
		errors.Report(errors.DetachedError("scroll.Position.Hold",
			"position %q is disposed", p.label))
		return nil
	}
	handle := &HoldHandle{delegate: p}
	p.BeginActivity(NewHoldActivity(p, func() {
		handle.dispose()
		if onCanceled != nil {
			onCanceled()
		}
	}))
	return handle
}

// ApplyViewportDimension records the viewport extent along the axis.
func (p *Position) ApplyViewportDimension(dimension float64) {
	if p.viewportDimension == dimension {
		return
	}
	p.viewportDimension = dimension
	if p.haveDimensions {
		p.activity.ApplyNewDimensions()
	}
}

// ApplyContentDimensions records the content range. An inverted range is
// reported and normalized to empty. The first call establishes the
// initial offset; later calls let the running activity react to the new
// bounds.
func (p *Position) ApplyContentDimensions(minExtent, maxExtent float64) {
	if maxExtent < minExtent {
		errors.Report(errors.ContractError("scroll.Position.ApplyContentDimensions",
			"position %q: inverted content range [%g, %g]", p.label, minExtent, maxExtent))
		maxExtent = minExtent
	}
	changed := p.minExtent != minExtent || p.maxExtent != maxExtent
	p.minExtent = minExtent
	p.maxExtent = maxExtent
	if !p.havePixels {
		p.pixels = p.initialPixels
		p.havePixels = true
		p.notifyListeners()
	}
	if !p.haveDimensions {
		p.haveDimensions = true
		return
	}
	if changed {
		p.activity.ApplyNewDimensions()
	}
}

// AbsorbFrom adopts another position's offset and in-flight activity, for
// handing a scrollable between owners without a visual glitch. The other
// position is left idle and should be disposed by its owner.
func (p *Position) AbsorbFrom(other *Position) {
	if other == nil {
		return
	}
	p.pixels = other.pixels
	p.havePixels = other.havePixels
	if other.activity != nil && other.activity.Kind() != ActivityIdle {
		activity := other.activity
		other.activity = NewIdleActivity(other)
		activity.delegate = p
		p.activity.Dispose()
		p.activity = activity
	}
}

// Dispose releases the position. Further calls are reported as detached
// and ignored.
func (p *Position) Dispose() {
	if p.disposed {
		return
	}
	if p.activity != nil {
		p.activity.Dispose()
		p.activity = nil
	}
	if p.currentDrag != nil {
		p.currentDrag.dispose()
		p.currentDrag = nil
	}
	p.listeners = nil
	p.notificationListeners = nil
	p.disposed = true
}
