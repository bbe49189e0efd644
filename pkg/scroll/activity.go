package scroll

import (
	"time"

	"github.com/go-drift/kinetic/pkg/animation"
)

// Delegate is the surface an activity drives its owner through. Position
// implements it for standalone scrolling and Coordinator implements it for
// a nested group, so the same activities work in both contexts.
type Delegate interface {
	// ApplyUserOffset applies a user drag delta with physics.
	ApplyUserOffset(delta float64)
	// SetPixels proposes a new pixel value and returns the overscroll
	// that could not be applied.
	SetPixels(value float64) float64
	// GoIdle stops all motion.
	GoIdle()
	// GoBallistic hands the position to physics with a starting velocity.
	GoBallistic(velocity float64)
}

// ActivityKind tags the variants of Activity.
type ActivityKind int

const (
	// ActivityIdle is the rest state.
	ActivityIdle ActivityKind = iota
	// ActivityHold pins the position while a pointer is down but not yet
	// dragging, blocking other activity changes until released.
	ActivityHold
	// ActivityDrag tracks an in-progress user drag.
	ActivityDrag
	// ActivityBallistic runs a physics simulation until it settles.
	ActivityBallistic
	// ActivityDriven animates to an explicit target over a duration.
	ActivityDriven
)

func (k ActivityKind) String() string {
	switch k {
	case ActivityIdle:
		return "idle"
	case ActivityHold:
		return "hold"
	case ActivityDrag:
		return "drag"
	case ActivityBallistic:
		return "ballistic"
	case ActivityDriven:
		return "driven"
	default:
		return "activity(?)"
	}
}

// Activity is the mode currently driving a position's pixels. Exactly one
// position owns an activity at a time; beginning a new activity disposes
// the previous one wholesale; there is no partial cancellation.
//
// Activity is a tagged variant rather than an interface hierarchy: the
// kind selects which fields are live and every dispatch is an explicit
// switch. Ticking computes a tickResult value first and only then applies
// it through the delegate, so an in-flight tick never observes a
// half-mutated owner.
type Activity struct {
	kind     ActivityKind
	delegate Delegate

	// Ballistic state.
	sim animation.Simulation
	// moveTo overrides how a sampled value reaches the position; nested
	// coordination installs projections here. It returns false when the
	// motion should stop. Nil means a direct SetPixels.
	moveTo       func(value float64) bool
	lastVelocity float64

	// Driven state.
	from, target float64
	duration     time.Duration
	curve        func(float64) float64
	completed    chan struct{}
	finished     bool

	// Drag state.
	drag *DragController

	// Hold state.
	onHoldCanceled func()

	ticker   *animation.Ticker
	disposed bool
}

// NewIdleActivity returns the rest activity.
func NewIdleActivity(d Delegate) *Activity {
	return &Activity{kind: ActivityIdle, delegate: d}
}

// NewHoldActivity returns an activity that pins the position while a
// pointer is down. onCanceled fires when the hold is disposed without
// turning into a drag.
func NewHoldActivity(d Delegate, onCanceled func()) *Activity {
	return &Activity{kind: ActivityHold, delegate: d, onHoldCanceled: onCanceled}
}

// NewDragActivity returns an activity bound to an in-progress drag.
func NewDragActivity(d Delegate, drag *DragController) *Activity {
	return &Activity{kind: ActivityDrag, delegate: d, drag: drag}
}

// NewBallisticActivity returns an activity that follows sim until it
// settles or is interrupted.
func NewBallisticActivity(d Delegate, sim animation.Simulation) *Activity {
	return &Activity{
		kind:         ActivityBallistic,
		delegate:     d,
		sim:          sim,
		lastVelocity: sim.DX(0),
	}
}

// NewDrivenActivity returns an activity that animates from the current
// value to target over duration. A nil curve eases out.
func NewDrivenActivity(d Delegate, from, target float64, duration time.Duration, curve func(float64) float64) *Activity {
	if curve == nil {
		curve = animation.EaseOut
	}
	return &Activity{
		kind:      ActivityDriven,
		delegate:  d,
		from:      from,
		target:    target,
		duration:  duration,
		curve:     curve,
		completed: make(chan struct{}),
	}
}

// Kind returns the activity's variant tag.
func (a *Activity) Kind() ActivityKind { return a.kind }

// IsScrolling reports whether this activity moves pixels and therefore
// drives scroll notifications.
func (a *Activity) IsScrolling() bool {
	switch a.kind {
	case ActivityDrag, ActivityBallistic, ActivityDriven:
		return true
	default:
		return false
	}
}

// Velocity returns the activity's current velocity in pixels per second.
// Drags report zero; their velocity is only known at release.
func (a *Activity) Velocity() float64 {
	switch a.kind {
	case ActivityBallistic, ActivityDriven:
		return a.lastVelocity
	default:
		return 0
	}
}

// Done returns a channel closed when a driven activity completes or is
// interrupted. For other kinds it returns an already-closed channel.
func (a *Activity) Done() <-chan struct{} {
	if a.kind == ActivityDriven {
		return a.completed
	}
	done := make(chan struct{})
	close(done)
	return done
}

// start activates the activity's frame ticker, if it has one.
func (a *Activity) start() {
	switch a.kind {
	case ActivityBallistic:
		a.ticker = animation.NewTicker(a.ballisticTick)
		a.ticker.Start()
	case ActivityDriven:
		a.ticker = animation.NewTicker(a.drivenTick)
		a.ticker.Start()
	}
}

// Dispose tears the activity down. Disposing is idempotent; a disposed
// activity ignores further ticks.
func (a *Activity) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	switch a.kind {
	case ActivityHold:
		if a.onHoldCanceled != nil {
			a.onHoldCanceled()
		}
	case ActivityDriven:
		a.finishDriven()
	}
}

// ApplyNewDimensions reacts to a viewport or content resize. Ballistic
// motion restarts against the new bounds at its current velocity; other
// kinds carry on.
func (a *Activity) ApplyNewDimensions() {
	if a.disposed {
		return
	}
	if a.kind == ActivityBallistic {
		a.delegate.GoBallistic(a.lastVelocity)
	}
}

// tickResult is the value an activity computed for one frame, applied by
// the owner after sampling.
type tickResult struct {
	value    float64
	velocity float64
	done     bool
}

func (a *Activity) sampleBallistic(elapsed time.Duration) tickResult {
	t := elapsed.Seconds()
	return tickResult{
		value:    a.sim.X(t),
		velocity: a.sim.DX(t),
		done:     a.sim.IsDone(t),
	}
}

func (a *Activity) ballisticTick(elapsed time.Duration) {
	if a.disposed {
		return
	}
	res := a.sampleBallistic(elapsed)
	a.lastVelocity = res.velocity
	if !a.applyMove(res.value) {
		a.delegate.GoIdle()
		return
	}
	if res.done {
		// Let physics decide whether anything remains to settle.
		a.delegate.GoBallistic(0)
	}
}

func (a *Activity) applyMove(value float64) bool {
	if a.moveTo != nil {
		return a.moveTo(value)
	}
	return a.delegate.SetPixels(value) == 0
}

func (a *Activity) sampleDriven(elapsed time.Duration) tickResult {
	if a.duration <= 0 {
		return tickResult{value: a.target, done: true}
	}
	progress := float64(elapsed) / float64(a.duration)
	if progress >= 1 {
		return tickResult{value: a.target, done: true}
	}
	eased := a.curve(progress)
	value := a.from + (a.target-a.from)*eased
	// Finite-difference velocity over a nominal frame, for observers.
	const frame = 1.0 / 60
	next := a.from + (a.target-a.from)*a.curve(clampUnit(progress+frame/a.duration.Seconds()))
	return tickResult{value: value, velocity: (next - value) / frame}
}

func (a *Activity) drivenTick(elapsed time.Duration) {
	if a.disposed {
		return
	}
	res := a.sampleDriven(elapsed)
	a.lastVelocity = res.velocity
	if a.delegate.SetPixels(res.value) != 0 {
		// The target is unreachable; stop instead of grinding on the
		// boundary every frame.
		a.delegate.GoIdle()
		return
	}
	if res.done {
		a.finishDriven()
		a.delegate.GoIdle()
	}
}

func (a *Activity) finishDriven() {
	if a.kind != ActivityDriven || a.finished {
		return
	}
	a.finished = true
	close(a.completed)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
