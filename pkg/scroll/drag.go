package scroll

import (
	"math"

	"github.com/go-drift/kinetic/pkg/gestures"
)

// DragController feeds pointer movement into a scrolling delegate for the
// lifetime of one drag gesture. The gesture side calls Update for each
// move, then exactly one of End or Cancel. The owning position or
// coordinator disposes the controller when a new activity takes over.
type DragController struct {
	delegate   Delegate
	onCanceled func()

	// carriedVelocity is momentum inherited from a fling the user caught.
	carriedVelocity float64
	// minFlingVelocity is the release speed below which the gesture is
	// treated as a stop rather than a fling.
	minFlingVelocity float64

	disposed bool
}

// Update applies one pointer move to the delegate.
func (d *DragController) Update(details gestures.DragUpdateDetails) {
	if d.disposed {
		return
	}
	d.delegate.ApplyUserOffset(details.PrimaryDelta)
}

// End releases the drag with the gesture's final velocity and hands the
// position to physics. Pointer velocity is in pointer coordinates; scroll
// velocity runs the other way.
func (d *DragController) End(details gestures.DragEndDetails) {
	if d.disposed {
		return
	}
	velocity := -details.PrimaryVelocity
	if math.Abs(velocity) < d.minFlingVelocity {
		velocity = 0
	}
	// A fling in the same direction as inherited momentum accelerates.
	if d.carriedVelocity != 0 && velocity != 0 &&
		math.Signbit(velocity) == math.Signbit(d.carriedVelocity) {
		velocity += d.carriedVelocity
	}
	d.delegate.GoBallistic(velocity)
}

// Cancel abandons the drag without a fling.
func (d *DragController) Cancel() {
	if d.disposed {
		return
	}
	d.delegate.GoBallistic(0)
}

// dispose detaches the controller from its delegate. Called by the owner
// when a new activity replaces the drag.
func (d *DragController) dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	if d.onCanceled != nil {
		d.onCanceled()
	}
}

// HoldHandle represents a pointer resting on the content, keeping it still
// without scrolling. Releasing the pointer cancels the hold.
type HoldHandle struct {
	delegate Delegate
	disposed bool
}

// Cancel releases the hold. The position settles through physics, which is
// a no-op when it is already in range.
func (h *HoldHandle) Cancel() {
	if h.disposed {
		return
	}
	h.delegate.GoBallistic(0)
}

func (h *HoldHandle) dispose() {
	h.disposed = true
}
