package scroll_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/kinetic/pkg/gestures"
	"github.com/go-drift/kinetic/pkg/scroll"
)

// newNestedGroup builds the usual collapsing-header shape: an outer range
// of [0, 100] above an inner list of [0, 1000].
func newNestedGroup(t *testing.T) (*scroll.Coordinator, *scroll.Position, *scroll.Position) {
	t.Helper()
	outer := scroll.NewPosition(scroll.PositionConfig{
		Physics: scroll.NewClampingPhysics(nil), Label: "outer",
	})
	outer.ApplyViewportDimension(600)
	outer.ApplyContentDimensions(0, 100)
	inner := scroll.NewPosition(scroll.PositionConfig{
		Physics: scroll.NewClampingPhysics(nil), Label: "inner",
	})
	inner.ApplyViewportDimension(600)
	inner.ApplyContentDimensions(0, 1000)
	c := scroll.NewCoordinator(outer)
	c.AttachInner(inner)
	return c, outer, inner
}

func TestCoordinator_ReverseDragCollapsesHeaderFirst(t *testing.T) {
	newHarness(t)
	c, outer, inner := newNestedGroup(t)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: -50})
	if outer.Pixels() != 50 || inner.Pixels() != 0 {
		t.Errorf("after -50: outer %g inner %g, want 50 and 0", outer.Pixels(), inner.Pixels())
	}

	// The next delta exhausts the header; the rest spills into the list.
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: -100})
	if outer.Pixels() != 100 || inner.Pixels() != 50 {
		t.Errorf("after -100: outer %g inner %g, want 100 and 50", outer.Pixels(), inner.Pixels())
	}
	drag.End(gestures.DragEndDetails{})
}

func TestCoordinator_ForwardDragDrainsListBeforeHeader(t *testing.T) {
	newHarness(t)
	c, outer, inner := newNestedGroup(t)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: -150})
	if outer.Pixels() != 100 || inner.Pixels() != 50 {
		t.Fatalf("setup: outer %g inner %g, want 100 and 50", outer.Pixels(), inner.Pixels())
	}

	// Forward delta: the list unwinds its 50 first, then the header takes
	// its 100, and the final 50 dies as overscroll at the leading edge.
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: 200})
	if outer.Pixels() != 0 || inner.Pixels() != 0 {
		t.Errorf("after +200: outer %g inner %g, want both 0", outer.Pixels(), inner.Pixels())
	}
	drag.End(gestures.DragEndDetails{})
}

func TestCoordinator_OuterOnlyTakesCommonInnerLeftover(t *testing.T) {
	newHarness(t)
	c, outer, short := newNestedGroup(t)
	long := scroll.NewPosition(scroll.PositionConfig{
		Physics: scroll.NewClampingPhysics(nil), Label: "long",
	})
	long.ApplyViewportDimension(600)
	long.ApplyContentDimensions(0, 1000)
	c.AttachInner(long)

	outer.JumpTo(100)
	short.JumpTo(30)
	long.JumpTo(100)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: 80})

	// The long list consumed the whole delta, so no overscroll is common
	// to every inner position and the header must stay collapsed.
	if got := outer.Pixels(); got != 100 {
		t.Errorf("outer = %g, want 100 (no common leftover)", got)
	}
	if got := long.Pixels(); got != 20 {
		t.Errorf("long = %g, want 20", got)
	}
	if got := short.Pixels(); got != 0 {
		t.Errorf("short = %g, want 0", got)
	}
	drag.End(gestures.DragEndDetails{})
}

func TestCoordinator_CommonLeftoverCollapsesIntoHeader(t *testing.T) {
	newHarness(t)
	c, outer, inner := newNestedGroup(t)

	outer.JumpTo(100)
	inner.JumpTo(30)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: 80})

	// The list gives up its 30, the remaining 50 expands the header.
	if got := inner.Pixels(); got != 0 {
		t.Errorf("inner = %g, want 0", got)
	}
	if got := outer.Pixels(); got != 50 {
		t.Errorf("outer = %g, want 50", got)
	}
	drag.End(gestures.DragEndDetails{})
}

func TestCoordinator_FlingCarriesAcrossBoundary(t *testing.T) {
	h := newHarness(t)
	c, outer, inner := newNestedGroup(t)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.Update(gestures.DragUpdateDetails{PrimaryDelta: -10})
	drag.End(gestures.DragEndDetails{PrimaryVelocity: -1200})

	h.PumpUntilSettled(2000)
	if got := outer.Pixels(); got != 100 {
		t.Errorf("outer = %g, want fully collapsed at 100", got)
	}
	if got := inner.Pixels(); got <= 0 || got > 1000 {
		t.Errorf("inner = %g, want carried into (0, 1000]", got)
	}
	if got := c.Offset(); got <= 100 {
		t.Errorf("combined offset = %g, want past the outer range", got)
	}
}

func TestCoordinator_ReverseFlingExpandsHeaderLast(t *testing.T) {
	h := newHarness(t)
	c, outer, inner := newNestedGroup(t)

	// Start deep in the list with the header collapsed.
	c.JumpTo(400)
	if outer.Pixels() != 100 || inner.Pixels() != 300 {
		t.Fatalf("setup: outer %g inner %g, want 100 and 300", outer.Pixels(), inner.Pixels())
	}

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.End(gestures.DragEndDetails{PrimaryVelocity: 1500})

	h.PumpUntilSettled(2000)
	if got := inner.Pixels(); got != 0 {
		t.Errorf("inner = %g, want drained to 0", got)
	}
	if got := outer.Pixels(); got >= 100 {
		t.Errorf("outer = %g, want expanded below 100", got)
	}
}

func TestCoordinator_JumpToSplitsCombinedOffset(t *testing.T) {
	newHarness(t)
	c, outer, inner := newNestedGroup(t)

	c.JumpTo(350)
	if got := outer.Pixels(); got != 100 {
		t.Errorf("outer = %g, want 100", got)
	}
	if got := inner.Pixels(); got != 250 {
		t.Errorf("inner = %g, want 250", got)
	}
	if got := c.Offset(); got != 350 {
		t.Errorf("combined offset = %g, want 350", got)
	}

	c.JumpTo(50)
	if got := outer.Pixels(); got != 50 {
		t.Errorf("outer = %g, want 50", got)
	}
	if got := inner.Pixels(); got != 0 {
		t.Errorf("inner = %g, want 0", got)
	}
}

func TestCoordinator_AnimateToSettlesBothPositions(t *testing.T) {
	h := newHarness(t)
	c, outer, inner := newNestedGroup(t)

	done := c.AnimateTo(350, 200*time.Millisecond, nil)
	h.PumpUntilSettled(500)
	select {
	case <-done:
	default:
		t.Fatal("animation never completed")
	}
	if got := outer.Pixels(); got != 100 {
		t.Errorf("outer = %g, want 100", got)
	}
	if got := inner.Pixels(); got != 250 {
		t.Errorf("inner = %g, want 250", got)
	}
}

func TestCoordinator_DegenerateWindowIdlesOuter(t *testing.T) {
	newHarness(t)
	c, outer, inner := newNestedGroup(t)

	// Header fully collapsed and the list mid-scroll: a forward fling has
	// no outer window at all.
	c.JumpTo(300)
	c.GoBallistic(500)

	if got := outer.Activity().Kind(); got != scroll.ActivityIdle {
		t.Errorf("outer activity = %v, want idle", got)
	}
	if got := inner.Activity().Kind(); got != scroll.ActivityBallistic {
		t.Errorf("inner activity = %v, want ballistic", got)
	}
	if got := outer.Pixels(); got != 100 {
		t.Errorf("outer = %g, want unchanged 100", got)
	}
}

func TestCoordinator_DragDeltaIsConserved(t *testing.T) {
	newHarness(t)
	c, outer, inner := newNestedGroup(t)

	var moved, overscrolled float64
	record := func(n scroll.Notification) {
		switch n := n.(type) {
		case scroll.UpdateNotification:
			moved += n.Delta
		case scroll.OverscrollNotification:
			overscrolled += n.Overscroll
		}
	}
	outer.AddNotificationListener(record)
	inner.AddNotificationListener(record)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	var total float64
	for _, delta := range []float64{-50, -100, -900, 200, 80, 1500, -30} {
		drag.Update(gestures.DragUpdateDetails{PrimaryDelta: delta})
		total += delta
	}
	drag.End(gestures.DragEndDetails{})

	// Every pixel of input either moved a position or was reported as
	// overscroll; nothing is silently lost.
	if got, want := moved+overscrolled, -total; math.Abs(got-want) > 1e-9 {
		t.Errorf("moved %g + overscrolled %g = %g, want %g", moved, overscrolled, got, want)
	}
}

func TestCoordinator_HoldFreezesGroup(t *testing.T) {
	h := newHarness(t)
	c, outer, inner := newNestedGroup(t)

	drag := c.Drag(gestures.DragStartDetails{}, nil)
	drag.End(gestures.DragEndDetails{PrimaryVelocity: -1200})
	h.Pump(32 * time.Millisecond)
	outerMoving, innerMoving := outer.Pixels(), inner.Pixels()

	c.Hold(nil)
	h.Pump(32 * time.Millisecond)
	if outer.Pixels() != outerMoving || inner.Pixels() != innerMoving {
		t.Error("hold did not freeze the group")
	}
}
