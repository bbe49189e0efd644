package scroll

import "math"

// Axis is the direction content moves when the offset grows.
type Axis int

const (
	// AxisDown scrolls vertically; larger offsets reveal later content
	// below the viewport. The zero value.
	AxisDown Axis = iota
	// AxisUp scrolls vertically with the content reversed.
	AxisUp
	// AxisRight scrolls horizontally; larger offsets reveal later content
	// to the right.
	AxisRight
	// AxisLeft scrolls horizontally with the content reversed.
	AxisLeft
)

func (a Axis) String() string {
	switch a {
	case AxisDown:
		return "down"
	case AxisUp:
		return "up"
	case AxisRight:
		return "right"
	case AxisLeft:
		return "left"
	default:
		return "axis(?)"
	}
}

// Metrics is an immutable snapshot of a scroll position's coordinate
// space. Pixels may lie outside [MinExtent, MaxExtent] while overscrolled;
// everything else holds MinExtent <= MaxExtent.
type Metrics struct {
	// MinExtent is the smallest in-range offset.
	MinExtent float64
	// MaxExtent is the largest in-range offset.
	MaxExtent float64
	// Pixels is the current offset.
	Pixels float64
	// ViewportDimension is the viewport's extent along Axis.
	ViewportDimension float64
	// Axis is the scroll direction.
	Axis Axis
}

// OutOfRange reports whether Pixels lies outside [MinExtent, MaxExtent].
func (m Metrics) OutOfRange() bool {
	return m.Pixels < m.MinExtent || m.Pixels > m.MaxExtent
}

// AtEdge reports whether Pixels sits exactly on a boundary.
func (m Metrics) AtEdge() bool {
	return m.Pixels == m.MinExtent || m.Pixels == m.MaxExtent
}

// ExtentBefore is the quantity of content conceptually above the viewport.
func (m Metrics) ExtentBefore() float64 {
	return math.Max(m.Pixels-m.MinExtent, 0)
}

// ExtentAfter is the quantity of content conceptually below the viewport.
func (m Metrics) ExtentAfter() float64 {
	return math.Max(m.MaxExtent-m.Pixels, 0)
}

// ExtentInside is the quantity of content visible in the viewport. While
// overscrolled, the out-of-range excess eats into it.
func (m Metrics) ExtentInside() float64 {
	return m.ViewportDimension -
		clamp(m.MinExtent-m.Pixels, 0, m.ViewportDimension) -
		clamp(m.Pixels-m.MaxExtent, 0, m.ViewportDimension)
}

// Direction describes which way the user is moving the content.
type Direction int

const (
	// DirectionIdle means no user scroll is in progress.
	DirectionIdle Direction = iota
	// DirectionForward means the user is exposing earlier content
	// (offset shrinking).
	DirectionForward
	// DirectionReverse means the user is exposing later content
	// (offset growing).
	DirectionReverse
)

func (d Direction) String() string {
	switch d {
	case DirectionIdle:
		return "idle"
	case DirectionForward:
		return "forward"
	case DirectionReverse:
		return "reverse"
	default:
		return "direction(?)"
	}
}

// directionFor maps a user drag delta to a Direction. Positive deltas move
// the finger toward later offsets, which exposes earlier content.
func directionFor(delta float64) Direction {
	switch {
	case delta > 0:
		return DirectionForward
	case delta < 0:
		return DirectionReverse
	default:
		return DirectionIdle
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
