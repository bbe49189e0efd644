// Package gestures defines the drag event vocabulary the scroll engine
// consumes. Hit-testing and pointer routing belong to the host; this
// package only describes what a gesture layer reports about a drag.
package gestures

import "time"

// DragStartDetails describes the start of a drag.
type DragStartDetails struct {
	// Position is the pointer location along the scroll axis, in logical
	// pixels.
	Position float64
	// Timestamp is when the pointer went down.
	Timestamp time.Time
}

// DragUpdateDetails describes one movement of an active drag.
type DragUpdateDetails struct {
	// PrimaryDelta is the movement along the scroll axis since the last
	// update, in logical pixels. Positive values move the content toward
	// its start (finger travels toward larger offsets).
	PrimaryDelta float64
	// Position is the pointer location along the scroll axis.
	Position float64
	// Timestamp is when the movement was observed.
	Timestamp time.Time
}

// DragEndDetails describes the release of a drag.
type DragEndDetails struct {
	// PrimaryVelocity is the release velocity along the scroll axis in
	// logical pixels per second. Nonzero values seed a fling.
	PrimaryVelocity float64
}
