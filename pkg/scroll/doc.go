// Package scroll implements the scroll position engine: offsets, physics,
// the activity state machine, and nested coordination.
//
// A [Position] owns one scrollable's offset in logical pixels. Exactly one
// [Activity] drives it at a time (idle, hold, drag, ballistic or driven);
// beginning a new activity disposes the previous one. [Physics] decides
// how drags feel, what happens at the content boundaries and which
// simulation settles the position after a gesture; [ClampingPhysics] and
// [BouncingPhysics] cover the two common platform feels.
//
// A [Coordinator] couples an outer position (a collapsing header, say)
// with inner positions so they scroll as one surface: drags spill across
// the boundary and flings settle through both ranges.
//
// Motion is frame-driven. Ballistic and driven activities register
// tickers with the animation package; the host pumps frames by calling
// animation.StepTickers from its frame loop. Positions emit
// [Notification] values as they move and plain listeners after every
// pixel change.
//
// All types in this package must be used from a single goroutine,
// conventionally the frame goroutine.
package scroll
