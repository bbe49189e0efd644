package scroll

import (
	"math"

	"github.com/go-drift/kinetic/pkg/animation"
	"github.com/go-drift/kinetic/pkg/tuning"
)

// Physics decides how a position responds to user deltas, boundaries and
// flings. Implementations are stateless value types; all state lives in
// the metrics they are handed.
type Physics interface {
	// ApplyPhysicsToUserOffset adjusts a raw user drag delta, typically
	// to add resistance while overscrolled.
	ApplyPhysicsToUserOffset(m Metrics, delta float64) float64

	// ApplyBoundaryConditions returns the portion of a proposed pixel
	// value that exceeds the boundaries, zero when the proposal is
	// acceptable. The position subtracts the result before applying.
	ApplyBoundaryConditions(m Metrics, value float64) float64

	// CreateBallisticSimulation returns the simulation that settles the
	// position after a gesture, or nil when the position is already at
	// rest and in range.
	CreateBallisticSimulation(m Metrics, velocity float64) animation.Simulation

	// MinFlingVelocity is the slowest release that still flings.
	MinFlingVelocity() float64

	// MaxFlingVelocity caps fling start velocity.
	MaxFlingVelocity() float64

	// CarriedMomentum is the velocity carried into a new drag when the
	// user catches and re-flings a moving position.
	CarriedMomentum(existingVelocity float64) float64

	// Tolerance is the settle threshold for simulations.
	Tolerance() animation.Tolerance
}

// ClampingPhysics stops dead at the content edges: drags clamp, flings run
// a friction simulation bounded to the content range, and out-of-range
// positions (after a jump) spring back without crossing the boundary.
type ClampingPhysics struct {
	spec tuning.Spec
}

// NewClampingPhysics creates clamping physics from a tuning spec. A nil
// spec uses the defaults.
func NewClampingPhysics(spec *tuning.Spec) ClampingPhysics {
	if spec == nil {
		return ClampingPhysics{spec: tuning.Default()}
	}
	return ClampingPhysics{spec: spec.Normalize()}
}

// ApplyPhysicsToUserOffset returns the raw delta; clamping happens at the
// boundary instead.
func (p ClampingPhysics) ApplyPhysicsToUserOffset(_ Metrics, delta float64) float64 {
	return delta
}

// ApplyBoundaryConditions returns the excess beyond the content range.
func (p ClampingPhysics) ApplyBoundaryConditions(m Metrics, value float64) float64 {
	switch {
	case value < m.Pixels && m.Pixels <= m.MinExtent:
		// Already underscrolled, pushing further out.
		return value - m.Pixels
	case m.MaxExtent <= m.Pixels && m.Pixels < value:
		// Already overscrolled, pushing further out.
		return value - m.Pixels
	case value < m.MinExtent && m.MinExtent < m.Pixels:
		// Crossing the leading edge.
		return value - m.MinExtent
	case m.Pixels < m.MaxExtent && m.MaxExtent < value:
		// Crossing the trailing edge.
		return value - m.MaxExtent
	default:
		return 0
	}
}

// CreateBallisticSimulation springs back when out of range, runs a bounded
// friction fling when moving, and returns nil at rest.
func (p ClampingPhysics) CreateBallisticSimulation(m Metrics, velocity float64) animation.Simulation {
	tol := p.Tolerance()
	if m.OutOfRange() {
		end := clamp(m.Pixels, m.MinExtent, m.MaxExtent)
		// Drop any velocity component pointing further out of range so
		// the spring only ever pulls back toward the boundary. Residual
		// outward velocity shows up when content shrinks mid-fling.
		if m.Pixels > m.MaxExtent {
			velocity = math.Min(velocity, 0)
		} else {
			velocity = math.Max(velocity, 0)
		}
		return animation.NewSpringSimulation(p.spec.Spring(), m.Pixels, velocity, end, tol)
	}
	if math.Abs(velocity) < tol.Velocity {
		return nil
	}
	if velocity > 0 && m.Pixels >= m.MaxExtent {
		return nil
	}
	if velocity < 0 && m.Pixels <= m.MinExtent {
		return nil
	}
	return animation.NewClampedSimulation(
		animation.NewFrictionSimulation(p.spec.FrictionDrag, m.Pixels, velocity, tol),
		m.MinExtent, m.MaxExtent,
	)
}

// MinFlingVelocity implements Physics.
func (p ClampingPhysics) MinFlingVelocity() float64 { return p.spec.MinFlingVelocity }

// MaxFlingVelocity implements Physics.
func (p ClampingPhysics) MaxFlingVelocity() float64 { return p.spec.MaxFlingVelocity }

// CarriedMomentum returns zero: clamping scrollables do not accumulate
// momentum across catches.
func (p ClampingPhysics) CarriedMomentum(float64) float64 { return 0 }

// Tolerance implements Physics.
func (p ClampingPhysics) Tolerance() animation.Tolerance { return p.spec.Tolerance() }

// BouncingPhysics lets positions travel past the content edges under
// increasing resistance and springs them back once released.
type BouncingPhysics struct {
	spec tuning.Spec
}

// NewBouncingPhysics creates bouncing physics from a tuning spec. A nil
// spec uses the defaults.
func NewBouncingPhysics(spec *tuning.Spec) BouncingPhysics {
	if spec == nil {
		return BouncingPhysics{spec: tuning.Default()}
	}
	return BouncingPhysics{spec: spec.Normalize()}
}

// ApplyPhysicsToUserOffset shrinks deltas that push further out of range.
// Resistance grows with the existing overscroll relative to the viewport.
func (p BouncingPhysics) ApplyPhysicsToUserOffset(m Metrics, delta float64) float64 {
	var overscrollPast float64
	switch {
	case m.Pixels < m.MinExtent && delta > 0:
		overscrollPast = m.MinExtent - m.Pixels
	case m.Pixels > m.MaxExtent && delta < 0:
		overscrollPast = m.Pixels - m.MaxExtent
	default:
		return delta
	}
	viewport := m.ViewportDimension
	if viewport <= 0 {
		viewport = 600
	}
	fraction := overscrollPast / viewport
	resistance := 1.0 / (1.0 + p.spec.OverscrollResistance*fraction)
	if resistance < p.spec.OverscrollResistanceFloor {
		resistance = p.spec.OverscrollResistanceFloor
	}
	return delta * resistance
}

// ApplyBoundaryConditions never reports excess: overscroll is expressed as
// out-of-range pixels instead.
func (p BouncingPhysics) ApplyBoundaryConditions(Metrics, float64) float64 {
	return 0
}

// CreateBallisticSimulation bounces: friction while in range, spring-back
// once an edge is crossed or when starting out of range.
func (p BouncingPhysics) CreateBallisticSimulation(m Metrics, velocity float64) animation.Simulation {
	tol := p.Tolerance()
	if math.Abs(velocity) >= tol.Velocity || m.OutOfRange() {
		return animation.NewBouncingSimulation(
			p.spec.Spring(), m.Pixels, velocity, m.MinExtent, m.MaxExtent, tol,
		)
	}
	return nil
}

// MinFlingVelocity implements Physics.
func (p BouncingPhysics) MinFlingVelocity() float64 { return p.spec.MinFlingVelocity }

// MaxFlingVelocity implements Physics.
func (p BouncingPhysics) MaxFlingVelocity() float64 { return p.spec.MaxFlingVelocity }

// CarriedMomentum keeps a share of the existing velocity when the user
// catches a moving list and flings again, so repeated flings accelerate.
func (p BouncingPhysics) CarriedMomentum(existingVelocity float64) float64 {
	carried := math.Min(0.000816*math.Pow(math.Abs(existingVelocity), 1.967), 40000)
	return math.Copysign(carried, existingVelocity)
}

// Tolerance implements Physics.
func (p BouncingPhysics) Tolerance() animation.Tolerance { return p.spec.Tolerance() }
