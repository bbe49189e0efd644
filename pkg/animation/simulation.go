package animation

import "math"

// Simulation models an object in one dimension as a pure function of time.
// Time is measured in seconds from the moment the simulation is seeded;
// positions are logical pixels and velocities logical pixels per second.
//
// Callers sample X and DX once per frame and stop when IsDone reports true.
// A Simulation never mutates on sampling, so it can be shared between the
// outer and inner positions of a nested scroll group.
type Simulation interface {
	// X returns the position at time t.
	X(t float64) float64
	// DX returns the velocity at time t.
	DX(t float64) float64
	// IsDone reports whether the simulation has settled at time t.
	IsDone(t float64) bool
}

// Tolerance describes how close to the settle point a simulation must be
// before it reports done.
type Tolerance struct {
	// Distance is the settle threshold in logical pixels.
	Distance float64
	// Velocity is the settle threshold in logical pixels per second.
	Velocity float64
}

// DefaultTolerance is used when a caller passes a zero Tolerance.
var DefaultTolerance = Tolerance{Distance: 0.01, Velocity: 0.01}

func (t Tolerance) orDefault() Tolerance {
	if t.Distance <= 0 {
		t.Distance = DefaultTolerance.Distance
	}
	if t.Velocity <= 0 {
		t.Velocity = DefaultTolerance.Velocity
	}
	return t
}

// FrictionSimulation models a particle decelerating under fluid friction:
//
//	x(t)  = x0 + v0·(dragᵗ − 1)/ln(drag)
//	dx(t) = v0·dragᵗ
//
// The drag coefficient must lie in (0, 1); smaller values stop the particle
// sooner. The trajectory converges on [FrictionSimulation.FinalX].
type FrictionSimulation struct {
	drag, dragLog float64
	x0, v0        float64
	tolerance     Tolerance
}

// NewFrictionSimulation creates a friction simulation starting at position
// with the given velocity.
func NewFrictionSimulation(drag, position, velocity float64, tolerance Tolerance) *FrictionSimulation {
	if drag <= 0 || drag >= 1 || math.IsNaN(drag) {
		drag = 0.135
	}
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		velocity = 0
	}
	return &FrictionSimulation{
		drag:      drag,
		dragLog:   math.Log(drag),
		x0:        position,
		v0:        velocity,
		tolerance: tolerance.orDefault(),
	}
}

// X returns the position at time t.
func (s *FrictionSimulation) X(t float64) float64 {
	return s.x0 + s.v0*(math.Pow(s.drag, t)-1)/s.dragLog
}

// DX returns the velocity at time t.
func (s *FrictionSimulation) DX(t float64) float64 {
	return s.v0 * math.Pow(s.drag, t)
}

// FinalX returns the position the simulation converges on.
func (s *FrictionSimulation) FinalX() float64 {
	return s.x0 - s.v0/s.dragLog
}

// TimeAtX returns the time at which the trajectory passes x, or +Inf when
// it never reaches x.
func (s *FrictionSimulation) TimeAtX(x float64) float64 {
	if x == s.x0 {
		return 0
	}
	if s.v0 == 0 {
		return math.Inf(1)
	}
	if s.v0 > 0 {
		if x < s.x0 || x > s.FinalX() {
			return math.Inf(1)
		}
	} else {
		if x > s.x0 || x < s.FinalX() {
			return math.Inf(1)
		}
	}
	return math.Log(s.dragLog*(x-s.x0)/s.v0+1) / s.dragLog
}

// IsDone reports whether the velocity has decayed below tolerance.
func (s *FrictionSimulation) IsDone(t float64) bool {
	return math.Abs(s.DX(t)) < s.tolerance.Velocity
}

// SpringDescription defines the physical parameters of a damped spring.
type SpringDescription struct {
	Mass      float64
	Stiffness float64
	// Damping is the viscous damping coefficient, not a damping ratio.
	Damping float64
}

// SpringWithDampingRatio builds a SpringDescription from a damping ratio.
// A ratio of 1 is critically damped; above 1 overdamped; below 1 bouncy.
func SpringWithDampingRatio(mass, stiffness, ratio float64) SpringDescription {
	return SpringDescription{
		Mass:      mass,
		Stiffness: stiffness,
		Damping:   ratio * 2 * math.Sqrt(mass*stiffness),
	}
}

// ScrollSpring is the spring used to settle out-of-range scroll positions.
// Slightly overdamped so the settle never visibly oscillates.
func ScrollSpring() SpringDescription {
	return SpringWithDampingRatio(0.5, 100, 1.1)
}

// springSolution is the closed-form solution of m·x″ + d·x′ + k·x = 0 in
// coordinates relative to the settle point.
type springSolution interface {
	x(t float64) float64
	dx(t float64) float64
}

type overdampedSolution struct{ r1, r2, c1, c2 float64 }

func (s overdampedSolution) x(t float64) float64 {
	return s.c1*math.Exp(s.r1*t) + s.c2*math.Exp(s.r2*t)
}

func (s overdampedSolution) dx(t float64) float64 {
	return s.c1*s.r1*math.Exp(s.r1*t) + s.c2*s.r2*math.Exp(s.r2*t)
}

type criticalSolution struct{ r, c1, c2 float64 }

func (s criticalSolution) x(t float64) float64 {
	return (s.c1 + s.c2*t) * math.Exp(s.r*t)
}

func (s criticalSolution) dx(t float64) float64 {
	return (s.c2 + (s.c1+s.c2*t)*s.r) * math.Exp(s.r*t)
}

type underdampedSolution struct{ w, r, c1, c2 float64 }

func (s underdampedSolution) x(t float64) float64 {
	return math.Exp(s.r*t) * (s.c1*math.Cos(s.w*t) + s.c2*math.Sin(s.w*t))
}

func (s underdampedSolution) dx(t float64) float64 {
	e := math.Exp(s.r * t)
	cos := math.Cos(s.w * t)
	sin := math.Sin(s.w * t)
	return e * (s.r*(s.c1*cos+s.c2*sin) + s.w*(s.c2*cos-s.c1*sin))
}

func solveSpring(desc SpringDescription, distance, velocity float64) springSolution {
	cmk := desc.Damping*desc.Damping - 4*desc.Mass*desc.Stiffness
	switch {
	case cmk > 0:
		r1 := (-desc.Damping - math.Sqrt(cmk)) / (2 * desc.Mass)
		r2 := (-desc.Damping + math.Sqrt(cmk)) / (2 * desc.Mass)
		c2 := (velocity - r1*distance) / (r2 - r1)
		return overdampedSolution{r1: r1, r2: r2, c1: distance - c2, c2: c2}
	case cmk < 0:
		w := math.Sqrt(4*desc.Mass*desc.Stiffness-desc.Damping*desc.Damping) / (2 * desc.Mass)
		r := -desc.Damping / (2 * desc.Mass)
		return underdampedSolution{w: w, r: r, c1: distance, c2: (velocity - r*distance) / w}
	default:
		r := -desc.Damping / (2 * desc.Mass)
		return criticalSolution{r: r, c1: distance, c2: velocity - r*distance}
	}
}

// SpringSimulation drives a position toward a settle point along a damped
// spring trajectory.
type SpringSimulation struct {
	end       float64
	solution  springSolution
	tolerance Tolerance
}

// NewSpringSimulation creates a spring simulation starting at start with
// the given velocity, settling at end.
func NewSpringSimulation(desc SpringDescription, start, velocity, end float64, tolerance Tolerance) *SpringSimulation {
	if desc.Mass <= 0 || desc.Stiffness <= 0 {
		desc = ScrollSpring()
	}
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		velocity = 0
	}
	return &SpringSimulation{
		end:       end,
		solution:  solveSpring(desc, start-end, velocity),
		tolerance: tolerance.orDefault(),
	}
}

// X returns the position at time t. Once the spring is within tolerance
// it snaps to the settle point exactly, so a position coming to rest lands
// on the boundary rather than a hair outside it.
func (s *SpringSimulation) X(t float64) float64 {
	if s.IsDone(t) {
		return s.end
	}
	return s.end + s.solution.x(t)
}

// DX returns the velocity at time t.
func (s *SpringSimulation) DX(t float64) float64 {
	return s.solution.dx(t)
}

// IsDone reports whether the spring is at rest within tolerance.
func (s *SpringSimulation) IsDone(t float64) bool {
	return math.Abs(s.solution.x(t)) < s.tolerance.Distance &&
		math.Abs(s.solution.dx(t)) < s.tolerance.Velocity
}

// ClampedSimulation restricts another simulation's position to [MinX, MaxX].
// It reports done as soon as the inner trajectory leaves the window, which
// lets a fling stop dead at a content edge.
type ClampedSimulation struct {
	inner      Simulation
	minX, maxX float64
}

// NewClampedSimulation wraps inner, clamping its position to [minX, maxX].
func NewClampedSimulation(inner Simulation, minX, maxX float64) *ClampedSimulation {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	return &ClampedSimulation{inner: inner, minX: minX, maxX: maxX}
}

// X returns the clamped position at time t.
func (s *ClampedSimulation) X(t float64) float64 {
	x := s.inner.X(t)
	if x < s.minX {
		return s.minX
	}
	if x > s.maxX {
		return s.maxX
	}
	return x
}

// DX returns the inner velocity at time t.
func (s *ClampedSimulation) DX(t float64) float64 {
	return s.inner.DX(t)
}

// IsDone reports whether the inner simulation settled or crossed a clamp
// boundary.
func (s *ClampedSimulation) IsDone(t float64) bool {
	if s.inner.IsDone(t) {
		return true
	}
	x := s.inner.X(t)
	return x < s.minX || x > s.maxX
}

// maxSpringTransferVelocity caps the velocity handed from the friction
// phase to the spring phase of a bouncing simulation.
const maxSpringTransferVelocity = 5000.0

// BouncingSimulation models a fling inside [leading, trailing] that, on
// crossing an edge, hands its residual velocity to a spring that pulls the
// position back to that edge. Started out of range it is pure spring.
type BouncingSimulation struct {
	friction   *FrictionSimulation
	spring     *SpringSimulation
	springTime float64
	tolerance  Tolerance
}

// NewBouncingSimulation creates a bouncing simulation for the given extents.
func NewBouncingSimulation(spring SpringDescription, position, velocity, leading, trailing float64, tolerance Tolerance) *BouncingSimulation {
	b := &BouncingSimulation{tolerance: tolerance.orDefault()}
	switch {
	case position < leading:
		b.springTime = math.Inf(-1)
		b.spring = NewSpringSimulation(spring, position, velocity, leading, tolerance)
	case position > trailing:
		b.springTime = math.Inf(-1)
		b.spring = NewSpringSimulation(spring, position, velocity, trailing, tolerance)
	default:
		b.friction = NewFrictionSimulation(0.135, position, velocity, tolerance)
		finalX := b.friction.FinalX()
		switch {
		case velocity > 0 && finalX > trailing:
			b.springTime = b.friction.TimeAtX(trailing)
			b.spring = NewSpringSimulation(
				spring, trailing,
				math.Min(b.friction.DX(b.springTime), maxSpringTransferVelocity),
				trailing, tolerance,
			)
		case velocity < 0 && finalX < leading:
			b.springTime = b.friction.TimeAtX(leading)
			b.spring = NewSpringSimulation(
				spring, leading,
				math.Max(b.friction.DX(b.springTime), -maxSpringTransferVelocity),
				leading, tolerance,
			)
		default:
			b.springTime = math.Inf(1)
		}
	}
	return b
}

func (b *BouncingSimulation) simulation(t float64) (Simulation, float64) {
	if t > b.springTime {
		if math.IsInf(b.springTime, -1) {
			return b.spring, t
		}
		return b.spring, t - b.springTime
	}
	return b.friction, t
}

// X returns the position at time t.
func (b *BouncingSimulation) X(t float64) float64 {
	sim, offset := b.simulation(t)
	return sim.X(offset)
}

// DX returns the velocity at time t.
func (b *BouncingSimulation) DX(t float64) float64 {
	sim, offset := b.simulation(t)
	return sim.DX(offset)
}

// IsDone reports whether the active phase has settled.
func (b *BouncingSimulation) IsDone(t float64) bool {
	sim, offset := b.simulation(t)
	return sim.IsDone(offset)
}
