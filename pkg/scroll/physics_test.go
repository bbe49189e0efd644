package scroll_test

import (
	"math"
	"testing"

	"github.com/go-drift/kinetic/pkg/scroll"
)

func metricsAt(pixels float64) scroll.Metrics {
	return scroll.Metrics{
		MinExtent:         0,
		MaxExtent:         500,
		Pixels:            pixels,
		ViewportDimension: 600,
	}
}

func TestClampingPhysics_BoundaryConditions(t *testing.T) {
	physics := scroll.NewClampingPhysics(nil)
	tests := []struct {
		name   string
		pixels float64
		value  float64
		want   float64
	}{
		{"in range", 200, 300, 0},
		{"crossing trailing edge", 490, 520, 20},
		{"crossing leading edge", 10, -30, -30},
		{"already overscrolled pushing further", 510, 520, 10},
		{"already overscrolled pulling back", 510, 505, 0},
		{"already underscrolled pushing further", -10, -20, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := physics.ApplyBoundaryConditions(metricsAt(tt.pixels), tt.value)
			if got != tt.want {
				t.Errorf("ApplyBoundaryConditions(%g -> %g) = %g, want %g", tt.pixels, tt.value, got, tt.want)
			}
		})
	}
}

func TestClampingPhysics_BallisticNilAtRest(t *testing.T) {
	physics := scroll.NewClampingPhysics(nil)
	if sim := physics.CreateBallisticSimulation(metricsAt(200), 0); sim != nil {
		t.Error("expected no simulation at rest in range")
	}
	// At an edge with velocity pointing further out there is nothing to do.
	if sim := physics.CreateBallisticSimulation(metricsAt(500), 100); sim != nil {
		t.Error("expected no simulation at trailing edge moving out")
	}
	if sim := physics.CreateBallisticSimulation(metricsAt(0), -100); sim != nil {
		t.Error("expected no simulation at leading edge moving out")
	}
}

func TestClampingPhysics_BallisticSpringsBackWhenOutOfRange(t *testing.T) {
	physics := scroll.NewClampingPhysics(nil)
	sim := physics.CreateBallisticSimulation(metricsAt(620), 0)
	if sim == nil {
		t.Fatal("expected a spring-back simulation")
	}
	if got := sim.X(10); math.Abs(got-500) > 0.5 {
		t.Errorf("spring-back settled at %g, want ~500", got)
	}
}

func TestClampingPhysics_SpringBackIgnoresOutwardVelocity(t *testing.T) {
	physics := scroll.NewClampingPhysics(nil)

	// Overscrolled past the trailing edge but still moving outward, as
	// happens when the content shrinks under a running fling. The spring
	// must pull straight back instead of chasing the stale velocity.
	sim := physics.CreateBallisticSimulation(metricsAt(620), 800)
	if sim == nil {
		t.Fatal("expected a spring-back simulation")
	}
	for ts := 0.0; ts < 2; ts += 0.016 {
		if x := sim.X(ts); x > 620 {
			t.Fatalf("spring-back moved outward to %g at t=%g", x, ts)
		}
	}
	if got := sim.X(10); math.Abs(got-500) > 0.5 {
		t.Errorf("spring-back settled at %g, want ~500", got)
	}

	// Symmetric at the leading edge.
	sim = physics.CreateBallisticSimulation(metricsAt(-120), -800)
	if sim == nil {
		t.Fatal("expected a spring-back simulation")
	}
	for ts := 0.0; ts < 2; ts += 0.016 {
		if x := sim.X(ts); x < -120 {
			t.Fatalf("spring-back moved outward to %g at t=%g", x, ts)
		}
	}
	if got := sim.X(10); math.Abs(got) > 0.5 {
		t.Errorf("spring-back settled at %g, want ~0", got)
	}
}

func TestClampingPhysics_FlingStopsAtBoundary(t *testing.T) {
	physics := scroll.NewClampingPhysics(nil)
	sim := physics.CreateBallisticSimulation(metricsAt(400), 800)
	if sim == nil {
		t.Fatal("expected a fling simulation")
	}
	for ts := 0.0; ts < 5; ts += 0.016 {
		if x := sim.X(ts); x > 500 {
			t.Fatalf("clamping fling reached %g at t=%g, must not exceed 500", x, ts)
		}
	}
	if got := sim.X(5); got != 500 {
		t.Errorf("fling ended at %g, want exactly 500", got)
	}
}

func TestBouncingPhysics_FlingCrossesBoundary(t *testing.T) {
	physics := scroll.NewBouncingPhysics(nil)
	sim := physics.CreateBallisticSimulation(metricsAt(400), 800)
	if sim == nil {
		t.Fatal("expected a fling simulation")
	}
	crossed := false
	for ts := 0.0; ts < 5; ts += 0.016 {
		if sim.X(ts) > 500 {
			crossed = true
			break
		}
	}
	if !crossed {
		t.Error("bouncing fling never crossed the boundary")
	}
	if got := sim.X(10); math.Abs(got-500) > 0.5 {
		t.Errorf("bouncing fling settled at %g, want ~500", got)
	}
}

func TestBouncingPhysics_ResistanceWhileOverscrolled(t *testing.T) {
	physics := scroll.NewBouncingPhysics(nil)
	// In range: the delta passes through untouched.
	if got := physics.ApplyPhysicsToUserOffset(metricsAt(200), 30); got != 30 {
		t.Errorf("in-range delta = %g, want 30", got)
	}
	// Underscrolled and pulling further out: the delta shrinks.
	m := metricsAt(-60)
	got := physics.ApplyPhysicsToUserOffset(m, 30)
	if got <= 0 || got >= 30 {
		t.Errorf("overscrolled delta = %g, want in (0, 30)", got)
	}
	// Deeper overscroll resists harder.
	deeper := physics.ApplyPhysicsToUserOffset(metricsAt(-200), 30)
	if deeper >= got {
		t.Errorf("resistance did not grow with overscroll: %g then %g", got, deeper)
	}
	// Moving back toward range is never resisted.
	if got := physics.ApplyPhysicsToUserOffset(m, -30); got != -30 {
		t.Errorf("recovery delta = %g, want -30", got)
	}
}

func TestBouncingPhysics_CarriedMomentum(t *testing.T) {
	physics := scroll.NewBouncingPhysics(nil)
	if got := physics.CarriedMomentum(0); got != 0 {
		t.Errorf("CarriedMomentum(0) = %g, want 0", got)
	}
	// A gentle fling keeps only part of its speed.
	slow := physics.CarriedMomentum(800)
	if slow <= 0 || slow >= 800 {
		t.Errorf("CarriedMomentum(800) = %g, want in (0, 800)", slow)
	}
	// The curve is superlinear: fast flings carry more than they started
	// with, which is what makes repeated catch-and-fling accelerate.
	fast := physics.CarriedMomentum(2000)
	if fast <= 2000 {
		t.Errorf("CarriedMomentum(2000) = %g, want above 2000", fast)
	}
	if got := physics.CarriedMomentum(-2000); got != -fast {
		t.Errorf("CarriedMomentum(-2000) = %g, want %g", got, -fast)
	}
	// The carry is capped no matter how fast the list is already moving.
	if got := physics.CarriedMomentum(1e9); got != 40000 {
		t.Errorf("CarriedMomentum(1e9) = %g, want capped at 40000", got)
	}
}

func TestClampingPhysics_CarriedMomentumIsZero(t *testing.T) {
	physics := scroll.NewClampingPhysics(nil)
	if got := physics.CarriedMomentum(2000); got != 0 {
		t.Errorf("CarriedMomentum(2000) = %g, want 0", got)
	}
}
