package animation

import (
	"math"
	"testing"
)

func TestFrictionSimulation_DeceleratesMonotonically(t *testing.T) {
	sim := NewFrictionSimulation(0.135, 0, 1000, Tolerance{})

	prevX := sim.X(0)
	prevV := sim.DX(0)
	for step := 1; step <= 200; step++ {
		now := float64(step) * 0.016
		x := sim.X(now)
		v := sim.DX(now)
		if x < prevX {
			t.Fatalf("position reversed at t=%.3f: %f -> %f", now, prevX, x)
		}
		if v > prevV {
			t.Fatalf("velocity increased at t=%.3f: %f -> %f", now, prevV, v)
		}
		prevX, prevV = x, v
	}
}

func TestFrictionSimulation_FinalX(t *testing.T) {
	sim := NewFrictionSimulation(0.135, 100, 800, Tolerance{})

	final := sim.FinalX()
	if final <= 100 {
		t.Fatalf("FinalX = %f, want beyond the start position", final)
	}
	// Far in the future the trajectory has converged on FinalX.
	if got := sim.X(60); math.Abs(got-final) > 1e-6 {
		t.Errorf("X(60) = %f, want %f", got, final)
	}
}

func TestFrictionSimulation_TimeAtX(t *testing.T) {
	sim := NewFrictionSimulation(0.135, 0, 1000, Tolerance{})

	target := sim.FinalX() / 2
	at := sim.TimeAtX(target)
	if math.IsInf(at, 0) {
		t.Fatalf("TimeAtX(%f) = +Inf, want finite", target)
	}
	if got := sim.X(at); math.Abs(got-target) > 1e-6 {
		t.Errorf("X(TimeAtX(%f)) = %f", target, got)
	}

	// Positions behind the start or beyond FinalX are never reached.
	if got := sim.TimeAtX(-1); !math.IsInf(got, 1) {
		t.Errorf("TimeAtX(-1) = %f, want +Inf", got)
	}
	if got := sim.TimeAtX(sim.FinalX() + 1); !math.IsInf(got, 1) {
		t.Errorf("TimeAtX(beyond final) = %f, want +Inf", got)
	}
}

func TestFrictionSimulation_DegenerateVelocity(t *testing.T) {
	sim := NewFrictionSimulation(0.135, 42, math.NaN(), Tolerance{})
	if got := sim.X(1); got != 42 {
		t.Errorf("X(1) with NaN velocity = %f, want 42", got)
	}
	if !sim.IsDone(0) {
		t.Error("zero-velocity friction simulation should be done immediately")
	}
}

func TestSpringSimulation_SettlesAtEnd(t *testing.T) {
	for _, tc := range []struct {
		name string
		desc SpringDescription
	}{
		{"overdamped", SpringWithDampingRatio(0.5, 100, 1.1)},
		{"critical", SpringWithDampingRatio(1, 500, 1.0)},
		{"underdamped", SpringWithDampingRatio(1, 170, 0.5)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sim := NewSpringSimulation(tc.desc, 550, 200, 500, Tolerance{})
			// Sample until done; every sample must be finite.
			var now float64
			for i := 0; i < 4000 && !sim.IsDone(now); i++ {
				now = float64(i) * 0.016
				if math.IsNaN(sim.X(now)) || math.IsNaN(sim.DX(now)) {
					t.Fatalf("NaN at t=%.3f", now)
				}
			}
			if !sim.IsDone(now) {
				t.Fatalf("spring did not settle within %0.1fs", now)
			}
			if got := sim.X(now); math.Abs(got-500) > 1 {
				t.Errorf("settled at %f, want ~500", got)
			}
		})
	}
}

func TestSpringSimulation_OverdampedNeverOscillates(t *testing.T) {
	// Out-of-range settle must move monotonically toward the boundary.
	sim := NewSpringSimulation(ScrollSpring(), 620, 0, 500, Tolerance{})
	prev := sim.X(0)
	for step := 1; step <= 600; step++ {
		now := float64(step) * 0.016
		x := sim.X(now)
		if x > prev+1e-9 {
			t.Fatalf("trajectory moved away from bound at t=%.3f: %f -> %f", now, prev, x)
		}
		if x < 500-1e-6 {
			t.Fatalf("trajectory overshot the bound at t=%.3f: %f", now, x)
		}
		prev = x
	}
}

func TestClampedSimulation_StopsAtBoundary(t *testing.T) {
	inner := NewFrictionSimulation(0.135, 450, 2000, Tolerance{})
	sim := NewClampedSimulation(inner, 0, 500)

	var now float64
	for i := 0; !sim.IsDone(now); i++ {
		if i > 4000 {
			t.Fatal("clamped simulation never finished")
		}
		now = float64(i) * 0.016
	}
	if got := sim.X(now); got != 500 {
		t.Errorf("final position = %f, want clamped to 500", got)
	}
}

func TestBouncingSimulation_ReturnsTowardNearestBound(t *testing.T) {
	// Overscrolled past the trailing edge with zero velocity: the spring
	// must move back toward 500 without oscillating away.
	sim := NewBouncingSimulation(ScrollSpring(), 560, 0, 0, 500, Tolerance{})

	prev := sim.X(0)
	var now float64
	for i := 1; !sim.IsDone(now); i++ {
		if i > 4000 {
			t.Fatal("bounce never settled")
		}
		now = float64(i) * 0.016
		x := sim.X(now)
		if x > prev+1e-9 {
			t.Fatalf("bounce moved away from bound at t=%.3f: %f -> %f", now, prev, x)
		}
		prev = x
	}
	if math.Abs(sim.X(now)-500) > 1 {
		t.Errorf("settled at %f, want ~500", sim.X(now))
	}
}

func TestBouncingSimulation_FlingCrossesIntoSpring(t *testing.T) {
	// A hard fling from mid-content must pass the trailing edge, then be
	// pulled back to it.
	sim := NewBouncingSimulation(ScrollSpring(), 400, 3000, 0, 500, Tolerance{})

	crossed := false
	var now float64
	for i := 0; !sim.IsDone(now); i++ {
		if i > 8000 {
			t.Fatal("fling never settled")
		}
		now = float64(i) * 0.016
		if sim.X(now) > 500 {
			crossed = true
		}
	}
	if !crossed {
		t.Error("fling never overscrolled past the trailing edge")
	}
	if math.Abs(sim.X(now)-500) > 1 {
		t.Errorf("settled at %f, want ~500", sim.X(now))
	}
}
