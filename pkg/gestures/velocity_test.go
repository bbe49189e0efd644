package gestures

import (
	"math"
	"testing"
	"time"
)

func TestVelocityTracker_ConstantMotion(t *testing.T) {
	var tracker VelocityTracker
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// 500 px/s sampled every 16ms.
	for i := 0; i < 10; i++ {
		at := start.Add(time.Duration(i) * 16 * time.Millisecond)
		tracker.AddSample(500*at.Sub(start).Seconds(), at)
	}

	got := tracker.Velocity()
	if math.Abs(got-500) > 1 {
		t.Errorf("Velocity() = %f, want ~500", got)
	}
}

func TestVelocityTracker_IgnoresStaleSamples(t *testing.T) {
	var tracker VelocityTracker
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Old fast motion followed by a long pause and slow motion: only the
	// recent samples should count.
	tracker.AddSample(0, start)
	tracker.AddSample(100, start.Add(16*time.Millisecond))
	later := start.Add(2 * time.Second)
	for i := 0; i < 8; i++ {
		at := later.Add(time.Duration(i) * 16 * time.Millisecond)
		tracker.AddSample(100+50*at.Sub(later).Seconds(), at)
	}

	got := tracker.Velocity()
	if math.Abs(got-50) > 1 {
		t.Errorf("Velocity() = %f, want ~50", got)
	}
}

func TestVelocityTracker_TooFewSamples(t *testing.T) {
	var tracker VelocityTracker
	if got := tracker.Velocity(); got != 0 {
		t.Errorf("empty tracker Velocity() = %f, want 0", got)
	}
	tracker.AddSample(10, time.Now())
	if got := tracker.Velocity(); got != 0 {
		t.Errorf("single-sample Velocity() = %f, want 0", got)
	}
	tracker.Reset()
	if got := tracker.Velocity(); got != 0 {
		t.Errorf("after Reset Velocity() = %f, want 0", got)
	}
}
