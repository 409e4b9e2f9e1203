package arbor

import (
	"testing"
	"time"
)

func TestClockBeforeStart(t *testing.T) {
	c := NewGrowthClock(GrowthDuration)
	if got := c.Progress(10*time.Second, 12); got != 0 {
		t.Errorf("Progress before Start = %v, want 0", got)
	}
	if c.Started() {
		t.Error("Started() = true before Start")
	}
}

func TestClockReachesCountExactly(t *testing.T) {
	c := NewGrowthClock(GrowthDuration)
	c.Start(time.Second)

	if got := c.Progress(time.Second, 7); got != 0 {
		t.Errorf("Progress at start = %v, want 0", got)
	}
	if got := c.Progress(time.Second+GrowthDuration, 7); got != 7 {
		t.Errorf("Progress at end = %v, want exactly 7", got)
	}
	if got := c.Progress(time.Hour, 7); got != 7 {
		t.Errorf("Progress long after end = %v, want exactly 7", got)
	}
}

func TestClockEaseOut(t *testing.T) {
	c := NewGrowthClock(4 * time.Second)
	c.Start(0)
	// t = 0.5 → 0.5 * 1.5 = 0.75
	assertNear(t, "half", c.Progress(2*time.Second, 10), 7.5)
	// t = 0.25 → 0.25 * 1.75 = 0.4375
	assertNear(t, "quarter", c.Progress(time.Second, 16), 7)
}

func TestClockMonotonic(t *testing.T) {
	c := NewGrowthClock(GrowthDuration)
	c.Start(0)
	const n = 33
	prev := -1.0
	for ms := 0; ms <= 6000; ms += 7 {
		p := c.Progress(time.Duration(ms)*time.Millisecond, n)
		if p < prev {
			t.Fatalf("Progress decreased at %dms: %v < %v", ms, p, prev)
		}
		if p > n {
			t.Fatalf("Progress %v exceeds %d", p, n)
		}
		prev = p
	}
}

func TestClockStartOnce(t *testing.T) {
	c := NewGrowthClock(GrowthDuration)
	c.Start(0)
	c.Start(3 * time.Second)
	if got := c.Progress(GrowthDuration, 4); got != 4 {
		t.Errorf("second Start moved the epoch: Progress = %v, want 4", got)
	}
}

func TestClockBeforeEpochClamps(t *testing.T) {
	c := NewGrowthClock(GrowthDuration)
	c.Start(10 * time.Second)
	if got := c.Progress(5*time.Second, 4); got != 0 {
		t.Errorf("Progress before epoch = %v, want 0", got)
	}
}

func TestClockDefaultDuration(t *testing.T) {
	if c := NewGrowthClock(0); c.Duration != GrowthDuration {
		t.Errorf("Duration = %v, want %v", c.Duration, GrowthDuration)
	}
}
