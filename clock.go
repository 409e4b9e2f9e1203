package arbor

import "time"

// GrowthDuration is how long a tree takes to grow from nothing to full size.
const GrowthDuration = 5 * time.Second

// GrowthClock maps elapsed time onto growth progress over an instruction
// sequence. Times are offsets from an arbitrary epoch chosen by the caller
// (usually time since program start), which keeps the clock testable.
type GrowthClock struct {
	Duration time.Duration

	start   time.Duration
	started bool
}

// NewGrowthClock returns an unstarted clock that runs for d.
func NewGrowthClock(d time.Duration) *GrowthClock {
	if d <= 0 {
		d = GrowthDuration
	}
	return &GrowthClock{Duration: d}
}

// Start records now as the beginning of growth. Later calls are ignored.
func (c *GrowthClock) Start(now time.Duration) {
	if c.started {
		return
	}
	c.start = now
	c.started = true
}

// Started reports whether Start has been called.
func (c *GrowthClock) Started() bool {
	return c.started
}

// Fraction returns the eased fraction of growth in [0, 1] at now.
func (c *GrowthClock) Fraction(now time.Duration) float64 {
	if !c.started {
		return 0
	}
	d := c.Duration
	if d <= 0 {
		d = GrowthDuration
	}
	t := clamp01(float64(now-c.start) / float64(d))
	return easeOut(t)
}

// Progress returns growth progress over count instructions at now: the
// integer part counts fully drawn instructions and the fractional part is
// the reveal of the next one. It is 0 before Start and exactly count once
// the duration has elapsed.
func (c *GrowthClock) Progress(now time.Duration, count int) float64 {
	return c.Fraction(now) * float64(count)
}

// easeOut is the quadratic ease-out t·(2−t): fast start, slow finish.
func easeOut(t float64) float64 {
	return t * (2 - t)
}
