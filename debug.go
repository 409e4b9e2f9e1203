package arbor

import (
	"fmt"
	"io"
	"time"
)

// PassStats summarizes one pass over the program.
type PassStats struct {
	Drawn        int // marks that produced output
	Fruits       int // fruit drawn
	OpenBranches int // Push without a matching Pop at the end of the word
}

// FrameStats summarizes one Tick.
type FrameStats struct {
	Progress float64
	Wood     PassStats
	Fruit    PassStats
	Elapsed  time.Duration // wall time spent in both passes
}

// WriteDebug prints a one-line frame summary to w in the form
//
//	[arbor] progress: 12.40 | wood: 11 | fruit: 3 | open: 0 | time: 85µs
func (f FrameStats) WriteDebug(w io.Writer) {
	_, _ = fmt.Fprintf(w,
		"[arbor] progress: %.2f | wood: %d | fruit: %d | open: %d | time: %v\n",
		f.Progress, f.Wood.Drawn, f.Fruit.Fruits, f.Wood.OpenBranches, f.Elapsed)
}
