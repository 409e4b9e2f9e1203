package arbor

import (
	"log/slog"
	"time"
)

// TreeSeed is the noise seed every tree pass is reseeded with.
const TreeSeed uint64 = 42

// Tree appearance.
var (
	WoodColor = Hex("#3b2a1e")
)

// Tree is one animated tree: a parsed word, its growth clock and its noise.
// Tick draws one frame. A Tree is not safe for concurrent use.
type Tree struct {
	program *Program
	clock   *GrowthClock
	noise   *Noise
	seed    uint64
	log     *slog.Logger

	grown bool
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithLogger sets the logger used for parse and growth events.
func WithLogger(l *slog.Logger) TreeOption {
	return func(t *Tree) {
		if l != nil {
			t.log = l
		}
	}
}

// WithDuration overrides GrowthDuration.
func WithDuration(d time.Duration) TreeOption {
	return func(t *Tree) { t.clock = NewGrowthClock(d) }
}

// WithSeed overrides TreeSeed.
func WithSeed(seed uint64) TreeOption {
	return func(t *Tree) { t.seed = seed }
}

// NewTree parses word once and returns a tree ready to animate.
func NewTree(word string, opts ...TreeOption) *Tree {
	return NewTreeFromProgram(Parse(word), opts...)
}

// NewTreeFromProgram wraps an already parsed program.
func NewTreeFromProgram(p *Program, opts ...TreeOption) *Tree {
	if p == nil {
		p = &Program{}
	}
	t := &Tree{
		program: p,
		clock:   NewGrowthClock(GrowthDuration),
		seed:    TreeSeed,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.noise = NewNoise(t.seed)
	t.log.Debug("parsed word",
		"instructions", p.Len(),
		"trunks", p.Trunks,
		"fruits", p.Fruits,
	)
	return t
}

// Program returns the parsed program. It must not be modified.
func (t *Tree) Program() *Program {
	return t.program
}

// Start begins growth at now. Tick calls it on the first frame if needed.
func (t *Tree) Start(now time.Duration) {
	t.clock.Start(now)
}

// Progress returns growth progress at now.
func (t *Tree) Progress(now time.Duration) float64 {
	return t.clock.Progress(now, t.program.Len())
}

// Done reports whether the tree is fully grown at now.
func (t *Tree) Done(now time.Duration) bool {
	return t.clock.Started() && t.clock.Fraction(now) >= 1
}

// Tick renders one frame at now: the wood pass, then the fruit pass.
func (t *Tree) Tick(s Surface, now time.Duration) FrameStats {
	t0 := time.Now()
	t.clock.Start(now)

	progress := t.Progress(now)
	stats := FrameStats{Progress: progress}
	stats.Wood = t.Pass(s, ModeWood, progress)
	stats.Fruit = t.Pass(s, ModeFruit, progress)
	stats.Elapsed = time.Since(t0)

	if !t.grown && t.Done(now) {
		t.grown = true
		t.log.Debug("growth complete", "instructions", t.program.Len(), "fruits", stats.Fruit.Fruits)
	}
	return stats
}

// Pass runs the program once in mode at progress, starting from the
// bottom-center of s with a fresh cursor and freshly seeded noise.
func (t *Tree) Pass(s Surface, mode Mode, progress float64) PassStats {
	t.noise.Seed(t.seed)
	w, h := s.Size()
	c := NewCursor(Vec2{w / 2, h}, t.program.Trunks)

	var stats PassStats
	for i, in := range t.program.Instructions {
		m := c.Step(i, in, RevealScale(i, progress), t.noise)
		if drawMark(s, t.noise, m, mode) {
			stats.Drawn++
			if m.Kind == MarkFruit {
				stats.Fruits++
			}
		}
	}
	stats.OpenBranches = c.Depth()
	return stats
}

// Trace returns the cursor pose after every instruction at progress.
// Drawing passes compute exactly these poses.
func (t *Tree) Trace(origin Vec2, progress float64) []Pose {
	t.noise.Seed(t.seed)
	c := NewCursor(origin, t.program.Trunks)
	poses := make([]Pose, 0, t.program.Len())
	for i, in := range t.program.Instructions {
		c.Step(i, in, RevealScale(i, progress), t.noise)
		poses = append(poses, c.Pose)
	}
	return poses
}

// drawMark draws m if it belongs to mode and is visible, and reports
// whether anything was drawn.
func drawMark(s Surface, nz *Noise, m Mark, mode Mode) bool {
	switch m.Kind {
	case MarkTrunk:
		if mode != ModeWood || m.Scale <= 0 || m.Length <= 0 {
			return false
		}
		s.Push()
		s.Translate(m.From.X, m.From.Y)
		s.Rotate(m.Heading)
		s.SetStroke(ColorNone)
		s.SetFill(WoodColor)
		w0, w1 := m.HalfWidths[0], m.HalfWidths[1]
		s.Shape(NewPolygonPath(
			Vec2{-w0, 0}, Vec2{w0, 0},
			Vec2{w1, -m.Length}, Vec2{-w1, -m.Length},
		))
		s.Pop()
		return true

	case MarkSegment:
		if mode != ModeWood || m.Scale <= 0 || m.Length <= 0 {
			return false
		}
		s.Push()
		s.Translate(m.From.X, m.From.Y)
		s.Rotate(m.Heading)
		s.SetStroke(WoodColor)
		s.SetStrokeWidth(m.Width)
		s.Line(0, 0, 0, -m.Length)
		s.Pop()
		return true

	case MarkFruit:
		if mode != ModeFruit || m.Scale <= FruitMinScale {
			return false
		}
		s.Push()
		s.Translate(m.From.X, m.From.Y)
		s.Rotate(m.Heading)
		DrawFruit(s, nz, m.Fruit)
		s.Pop()
		return true
	}
	return false
}
