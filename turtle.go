package arbor

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Geometry constants of the turtle machine.
const (
	BaseAngle     = 35.0 // degrees per Rotate
	AngleVariance = 10.0 // ± degrees of noise added to BaseAngle

	BareBranchMin = 40.0 // length drawn by Push before the branch body
	BareBranchMax = 60.0

	TrunkBaseHalfWidth = 26.0 // half-width at trunk index 0
	TrunkTipHalfWidth  = 6.0  // half-width at trunk index totalTrunks

	// FruitMinScale hides fruit whose growth is below this scale; tiny fruit
	// flickers at the very start of its reveal.
	FruitMinScale = 0.01
)

// Mode selects which marks a pass draws.
type Mode uint8

const (
	ModeWood  Mode = iota // trunk, branch and segment strokes
	ModeFruit             // fruiting bodies only
)

func (m Mode) String() string {
	if m == ModeFruit {
		return "fruit"
	}
	return "wood"
}

// Pose is the turtle position and orientation. Heading 0 points up the
// screen; positive headings turn clockwise.
type Pose struct {
	Pos         Vec2
	Heading     float64 // radians
	BranchAngle float64 // accumulated rotation, radians
}

// frame is one saved Push.
type frame struct {
	pose  Pose
	width float64
}

// Cursor is the per-pass state of the turtle machine. A fresh cursor is
// built for every pass and discarded afterwards.
type Cursor struct {
	Pose
	Width      float64
	TrunkIndex int // trunks passed so far
	FruitIndex int // fruit passed so far

	totalTrunks int
	stack       []frame
}

// NewCursor returns a cursor at origin, heading up, with default width.
// totalTrunks drives the trunk taper.
func NewCursor(origin Vec2, totalTrunks int) *Cursor {
	return &Cursor{
		Pose:        Pose{Pos: origin},
		Width:       DefaultStrokeWidth,
		totalTrunks: totalTrunks,
	}
}

// Depth returns the number of open branches.
func (c *Cursor) Depth() int {
	return len(c.stack)
}

// MarkKind identifies what a Step leaves behind.
type MarkKind uint8

const (
	MarkNone    MarkKind = iota
	MarkTrunk            // tapered trapezoid
	MarkSegment          // plain stroke (Move and bare branches)
	MarkFruit            // fruiting body
)

// Mark is the drawable result of one Step, in world space.
type Mark struct {
	Kind    MarkKind
	Scale   float64 // reveal scale of the instruction
	From    Vec2
	Heading float64
	Length  float64 // effective (scaled) length

	Width      float64    // MarkSegment stroke width
	HalfWidths [2]float64 // MarkTrunk start and end half-widths
	Fruit      FruitSpec  // MarkFruit
}

// Step applies instruction in at sequence index i with reveal scale to the
// cursor and returns what should be drawn. It is the only place geometry is
// computed, so every pass over the same program agrees on it.
func (c *Cursor) Step(i int, in Instruction, scale float64, nz *Noise) Mark {
	switch in.Op {
	case OpTrunk:
		h := in.Length * scale
		m := Mark{
			Kind:       MarkTrunk,
			Scale:      scale,
			From:       c.Pos,
			Heading:    c.Heading,
			Length:     h,
			HalfWidths: c.trunkHalfWidths(),
		}
		c.advance(h)
		c.TrunkIndex++
		return m

	case OpMove:
		d := in.Length * scale
		m := Mark{Kind: MarkSegment, Scale: scale, From: c.Pos, Heading: c.Heading, Length: d, Width: c.Width}
		c.advance(d)
		return m

	case OpSetWidth:
		c.Width = math.Max(in.Width, 0)

	case OpFruit:
		c.FruitIndex++
		return Mark{
			Kind:    MarkFruit,
			Scale:   scale,
			From:    c.Pos,
			Heading: c.Heading,
			Fruit: FruitSpec{
				Sentiment:   in.Sentiment,
				Count:       in.Count,
				BranchAngle: c.BranchAngle,
				Index:       c.FruitIndex,
				Growth:      scale,
			},
		}

	case OpPush:
		c.stack = append(c.stack, frame{pose: c.Pose, width: c.Width})
		l := BareBranchLength(nz, i) * scale
		m := Mark{Kind: MarkSegment, Scale: scale, From: c.Pos, Heading: c.Heading, Length: l, Width: c.Width}
		c.advance(l)
		return m

	case OpPop:
		if n := len(c.stack); n > 0 {
			f := c.stack[n-1]
			c.stack = c.stack[:n-1]
			c.Pose = f.pose
			c.Width = f.width
		}

	case OpRotate:
		// Not gated by scale: hidden branches still need their final angle.
		rot := in.Sign * (radians(BaseAngle) + RotationVariance(nz, c.TrunkIndex))
		c.Heading += rot
		c.BranchAngle += rot
	}
	return Mark{Scale: scale, From: c.Pos, Heading: c.Heading}
}

// advance moves the cursor d pixels along its heading.
func (c *Cursor) advance(d float64) {
	sin, cos := math.Sincos(c.Heading)
	c.Pos = c.Pos.Add(Vec2{sin, -cos}.Scale(d))
}

func (c *Cursor) trunkHalfWidths() [2]float64 {
	total := float64(c.totalTrunks)
	if total <= 0 {
		total = 1
	}
	i := float64(c.TrunkIndex)
	return [2]float64{
		remap(i, 0, total, TrunkBaseHalfWidth, TrunkTipHalfWidth),
		remap(i+1, 0, total, TrunkBaseHalfWidth, TrunkTipHalfWidth),
	}
}

// BareBranchLength is the noise-derived length drawn by the Push at index i,
// in [BareBranchMin, BareBranchMax).
func BareBranchLength(nz *Noise, i int) float64 {
	return nz.Range(float64(i), BareBranchMin, BareBranchMax)
}

// RotationVariance is the noise-derived angle added to BaseAngle after the
// given number of trunks, in radians within ±AngleVariance degrees.
func RotationVariance(nz *Noise, trunkIndex int) float64 {
	return radians(nz.RangeIn(NoiseRotation, float64(trunkIndex), -AngleVariance, AngleVariance))
}

// RevealScale returns how much of instruction i is shown at progress:
// 1 for instructions already passed, the eased fraction for the active one
// and 0 for the rest.
func RevealScale(i int, progress float64) float64 {
	if progress < 0 || math.IsNaN(progress) {
		progress = 0
	}
	active := math.Floor(progress)
	switch idx := float64(i); {
	case idx < active:
		return 1
	case idx == active:
		frac := progress - active
		return float64(ease.OutQuad(float32(frac), 0, 1, 1))
	}
	return 0
}
