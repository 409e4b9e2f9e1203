package arbor

import "math"

// Fruit appearance. Colors are the three sentiment stops.
var (
	FruitNegative = Hex("#4b3f8c")
	FruitNeutral  = Hex("#e8c15a")
	FruitPositive = Hex("#d6364a")

	StemColor      = Hex("#4a3b2a")
	HighlightColor = Color{1, 1, 1, 0.45}
)

const (
	StemWidth = 1.5

	ShortStemMin = 10.0 // even fruit indices
	ShortStemMax = 15.0
	LongStemMin  = 40.0 // odd fruit indices
	LongStemMax  = 50.0

	FruitSizeMin = 4.0  // size at count 0
	FruitSizeMax = 12.0 // size at log10(count+1) == FruitCountLogMax
	// FruitCountLogMax is the top of the log10(count+1) domain.
	FruitCountLogMax = 4.0
)

// FruitSpec is everything needed to draw one fruit.
type FruitSpec struct {
	Sentiment   float64 // clamped to [0, 1] before use
	Count       float64 // negative counts are treated as 0
	BranchAngle float64 // accumulated rotation of the branch, radians
	Index       int     // stable running fruit index
	Growth      float64 // reveal scale in [0, 1]
}

// SentimentColor maps sentiment onto the negative→neutral→positive stops.
func SentimentColor(sentiment float64) Color {
	s := clamp01(sentiment)
	if s < 0.5 {
		return LerpColor(FruitNegative, FruitNeutral, s/0.5)
	}
	return LerpColor(FruitNeutral, FruitPositive, (s-0.5)/0.5)
}

// FruitSize maps a count onto a body size on a log10 scale, scaled by growth.
// It is never negative and never decreases as count grows.
func FruitSize(count, growth float64) float64 {
	if count < 0 || math.IsNaN(count) {
		count = 0
	}
	size := remap(math.Log10(count+1), 0, FruitCountLogMax, FruitSizeMin, FruitSizeMax)
	return math.Max(size*clamp01(growth), 0)
}

// StemLength picks the stem length for fruit index from noise: short stems
// for even indices and long ones for odd, scaled by growth.
func StemLength(nz *Noise, index int, growth float64) float64 {
	lo, hi := ShortStemMin, ShortStemMax
	if index%2 != 0 {
		lo, hi = LongStemMin, LongStemMax
	}
	return nz.RangeIn(NoiseStem, float64(index), lo, hi) * clamp01(growth)
}

// DrawFruit draws a fruit hanging from the surface origin. The caller's
// frame is assumed to carry the branch rotation; it is undone so the stem
// always hangs straight down. Surface state is restored on return.
func DrawFruit(s Surface, nz *Noise, f FruitSpec) {
	s.Push()
	defer s.Pop()

	s.Rotate(-f.BranchAngle)

	stem := StemLength(nz, f.Index, f.Growth)
	s.SetStroke(StemColor)
	s.SetStrokeWidth(StemWidth)
	s.Line(0, 0, 0, stem)
	s.Translate(0, stem)

	size := FruitSize(f.Count, f.Growth)
	if size <= 0 {
		return
	}

	s.SetStroke(ColorNone)
	s.SetFill(SentimentColor(f.Sentiment))
	s.Shape(TeardropPath(size))

	s.SetFill(HighlightColor)
	s.Ellipse(-size*0.3, size*1.2, size*0.45, size*0.7)
}

// TeardropPath returns a berry outline hanging from (0, 0): a narrow top
// and round bottom built from two mirrored cubic curves, 2.2·size tall.
func TeardropPath(size float64) *Path {
	p := &Path{}
	p.MoveTo(0, 0)
	p.CubicTo(size*0.9, size*0.6, size*1.2, size*2.0, 0, size*2.2)
	p.CubicTo(-size*1.2, size*2.0, -size*0.9, size*0.6, 0, 0)
	return p.Close()
}
