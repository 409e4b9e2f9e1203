package arbor

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Ground appearance, after the original backdrop.
var (
	BackgroundColor = Hex("#f0f0dc")
	GrassColors     = [...]Color{Hex("#1d2e28"), Hex("#14452f"), Hex("#0f5132")}
)

const (
	GroundSeed      uint64  = 7
	GrassStep               = 0.6 // horizontal spacing between blades
	GrassStroke             = 1.5
	GrassMinHeight          = 10.0
	GrassHeightSpan         = 40.0
	WindAmplitude           = 15.0
	WindSpeed               = 0.015 // radians per frame
	GroundFadeIn    float32 = 1.0   // seconds
)

// Ground is the decorative grass strip along the bottom of the surface. It
// shares nothing with any Tree.
type Ground struct {
	noise *Noise
	alpha float64
	fade  *Tween
}

// NewGround returns a ground layer that fades in over GroundFadeIn.
func NewGround() *Ground {
	g := &Ground{noise: NewNoise(GroundSeed)}
	g.fade = NewTween(&g.alpha, 1, GroundFadeIn, ease.OutQuad)
	return g
}

// Update advances the fade-in by dt seconds.
func (g *Ground) Update(dt float32) {
	g.fade.Update(dt)
}

// Alpha returns the current fade-in opacity.
func (g *Ground) Alpha() float64 {
	return g.alpha
}

// Draw paints one blade every GrassStep pixels along the bottom edge, swayed
// by a sine wind driven by frame.
func (g *Ground) Draw(s Surface, frame int) int {
	if g.alpha <= 0 {
		return 0
	}
	w, h := s.Size()

	s.Push()
	defer s.Pop()
	s.SetFill(ColorNone)
	s.SetStrokeWidth(GrassStroke)

	blades := 0
	p := &Path{}
	for x := 0.0; x < w; x += GrassStep {
		ci := int(g.noise.At(x) * float64(len(GrassColors)))
		s.SetStroke(GrassColors[min(ci, len(GrassColors)-1)].WithAlpha(g.alpha))

		bh := g.noise.At(x*0.1)*GrassHeightSpan + GrassMinHeight
		wind := math.Sin(float64(frame)*WindSpeed+x) * WindAmplitude

		p.Segments = p.Segments[:0]
		catmullRom(p,
			Vec2{x - wind, h + 50},
			Vec2{x, h},
			Vec2{x + wind, h - bh},
			Vec2{x + wind*2, h - bh - 20},
		)
		s.Shape(p)
		blades++
	}
	return blades
}

// catmullRom appends the p1→p2 span of a Catmull-Rom spline through
// p0..p3 as a cubic Bézier.
func catmullRom(p *Path, p0, p1, p2, p3 Vec2) {
	p.MoveTo(p1.X, p1.Y)
	p.CubicTo(
		p1.X+(p2.X-p0.X)/6, p1.Y+(p2.Y-p0.Y)/6,
		p2.X-(p3.X-p1.X)/6, p2.Y-(p3.Y-p1.Y)/6,
		p2.X, p2.Y,
	)
}
