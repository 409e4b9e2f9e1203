package arbor

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens in the surface backends.
type Color struct {
	R, G, B, A float64
}

// ColorNone disables fill or stroke when passed to SetFill or SetStroke.
var ColorNone = Color{}

// RGB builds an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Hex parses "#rrggbb". Malformed input yields opaque black.
func Hex(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		return Color{A: 1}
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := hexNibble(s[1+i*2])
		lo, ok2 := hexNibble(s[2+i*2])
		if !ok1 || !ok2 {
			return Color{A: 1}
		}
		v[i] = hi<<4 | lo
	}
	return RGB(v[0], v[1], v[2])
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Visible reports whether drawing with c would produce any output.
func (c Color) Visible() bool {
	return c.A > 0
}

// RGBA converts to a premultiplied 8-bit color.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// LerpColor interpolates every channel of a toward b by t.
func LerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// Vec2 is a 2D vector used for positions and offsets. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// lerp returns exactly a at t=0 and exactly b at t=1.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// remap maps v from [inLo, inHi] onto [outLo, outHi] without clamping.
func remap(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

// radians converts degrees to radians.
func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Common colors.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)
