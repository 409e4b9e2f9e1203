// Package raster renders arbor trees headlessly into in-memory images using
// golang.org/x/image/vector, for stills, golden images and CLI export.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/phanxgames/arbor"
	"golang.org/x/image/vector"
)

// Sink rasterizes arbor triangles into an *image.RGBA.
type Sink struct {
	dst *image.RGBA
	z   vector.Rasterizer
	src *image.Uniform
}

// NewSink returns a sink that draws into dst.
func NewSink(dst *image.RGBA) *Sink {
	return &Sink{dst: dst, src: image.NewUniform(color.RGBA{})}
}

// DrawTriangles implements arbor.TriangleSink. Each call is rasterized as
// one coverage mask clamped to full opacity, so triangles that overlap
// within a call never double-blend.
func (s *Sink) DrawTriangles(verts []arbor.Vec2, inds []uint16, c arbor.Color) {
	if len(inds) < 3 || !c.Visible() {
		return
	}
	r := bounds(verts, inds).Intersect(s.dst.Bounds())
	if r.Empty() {
		return
	}

	s.z.Reset(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for i := 0; i+2 < len(inds); i += 3 {
		a, b, d := verts[inds[i]], verts[inds[i+1]], verts[inds[i+2]]
		// Wind every triangle the same way so coverage only ever adds up.
		if cross(a, b, d) < 0 {
			b, d = d, b
		}
		s.z.MoveTo(float32(a.X-ox), float32(a.Y-oy))
		s.z.LineTo(float32(b.X-ox), float32(b.Y-oy))
		s.z.LineTo(float32(d.X-ox), float32(d.Y-oy))
		s.z.ClosePath()
	}
	s.src.C = c.RGBA()
	s.z.Draw(s.dst, r, s.src, image.Point{})
}

func cross(a, b, c arbor.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// bounds returns the pixel rectangle covering the indexed vertices.
func bounds(verts []arbor.Vec2, inds []uint16) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, i := range inds {
		v := verts[i]
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	if math.IsInf(minX, 0) || math.IsNaN(minX+minY+maxX+maxY) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
}

// Options control a headless render.
type Options struct {
	Width, Height int
	// At is the time since growth started.
	At time.Duration
	// Ground draws the grass strip. Its fade-in and wind follow At.
	Ground bool
	// TPS converts At into a wind frame number. Defaults to 60.
	TPS int
}

// Frame holds a rendered image and the stats of the tree tick that drew it.
type Frame struct {
	Image *image.RGBA
	Stats arbor.FrameStats
	// Blades is the number of grass blades drawn.
	Blades int
}

// Grower is a tree or forest that can be ticked onto a surface.
type Grower interface {
	Start(now time.Duration)
	Tick(s arbor.Surface, now time.Duration) arbor.FrameStats
}

// Render draws tree as it looks opts.At after growth started.
func Render(tree Grower, opts Options) (*Frame, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(arbor.BackgroundColor.RGBA()), image.Point{}, draw.Src)
	canvas := arbor.NewCanvas(NewSink(img), float64(opts.Width), float64(opts.Height))

	f := &Frame{Image: img}
	if opts.Ground {
		g := arbor.NewGround()
		g.Update(float32(opts.At.Seconds()))
		f.Blades = g.Draw(canvas, int(opts.At.Seconds()*float64(opts.TPS)))
	}
	tree.Start(0)
	f.Stats = tree.Tick(canvas, opts.At)
	return f, nil
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}
