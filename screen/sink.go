package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arbor"
)

var whitePixelImage *ebiten.Image

// whitePixel returns the shared 1x1 white source image for untextured
// triangles.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// sink draws arbor triangles onto an ebiten image.
type sink struct {
	target *ebiten.Image
	verts  []ebiten.Vertex
	op     ebiten.DrawTrianglesOptions
}

func newSink() *sink {
	s := &sink{}
	s.op.AntiAlias = true
	return s
}

// DrawTriangles implements arbor.TriangleSink.
func (s *sink) DrawTriangles(verts []arbor.Vec2, inds []uint16, c arbor.Color) {
	if s.target == nil || len(inds) == 0 {
		return
	}
	s.verts = toVertices(verts, c, s.verts[:0])
	s.target.DrawTriangles(s.verts, inds, whitePixel(), &s.op)
}

// toVertices converts positions to untextured ebiten vertices with a
// premultiplied color, mapped to the center of the white pixel.
func toVertices(verts []arbor.Vec2, c arbor.Color, dst []ebiten.Vertex) []ebiten.Vertex {
	a := float32(c.A)
	r := float32(c.R) * a
	g := float32(c.G) * a
	b := float32(c.B) * a
	for _, v := range verts {
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(v.X),
			DstY:   float32(v.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	return dst
}
