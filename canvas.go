package arbor

import "math"

const (
	defaultCurveSegments   = 16
	defaultEllipseSegments = 32
)

// TriangleSink receives world-space triangles from a Canvas. verts and inds
// are only valid for the duration of the call.
type TriangleSink interface {
	DrawTriangles(verts []Vec2, inds []uint16, c Color)
}

// Canvas implements Surface on top of a TriangleSink. It keeps the transform
// and style stack, flattens curves, and tessellates fills (fan) and strokes
// (one quad per segment) into triangles.
type Canvas struct {
	stateStack

	sink TriangleSink
	w, h float64

	// scratch buffers, grown to a high-water mark and never shrunk
	local []Vec2
	world []Vec2
	verts []Vec2
	inds  []uint16
}

// NewCanvas returns a canvas of the given size drawing into sink.
func NewCanvas(sink TriangleSink, w, h float64) *Canvas {
	return &Canvas{stateStack: newStateStack(), sink: sink, w: w, h: h}
}

// Size implements Surface.
func (c *Canvas) Size() (float64, float64) { return c.w, c.h }

// Resize changes the reported size. Drawing state is untouched.
func (c *Canvas) Resize(w, h float64) {
	c.w, c.h = w, h
}

// Reset clears the transform and style stack for a new frame.
func (c *Canvas) Reset() {
	c.stateStack.reset()
}

// Shape implements Surface.
func (c *Canvas) Shape(p *Path) {
	if p == nil || len(p.Segments) == 0 {
		return
	}
	c.local = p.Flatten(c.local, defaultCurveSegments)
	c.emit(c.local, p.Closed)
}

// Line implements Surface.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	c.local = append(c.local[:0], Vec2{x0, y0}, Vec2{x1, y1})
	c.emit(c.local, false)
}

// Ellipse implements Surface.
func (c *Canvas) Ellipse(cx, cy, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.local = c.local[:0]
	rx, ry := w/2, h/2
	for i := 0; i < defaultEllipseSegments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / defaultEllipseSegments)
		c.local = append(c.local, Vec2{cx + rx*cos, cy + ry*sin})
	}
	c.emit(c.local, true)
}

func (c *Canvas) emit(local []Vec2, closed bool) {
	m := c.cur.transform
	c.world = c.world[:0]
	for _, p := range local {
		c.world = append(c.world, m.ApplyVec(p))
	}

	if closed && c.cur.fill.Visible() {
		c.verts, c.inds = fanTriangulate(c.world, c.verts[:0], c.inds[:0])
		if len(c.inds) > 0 {
			c.sink.DrawTriangles(c.verts, c.inds, c.cur.fill)
		}
	}

	width := c.cur.strokeWidth * m.ScaleFactor()
	if c.cur.stroke.Visible() && width > 0 {
		c.verts, c.inds = strokePolyline(c.world, closed, width, c.verts[:0], c.inds[:0])
		if len(c.inds) > 0 {
			c.sink.DrawTriangles(c.verts, c.inds, c.cur.stroke)
		}
	}
}

// fanTriangulate appends a fan triangulation of the polygon pts, hubbed at
// vertex 0. N vertices, 3*(N-2) indices. Suitable for convex and
// star-shaped-from-vertex-0 outlines.
func fanTriangulate(pts []Vec2, verts []Vec2, inds []uint16) ([]Vec2, []uint16) {
	n := len(pts)
	if n < 3 || n > math.MaxUint16 {
		return verts, inds
	}
	verts = append(verts, pts...)
	for i := 0; i < n-2; i++ {
		inds = append(inds, 0, uint16(i+1), uint16(i+2))
	}
	return verts, inds
}

// strokePolyline appends one quad per segment of pts, each width wide.
func strokePolyline(pts []Vec2, closed bool, width float64, verts []Vec2, inds []uint16) ([]Vec2, []uint16) {
	n := len(pts)
	if n < 2 {
		return verts, inds
	}
	segs := n - 1
	if closed {
		segs = n
	}
	if segs*4 > math.MaxUint16 {
		return verts, inds
	}
	half := width / 2
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		off := perpendicular(a, b).Scale(half)
		back := off.Scale(-1)
		v := uint16(len(verts))
		verts = append(verts, a.Add(off), a.Add(back), b.Add(off), b.Add(back))
		inds = append(inds, v, v+1, v+2, v+1, v+3, v+2)
	}
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) Vec2 {
	d := b.Add(a.Scale(-1))
	ln := d.Len()
	if ln < 1e-10 {
		return Vec2{0, -1}
	}
	return Vec2{-d.Y / ln, d.X / ln}
}
