package arbor

// Surface is the immediate-mode 2D drawing target the tree renders onto.
// Style and transform calls affect subsequent draw calls; Push and Pop save
// and restore both. A color with zero alpha disables fill or stroke.
type Surface interface {
	// Size returns the current drawable width and height in pixels.
	Size() (w, h float64)

	SetFill(c Color)
	SetStroke(c Color)
	SetStrokeWidth(w float64)

	// Shape fills (if closed and a fill is set) and strokes the path.
	Shape(p *Path)
	Line(x0, y0, x1, y1 float64)
	// Ellipse draws an ellipse centered at (cx, cy) with the given diameters.
	Ellipse(cx, cy, w, h float64)

	Translate(x, y float64)
	Rotate(rad float64)
	Push()
	Pop()
}

// SegmentKind identifies a Path segment.
type SegmentKind uint8

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegCubicTo
)

// Segment is one path element. CubicTo uses C1, C2 as control points and P
// as the end point; the others only use P.
type Segment struct {
	Kind   SegmentKind
	C1, C2 Vec2
	P      Vec2
}

// Path is a single contour built from lines and cubic Bézier curves.
type Path struct {
	Segments []Segment
	Closed   bool
}

// NewPolygonPath returns a closed path through pts.
func NewPolygonPath(pts ...Vec2) *Path {
	p := &Path{}
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	p.Close()
	return p
}

// MoveTo starts the contour at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: SegMoveTo, P: Vec2{x, y}})
	return p
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: SegLineTo, P: Vec2{x, y}})
	return p
}

// CubicTo adds a cubic Bézier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{
		Kind: SegCubicTo,
		C1:   Vec2{c1x, c1y},
		C2:   Vec2{c2x, c2y},
		P:    Vec2{x, y},
	})
	return p
}

// Close marks the contour closed.
func (p *Path) Close() *Path {
	p.Closed = true
	return p
}

// Flatten converts the path into a polyline, subdividing each cubic into
// segs straight pieces. buf is reused when large enough.
func (p *Path) Flatten(buf []Vec2, segs int) []Vec2 {
	if segs <= 0 {
		segs = defaultCurveSegments
	}
	buf = buf[:0]
	var cur Vec2
	for _, s := range p.Segments {
		switch s.Kind {
		case SegMoveTo, SegLineTo:
			buf = append(buf, s.P)
			cur = s.P
		case SegCubicTo:
			if len(buf) == 0 {
				buf = append(buf, cur)
			}
			a, c1, c2, b := cur, s.C1, s.C2, s.P
			for i := 1; i <= segs; i++ {
				t := float64(i) / float64(segs)
				u := 1 - t
				u2 := u * u
				t2 := t * t
				buf = append(buf, Vec2{
					X: u2*u*a.X + 3*u2*t*c1.X + 3*u*t2*c2.X + t2*t*b.X,
					Y: u2*u*a.Y + 3*u2*t*c1.Y + 3*u*t2*c2.Y + t2*t*b.Y,
				})
			}
			cur = b
		}
	}
	return buf
}
