package arbor

// DrawKind identifies a recorded draw call.
type DrawKind uint8

const (
	DrawShape DrawKind = iota
	DrawLine
	DrawEllipse
)

func (k DrawKind) String() string {
	switch k {
	case DrawShape:
		return "shape"
	case DrawLine:
		return "line"
	case DrawEllipse:
		return "ellipse"
	}
	return "unknown"
}

// DrawCall is one recorded draw with the state it was issued under.
type DrawCall struct {
	Kind        DrawKind
	Transform   Affine
	Fill        Color
	Stroke      Color
	StrokeWidth float64

	Path   *Path   // DrawShape
	Points [2]Vec2 // DrawLine, local space
	Center Vec2    // DrawEllipse, local space
	W, H   float64 // DrawEllipse diameters
}

// Origin returns the world position of the call's local origin.
func (d DrawCall) Origin() Vec2 {
	return d.Transform.ApplyVec(Vec2{})
}

// Recorder is a Surface that records draw calls instead of rasterizing
// them. It backs tests and the inspect tooling.
type Recorder struct {
	stateStack

	W, H  float64
	Calls []DrawCall
}

// NewRecorder returns an empty recorder reporting the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{stateStack: newStateStack(), W: w, H: h}
}

// Size implements Surface.
func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Reset drops recorded calls and the state stack.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.stateStack.reset()
}

func (r *Recorder) record(d DrawCall) {
	d.Transform = r.cur.transform
	d.Fill = r.cur.fill
	d.Stroke = r.cur.stroke
	d.StrokeWidth = r.cur.strokeWidth
	r.Calls = append(r.Calls, d)
}

// Shape implements Surface. The path is copied.
func (r *Recorder) Shape(p *Path) {
	if p == nil {
		return
	}
	cp := &Path{Segments: append([]Segment(nil), p.Segments...), Closed: p.Closed}
	r.record(DrawCall{Kind: DrawShape, Path: cp})
}

// Line implements Surface.
func (r *Recorder) Line(x0, y0, x1, y1 float64) {
	r.record(DrawCall{Kind: DrawLine, Points: [2]Vec2{{x0, y0}, {x1, y1}}})
}

// Ellipse implements Surface.
func (r *Recorder) Ellipse(cx, cy, w, h float64) {
	r.record(DrawCall{Kind: DrawEllipse, Center: Vec2{cx, cy}, W: w, H: h})
}

// Count returns how many recorded calls have kind k.
func (r *Recorder) Count(k DrawKind) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == k {
			n++
		}
	}
	return n
}
