package arbor

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul returns p * c (c applied first).
func (p Affine) Mul(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyVec transforms v.
func (m Affine) ApplyVec(v Vec2) Vec2 {
	x, y := m.Apply(v.X, v.Y)
	return Vec2{x, y}
}

// Rotation returns the rotation angle encoded in m, assuming no skew.
func (m Affine) Rotation() float64 {
	return math.Atan2(m[1], m[0])
}

// ScaleFactor returns the mean axis scale of m, used to scale stroke widths.
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// Translation returns a translation matrix.
func Translation(x, y float64) Affine {
	return Affine{1, 0, 0, 1, x, y}
}

// RotationMatrix returns a rotation by rad; positive turns clockwise on a
// y-down surface.
func RotationMatrix(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// drawState is the style and transform saved by Surface.Push.
type drawState struct {
	transform   Affine
	fill        Color
	stroke      Color
	strokeWidth float64
}

func defaultDrawState() drawState {
	return drawState{
		transform:   Identity,
		fill:        ColorWhite,
		stroke:      ColorBlack,
		strokeWidth: 1,
	}
}

// stateStack implements the state half of Surface for Canvas and Recorder.
type stateStack struct {
	cur   drawState
	saved []drawState
}

func newStateStack() stateStack {
	return stateStack{cur: defaultDrawState()}
}

func (s *stateStack) SetFill(c Color)          { s.cur.fill = c }
func (s *stateStack) SetStroke(c Color)        { s.cur.stroke = c }
func (s *stateStack) SetStrokeWidth(w float64) { s.cur.strokeWidth = math.Max(w, 0) }

func (s *stateStack) Translate(x, y float64) {
	s.cur.transform = s.cur.transform.Mul(Translation(x, y))
}

func (s *stateStack) Rotate(rad float64) {
	s.cur.transform = s.cur.transform.Mul(RotationMatrix(rad))
}

func (s *stateStack) Push() {
	s.saved = append(s.saved, s.cur)
}

// Pop restores the last pushed state; with nothing pushed it does nothing.
func (s *stateStack) Pop() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// reset clears the stack back to the default state.
func (s *stateStack) reset() {
	s.cur = defaultDrawState()
	s.saved = s.saved[:0]
}

// Transform returns the current world transform.
func (s *stateStack) Transform() Affine {
	return s.cur.transform
}

// Depth returns the number of saved states.
func (s *stateStack) Depth() int {
	return len(s.saved)
}
