package arbor

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestRotationMatrix90(t *testing.T) {
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", RotationMatrix(math.Pi/2), Affine{0, 1, -1, 0, 0, 0})
}

func TestRotationTurnsClockwiseOnScreen(t *testing.T) {
	// "up" on a y-down surface rotated a quarter turn points right.
	x, y := RotationMatrix(math.Pi/2).Apply(0, -1)
	assertVec(t, "up rotated", Vec2{x, y}, Vec2{1, 0})
}

func TestMulTranslateThenRotate(t *testing.T) {
	m := Translation(10, 20).Mul(RotationMatrix(math.Pi / 2))
	x, y := m.Apply(1, 0)
	assertVec(t, "point", Vec2{x, y}, Vec2{10, 21})
}

func TestRotationAndScaleFactor(t *testing.T) {
	m := Translation(4, 4).Mul(RotationMatrix(0.3))
	assertNear(t, "rotation", m.Rotation(), 0.3)
	assertNear(t, "scale", m.ScaleFactor(), 1)
}

func TestStateStackPushPop(t *testing.T) {
	s := newStateStack()
	s.SetFill(ColorBlack)
	s.Push()
	s.Translate(10, 0)
	s.SetFill(ColorWhite)
	if s.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", s.Depth())
	}
	s.Pop()
	assertMatrix(t, "restored", s.Transform(), Identity)
	if s.cur.fill != ColorBlack {
		t.Errorf("fill = %v, want black", s.cur.fill)
	}
}

func TestStateStackPopEmpty(t *testing.T) {
	s := newStateStack()
	s.Translate(3, 4)
	s.Pop()
	assertMatrix(t, "unchanged", s.Transform(), Translation(3, 4))
}
