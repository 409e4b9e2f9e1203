package arbor

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", ColorWhite},
		{"#000000", ColorBlack},
		{"#FF0000", Color{1, 0, 0, 1}},
		{"ff0000", Color{A: 1}},
		{"#gg0000", Color{A: 1}},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.RGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
}

func TestLerpEndpointsExact(t *testing.T) {
	a, b := 0.1, 0.7
	if lerp(a, b, 0) != a || lerp(a, b, 1) != b {
		t.Error("lerp endpoints not exact")
	}
}

func TestRemapDegenerateDomain(t *testing.T) {
	assertNear(t, "degenerate", remap(3, 1, 1, 5, 9), 5)
	assertNear(t, "mid", remap(2, 0, 4, 4, 12), 8)
}

func TestVec2Ops(t *testing.T) {
	v := Vec2{3, 4}
	assertVec(t, "add", v.Add(Vec2{1, -2}), Vec2{4, 2})
	assertVec(t, "scale", v.Scale(-0.5), Vec2{-1.5, -2})
	assertNear(t, "len", v.Len(), 5)
}
