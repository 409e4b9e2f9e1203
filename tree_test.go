package arbor

import (
	"reflect"
	"testing"
	"time"
)

const exampleWord = "T(30)[+F(0.9,5)]T(20)"

func TestTreeTickLazyStart(t *testing.T) {
	tree := NewTree(exampleWord)
	r := NewRecorder(400, 300)

	stats := tree.Tick(r, 2*time.Second)
	if stats.Progress != 0 {
		t.Errorf("first Tick progress = %v, want 0", stats.Progress)
	}
	if tree.Done(2 * time.Second) {
		t.Error("Done on first frame")
	}

	stats = tree.Tick(r, 2*time.Second+GrowthDuration)
	if stats.Progress != 6 {
		t.Errorf("final progress = %v, want 6", stats.Progress)
	}
	if !tree.Done(2*time.Second + GrowthDuration) {
		t.Error("not Done after GrowthDuration")
	}
}

func TestTreeProgressBeforeStart(t *testing.T) {
	tree := NewTree(exampleWord)
	if got := tree.Progress(time.Minute); got != 0 {
		t.Errorf("Progress = %v, want 0", got)
	}
}

func TestPassesAgreeOnGeometry(t *testing.T) {
	tree := NewTree("T(30)[+M(8)[-W(3)F(0.2,4)]T(12)[+F(0.7,30)]]T(20)[-F(0.5,1)]")
	prog := tree.Program()
	origin := Vec2{200, 300}

	for _, progress := range []float64{3.3, 7.9, 12.5, float64(prog.Len())} {
		poses := tree.Trace(origin, progress)
		before := func(i int) Vec2 {
			if i == 0 {
				return origin
			}
			return poses[i-1].Pos
		}

		wood := NewRecorder(400, 300)
		tree.Pass(wood, ModeWood, progress)
		calls := wood.Calls
		for i, in := range prog.Instructions {
			if in.Op != OpTrunk && in.Op != OpMove && in.Op != OpPush {
				continue
			}
			if RevealScale(i, progress) <= 0 {
				continue
			}
			if len(calls) == 0 {
				t.Fatalf("progress %v: no wood call for instruction %d", progress, i)
			}
			call := calls[0]
			calls = calls[1:]

			var end Vec2
			switch call.Kind {
			case DrawShape:
				top := call.Path.Segments[2].P.Add(call.Path.Segments[3].P).Scale(0.5)
				end = call.Transform.ApplyVec(top)
			case DrawLine:
				end = call.Transform.ApplyVec(call.Points[1])
			default:
				t.Fatalf("progress %v: wood call %v for instruction %d", progress, call.Kind, i)
			}
			assertVec(t, "wood start", call.Origin(), before(i))
			assertVec(t, "wood end", end, poses[i].Pos)
		}
		if len(calls) != 0 {
			t.Errorf("progress %v: %d unmatched wood calls", progress, len(calls))
		}

		fruit := NewRecorder(400, 300)
		tree.Pass(fruit, ModeFruit, progress)
		var stems []DrawCall
		for _, c := range fruit.Calls {
			if c.Kind == DrawLine {
				stems = append(stems, c)
			}
		}
		for i, in := range prog.Instructions {
			if in.Op != OpFruit || RevealScale(i, progress) <= FruitMinScale {
				continue
			}
			if len(stems) == 0 {
				t.Fatalf("progress %v: no stem for fruit at %d", progress, i)
			}
			stem := stems[0]
			stems = stems[1:]
			assertVec(t, "stem base", stem.Origin(), poses[i].Pos)
			tip := stem.Transform.ApplyVec(stem.Points[1])
			assertNear(t, "stem hangs straight", tip.X, poses[i].Pos.X)
		}
		if len(stems) != 0 {
			t.Errorf("progress %v: %d unmatched stems", progress, len(stems))
		}
	}
}

func TestFruitSitsOnBranch(t *testing.T) {
	tree := NewTree(exampleWord)
	full := float64(tree.Program().Len())
	poses := tree.Trace(Vec2{200, 300}, full)

	r := NewRecorder(400, 300)
	stats := tree.Pass(r, ModeFruit, full)
	if stats.Fruits != 1 {
		t.Fatalf("fruits drawn = %d, want 1", stats.Fruits)
	}
	stem := r.Calls[0]
	if stem.Kind != DrawLine {
		t.Fatalf("first fruit call = %v, want stem line", stem.Kind)
	}
	assertVec(t, "stem base", stem.Origin(), poses[3].Pos)
	assertNear(t, "stem upright", stem.Transform.Rotation(), 0)
}

func TestFruitFullWhileLastTrunkGrows(t *testing.T) {
	tree := NewTree(exampleWord)
	r := NewRecorder(400, 300)

	// Index 5 (second trunk) is half revealed; the fruit at index 3 is done.
	fruit := tree.Pass(r, ModeFruit, 5.5)
	if fruit.Fruits != 1 {
		t.Fatalf("fruits drawn = %d, want 1", fruit.Fruits)
	}
	hl := r.Calls[len(r.Calls)-1]
	assertNear(t, "full-size fruit", hl.W, FruitSize(5, 1)*0.45)

	r.Reset()
	wood := tree.Pass(r, ModeWood, 5.5)
	last := r.Calls[len(r.Calls)-1]
	if last.Kind != DrawShape {
		t.Fatalf("last wood call = %v, want trunk shape", last.Kind)
	}
	// ease-out(0.5) = 0.75 of 20
	topY := last.Path.Segments[2].P.Y
	if topY > -14.99 || topY < -15.01 {
		t.Errorf("partial trunk height = %v, want 15", -topY)
	}
	if wood.Drawn != 3 {
		t.Errorf("wood marks drawn = %d, want 3 (trunk, bare branch, trunk)", wood.Drawn)
	}
}

func TestFruitHiddenWhileActiveAtStart(t *testing.T) {
	tree := NewTree(exampleWord)
	r := NewRecorder(400, 300)
	if stats := tree.Pass(r, ModeFruit, 3); stats.Fruits != 0 {
		t.Errorf("fruit drawn at its own activation instant")
	}
	if stats := tree.Pass(r, ModeFruit, 3.004); stats.Fruits != 0 {
		t.Errorf("fruit below FruitMinScale drawn")
	}
}

func TestEmptyWordDrawsNothing(t *testing.T) {
	tree := NewTree("")
	r := NewRecorder(400, 300)
	stats := tree.Tick(r, 0)
	stats = tree.Tick(r, time.Hour)
	if len(r.Calls) != 0 {
		t.Errorf("empty tree recorded %d calls", len(r.Calls))
	}
	if stats.Wood != (PassStats{}) || stats.Fruit != (PassStats{}) {
		t.Errorf("stats = %+v, want zero passes", stats)
	}

	g := NewGround()
	g.Update(GroundFadeIn)
	if n := g.Draw(r, 0); n == 0 {
		t.Error("ground drew nothing alongside empty tree")
	}
}

func TestUnterminatedBranchIsHarmless(t *testing.T) {
	tree := NewTree("T(30)[+F(0.9,5)")
	r := NewRecorder(400, 300)
	stats := tree.Tick(r, 0)
	stats = tree.Tick(r, GrowthDuration)

	if stats.Wood.OpenBranches != 1 || stats.Fruit.OpenBranches != 1 {
		t.Errorf("open branches = %d/%d, want 1/1", stats.Wood.OpenBranches, stats.Fruit.OpenBranches)
	}
	if stats.Fruit.Fruits != 1 {
		t.Errorf("fruits = %d, want 1", stats.Fruit.Fruits)
	}
	if r.Depth() != 0 {
		t.Errorf("surface depth = %d, want balanced", r.Depth())
	}
}

func TestTickIsStableAcrossFrames(t *testing.T) {
	tree := NewTree("T(30)[+M(8)[-W(3)F(0.2,4)]]T(20)[-F(0.9,12)]")
	a := NewRecorder(400, 300)
	b := NewRecorder(400, 300)

	tree.Tick(a, 0)
	a.Reset()
	tree.Tick(a, 3*time.Second)
	tree.Tick(b, 3*time.Second)

	if !reflect.DeepEqual(a.Calls, b.Calls) {
		t.Error("same frame time produced different draw calls")
	}
}

func TestTreeOriginBottomCenter(t *testing.T) {
	tree := NewTree("T(30)")
	r := NewRecorder(640, 480)
	tree.Pass(r, ModeWood, 1)
	if len(r.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(r.Calls))
	}
	assertVec(t, "trunk base", r.Calls[0].Origin(), Vec2{320, 480})
}

func TestWithOptions(t *testing.T) {
	a := NewTree("[+T(5)]", WithSeed(1), WithDuration(time.Second))
	b := NewTree("[+T(5)]", WithSeed(2))

	a.Start(0)
	if got := a.Progress(time.Second); got != 4 {
		t.Errorf("progress with 1s duration = %v, want 4", got)
	}
	pa := a.Trace(Vec2{}, 3)
	pb := b.Trace(Vec2{}, 3)
	if pa[0].Pos == pb[0].Pos {
		t.Error("different seeds gave the same bare branch")
	}
}
