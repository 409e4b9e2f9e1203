package ecs

import (
	"math"
	"testing"
	"time"

	"github.com/phanxgames/arbor"
	"github.com/yohamta/donburi"
)

func near(a, b arbor.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPlantAndLen(t *testing.T) {
	f := NewForest()
	if f.Len() != 0 {
		t.Fatalf("Len = %d, want 0", f.Len())
	}
	a := f.Plant(arbor.NewTree("T(30)"), Placement{})
	f.Plant(arbor.NewTree("T(10)T(10)"), Placement{OffsetX: 50})
	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
	if f.Instructions() != 3 {
		t.Errorf("Instructions = %d, want 3", f.Instructions())
	}

	f.Remove(a)
	f.Remove(a) // already gone
	if f.Len() != 1 || len(f.order) != 1 {
		t.Errorf("after Remove: Len = %d, order = %d, want 1", f.Len(), len(f.order))
	}
}

func TestTickTranslatesEachTree(t *testing.T) {
	f := NewForest()
	f.Plant(arbor.NewTree("T(30)", arbor.WithDuration(time.Second)), Placement{OffsetX: -100})
	f.Plant(arbor.NewTree("T(30)", arbor.WithDuration(time.Second)), Placement{OffsetX: 100})

	r := arbor.NewRecorder(400, 300)
	f.Start(0)
	stats := f.Tick(r, 2*time.Second)

	if stats.Wood.Drawn != 2 {
		t.Fatalf("wood drawn = %d, want 2", stats.Wood.Drawn)
	}
	if stats.Progress != 2 {
		t.Errorf("progress = %v, want 2", stats.Progress)
	}
	if got := r.Calls[0].Origin(); !near(got, arbor.Vec2{X: 100, Y: 300}) {
		t.Errorf("first trunk at %v, want (100, 300)", got)
	}
	if got := r.Calls[1].Origin(); !near(got, arbor.Vec2{X: 300, Y: 300}) {
		t.Errorf("second trunk at %v, want (300, 300)", got)
	}
	if r.Depth() != 0 {
		t.Error("Tick left the surface stack unbalanced")
	}
}

func TestDelayedTreeWaits(t *testing.T) {
	f := NewForest()
	f.Plant(arbor.NewTree("T(30)", arbor.WithDuration(time.Second)), Placement{})
	late := arbor.NewTree("T(30)", arbor.WithDuration(time.Second))
	f.Plant(late, Placement{Delay: 3 * time.Second})

	r := arbor.NewRecorder(400, 300)
	f.Start(0)
	stats := f.Tick(r, 2*time.Second)
	if stats.Wood.Drawn != 1 {
		t.Errorf("drawn = %d, want only the first tree", stats.Wood.Drawn)
	}
	if f.Done(2 * time.Second) {
		t.Error("Done while a tree has not started")
	}

	// The late tree starts on its first tick after the delay.
	f.Tick(r, 3*time.Second)
	if late.Progress(500*time.Millisecond) <= 0 {
		t.Error("late tree did not start at its delay")
	}
	f.Tick(r, 5*time.Second)
	if !f.Done(5 * time.Second) {
		t.Error("forest not Done after every tree grew")
	}
}

func TestGrownEventOncePerTree(t *testing.T) {
	f := NewForest()
	a := f.Plant(arbor.NewTree("T(30)", arbor.WithDuration(time.Second)), Placement{})
	b := f.Plant(arbor.NewTree("T(30)", arbor.WithDuration(time.Second)), Placement{Delay: time.Second})

	var got []GrownEvent
	GrownEventType.Subscribe(f.World(), func(w donburi.World, e GrownEvent) {
		got = append(got, e)
	})

	r := arbor.NewRecorder(100, 100)
	f.Start(0)
	for _, now := range []time.Duration{0, 1500 * time.Millisecond, 2 * time.Second, 3 * time.Second, 4 * time.Second} {
		f.Tick(r, now)
	}

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Entity != a || got[0].At != 1500*time.Millisecond {
		t.Errorf("event 0 = %+v", got[0])
	}
	if got[1].Entity != b || got[1].At != 2*time.Second {
		t.Errorf("event 1 = %+v", got[1])
	}
}
