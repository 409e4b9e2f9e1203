// Package ecs grows a forest of independent trees as entities in a
// [Donburi] world.
//
// Every tree owns its own growth clock, so trees planted at different
// times grow at their own pace while sharing one surface:
//
//	forest := ecs.NewForest()
//	forest.Plant(arbor.NewTree(word), ecs.Placement{OffsetX: -200})
//	forest.Plant(arbor.NewTree(other), ecs.Placement{OffsetX: 200, Delay: time.Second})
//
// Completion is published as a [GrownEvent] on [GrownEventType].
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

import (
	"time"

	"github.com/phanxgames/arbor"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TreeData is the tree component.
type TreeData struct {
	Tree  *arbor.Tree
	Grown bool
}

// Placement positions a tree relative to the bottom center of the surface
// and delays the start of its growth.
type Placement struct {
	OffsetX float64
	Delay   time.Duration
}

// GrownEvent is published once when a tree reaches full growth.
type GrownEvent struct {
	Entity donburi.Entity
	At     time.Duration
}

var (
	TreeComponent      = donburi.NewComponentType[TreeData]()
	PlacementComponent = donburi.NewComponentType[Placement]()

	// GrownEventType carries GrownEvent. Subscribe to it with
	// GrownEventType.Subscribe; Forest.Tick processes the queue.
	GrownEventType = events.NewEventType[GrownEvent]()
)

// Forest ticks every planted tree onto a shared surface.
type Forest struct {
	world donburi.World
	trees *donburi.Query
	order []donburi.Entity
}

// NewForest returns an empty forest in a fresh world.
func NewForest() *Forest {
	return &Forest{
		world: donburi.NewWorld(),
		trees: donburi.NewQuery(filter.Contains(TreeComponent, PlacementComponent)),
	}
}

// World returns the underlying Donburi world.
func (f *Forest) World() donburi.World {
	return f.world
}

// Plant adds t at p and returns its entity.
func (f *Forest) Plant(t *arbor.Tree, p Placement) donburi.Entity {
	e := f.world.Create(TreeComponent, PlacementComponent)
	entry := f.world.Entry(e)
	TreeComponent.SetValue(entry, TreeData{Tree: t})
	PlacementComponent.SetValue(entry, p)
	f.order = append(f.order, e)
	return e
}

// Remove uproots the tree at e. Unknown entities are ignored.
func (f *Forest) Remove(e donburi.Entity) {
	if !f.world.Valid(e) {
		return
	}
	f.world.Remove(e)
	for i, o := range f.order {
		if o == e {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of trees.
func (f *Forest) Len() int {
	return f.trees.Count(f.world)
}

// Instructions returns the total instruction count over all trees.
func (f *Forest) Instructions() int {
	n := 0
	f.trees.Each(f.world, func(entry *donburi.Entry) {
		n += TreeComponent.Get(entry).Tree.Program().Len()
	})
	return n
}

// Start starts every tree whose delay has passed at now. Times are measured
// from the forest's own start, so a tree's clock always begins at its delay
// even when the first Tick comes later.
func (f *Forest) Start(now time.Duration) {
	f.trees.Each(f.world, func(entry *donburi.Entry) {
		if now >= PlacementComponent.Get(entry).Delay {
			TreeComponent.Get(entry).Tree.Start(0)
		}
	})
}

// Done reports whether every tree is fully grown at now.
func (f *Forest) Done(now time.Duration) bool {
	done := true
	f.trees.Each(f.world, func(entry *donburi.Entry) {
		p := PlacementComponent.Get(entry)
		if now < p.Delay || !TreeComponent.Get(entry).Tree.Done(now-p.Delay) {
			done = false
		}
	})
	return done
}

// Tick draws every tree in planting order, each in its own translated
// frame, and returns the summed stats. Trees still waiting on their delay
// draw nothing.
func (f *Forest) Tick(s arbor.Surface, now time.Duration) arbor.FrameStats {
	var total arbor.FrameStats
	for _, e := range f.order {
		entry := f.world.Entry(e)
		data := TreeComponent.Get(entry)
		p := PlacementComponent.Get(entry)
		if now < p.Delay {
			continue
		}
		local := now - p.Delay
		data.Tree.Start(0)

		s.Push()
		s.Translate(p.OffsetX, 0)
		st := data.Tree.Tick(s, local)
		s.Pop()

		total.Progress += st.Progress
		total.Wood = addPass(total.Wood, st.Wood)
		total.Fruit = addPass(total.Fruit, st.Fruit)
		total.Elapsed += st.Elapsed

		if !data.Grown && data.Tree.Done(local) {
			data.Grown = true
			GrownEventType.Publish(f.world, GrownEvent{Entity: e, At: now})
		}
	}
	GrownEventType.ProcessEvents(f.world)
	return total
}

func addPass(a, b arbor.PassStats) arbor.PassStats {
	return arbor.PassStats{
		Drawn:        a.Drawn + b.Drawn,
		Fruits:       a.Fruits + b.Fruits,
		OpenBranches: a.OpenBranches + b.OpenBranches,
	}
}
