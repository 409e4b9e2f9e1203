package main

import (
	"log/slog"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/internal/config"
	"github.com/phanxgames/arbor/screen"
)

var _ screen.Grower = (*ecs.Forest)(nil)

// plant builds what the config asks to grow: a forest when one is
// configured, otherwise a single tree. It also returns the total number of
// instructions.
func plant(cfg config.Config, log *slog.Logger) (screen.Grower, int, error) {
	opts := []arbor.TreeOption{
		arbor.WithLogger(log),
		arbor.WithDuration(cfg.Duration),
		arbor.WithSeed(cfg.Seed),
	}

	if len(cfg.Forest) > 0 {
		f := ecs.NewForest()
		for _, p := range cfg.Forest {
			f.Plant(arbor.NewTree(p.Word, opts...), ecs.Placement{OffsetX: p.OffsetX, Delay: p.Delay})
		}
		return f, f.Instructions(), nil
	}

	word, err := resolveWord(cfg)
	if err != nil {
		return nil, 0, err
	}
	t := arbor.NewTree(word, opts...)
	return t, t.Program().Len(), nil
}
