package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates a single float64 field. Call Update(dt) each frame; the
// value is written through to the field. There is no global animation
// manager, owners drive their own tweens.
type Tween struct {
	tween *gween.Tween
	field *float64
	Done  bool
}

// NewTween animates *field from its current value to `to` over duration
// seconds using fn.
func NewTween(field *float64, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return &Tween{
		tween: gween.New(float32(*field), float32(to), duration, fn),
		field: field,
	}
}

// Update advances the tween by dt seconds.
func (t *Tween) Update(dt float32) {
	if t == nil || t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	*t.field = float64(val)
	t.Done = finished
}
