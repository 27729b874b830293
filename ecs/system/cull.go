package system

import (
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

// CullSystem handles entities that drift past the viewport. Silent ones are
// destroyed on the spot; Notify ones get a single OutOfBoundsEvent each.
type CullSystem struct {
	reported map[ecs.Entity]struct{}
}

func NewCullSystem() *CullSystem {
	return &CullSystem{reported: make(map[ecs.Entity]struct{})}
}

func (c *CullSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	for e := range c.reported {
		if !w.IsAlive(e) {
			delete(c.reported, e)
		}
	}

	vp, ok := viewport(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.CullableComponent.Kind(), func(e ecs.Entity, t *component.Transform, cull *component.Cullable) {
		if !outside(t, cull.Margin, vp) {
			return
		}
		if !cull.Notify {
			ecs.DestroyEntity(w, e)
			return
		}
		if _, done := c.reported[e]; done {
			return
		}
		c.reported[e] = struct{}{}
		w.Events().Push(ecs.Event{Type: ecs.EventOutOfBounds, Data: ecs.OutOfBoundsEvent{Entity: e}})
	})
}

func outside(t *component.Transform, margin float64, vp *component.Viewport) bool {
	return t.X < -margin || t.X > vp.W+margin || t.Y < -margin || t.Y > vp.H+margin
}
