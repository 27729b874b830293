package system

import (
	"time"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

// MovementSystem integrates Velocity for entities the physics space does not
// own, which in practice means the starfield.
type MovementSystem struct {
	step time.Duration
}

func NewMovementSystem(step time.Duration) *MovementSystem {
	if step <= 0 {
		step = DefaultStep
	}
	return &MovementSystem{step: step}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if m == nil || w == nil {
		return
	}
	dt := m.step.Seconds()
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Velocity) {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		t.Translate(*v, dt)
	})
}
