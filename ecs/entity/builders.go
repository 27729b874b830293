package entity

import (
	"fmt"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/prefabs"
)

func (b *Builder) NewShip(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := b.build(w, prefabs.ShipPrefab, 0)
	if err != nil {
		return 0, err
	}
	return e, place(w, e, x, y, 0, 0)
}

func (b *Builder) NewUFO(w *ecs.World, variant int, x, y, vx, vy float64) (ecs.Entity, error) {
	if variant <= 0 {
		return 0, fmt.Errorf("build entity: ufo variant %d", variant)
	}
	e, err := b.build(w, prefabs.UFOPrefab, variant)
	if err != nil {
		return 0, err
	}
	return e, place(w, e, x, y, vx, vy)
}

func (b *Builder) NewBullet(w *ecs.World, x, y, vx, vy float64) (ecs.Entity, error) {
	e, err := b.build(w, prefabs.BulletPrefab, 0)
	if err != nil {
		return 0, err
	}
	return e, place(w, e, x, y, vx, vy)
}

// NewStar overrides the prefab's scale and alpha with the emitter's roll.
func (b *Builder) NewStar(w *ecs.World, x, y, scale, vx, alpha float64) (ecs.Entity, error) {
	e, err := b.build(w, prefabs.StarPrefab, 0)
	if err != nil {
		return 0, err
	}
	if err := place(w, e, x, y, vx, 0); err != nil {
		return 0, err
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && scale > 0 {
		t.SetScale(scale)
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && alpha > 0 {
		s.Alpha = alpha
	}
	return e, nil
}

// NewStageState creates the singleton entity that carries the viewport, the
// control queue and the HUD status.
func NewStageState(w *ecs.World, width, height float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ViewportComponent.Kind(), &component.Viewport{W: width, H: height}); err != nil {
		return 0, fmt.Errorf("build stage state: %w", err)
	}
	if err := ecs.Add(w, e, component.ControlQueueComponent.Kind(), &component.ControlQueue{}); err != nil {
		return 0, fmt.Errorf("build stage state: %w", err)
	}
	if err := ecs.Add(w, e, component.StageStatusComponent.Kind(), &component.StageStatus{}); err != nil {
		return 0, fmt.Errorf("build stage state: %w", err)
	}
	return e, nil
}

// SetEntityTransform moves e, creating a unit-scale transform if it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// SetEntityVelocity replaces e's velocity, adding the component if missing.
func SetEntityVelocity(w *ecs.World, e ecs.Entity, vx, vy float64) error {
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		v = &component.Velocity{}
	}
	v.X, v.Y = vx, vy
	return ecs.Add(w, e, component.VelocityComponent.Kind(), v)
}

func place(w *ecs.World, e ecs.Entity, x, y, vx, vy float64) error {
	if err := SetEntityTransform(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return fmt.Errorf("build entity: place: %w", err)
	}
	if err := SetEntityVelocity(w, e, vx, vy); err != nil {
		ecs.DestroyEntity(w, e)
		return fmt.Errorf("build entity: place: %w", err)
	}
	return nil
}
