package system

import (
	"testing"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/ecs/entity"
	"github.com/muhamadriskonalfani/war-space/prefabs"
)

func newTestWorld(t *testing.T) (*ecs.World, *entity.Builder, *prefabs.Library) {
	t.Helper()
	lib, err := prefabs.NewLibrary("")
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	w := ecs.NewWorld()
	if _, err := entity.NewStageState(w, 800, 600); err != nil {
		t.Fatalf("NewStageState: %v", err)
	}
	return w, entity.NewBuilder(lib, nil, nil), lib
}

func overlaps(events []ecs.Event) []ecs.OverlapEvent {
	var out []ecs.OverlapEvent
	for _, ev := range events {
		if o, ok := ev.Data.(ecs.OverlapEvent); ok {
			out = append(out, o)
		}
	}
	return out
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr
}
