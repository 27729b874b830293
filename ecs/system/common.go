package system

import (
	"time"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

// DefaultStep is one tick at ebiten's default 60 TPS.
const DefaultStep = time.Second / 60

func viewport(w *ecs.World) (*component.Viewport, bool) {
	e, ok := w.First(component.ViewportComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.ViewportComponent.Kind())
}
