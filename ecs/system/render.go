package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Draw renders every sprite by layer, then by entity id within a layer.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := drawOrder(w)
	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil {
			continue
		}
		screen.DrawImage(s.Image, spriteOptions(t, s, s.Image.Bounds().Dx(), s.Image.Bounds().Dy()))
	}
}

func drawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func spriteOptions(t *component.Transform, s *component.Sprite, imgW, imgH int) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}

	ox, oy := s.OriginX, s.OriginY
	if s.Centered {
		ox, oy = float64(imgW)/2, float64(imgH)/2
	}
	op.GeoM.Translate(-ox, -oy)

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.X, t.Y)

	if s.Alpha > 0 && s.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(s.Alpha))
	}
	op.Filter = ebiten.FilterLinear
	return op
}
