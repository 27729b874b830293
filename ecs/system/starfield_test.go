package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

func TestStarfieldEmitsOnInterval(t *testing.T) {
	w, b, lib := newTestWorld(t)
	sf := NewStarfieldSystem(lib, b, rand.New(rand.NewSource(7)), nil, 100*time.Millisecond)

	// 500ms interval from star.yaml: ticks 5 and 10 emit.
	for i := 0; i < 12; i++ {
		sf.Update(w)
	}

	stars := w.Query(component.StarTagComponent.Kind())
	if len(stars) != 2 {
		t.Fatalf("got %d stars, want 2", len(stars))
	}

	spec := lib.Starfield()
	for _, e := range stars {
		tr := transformOf(t, w, e)
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		switch {
		case tr.X != 800:
			t.Fatalf("star x = %v, want the right edge", tr.X)
		case tr.Y < spec.YMargin || tr.Y > 600-spec.YMargin:
			t.Fatalf("star y = %v outside margins", tr.Y)
		case tr.ScaleX < spec.Scale.Min || tr.ScaleX > spec.Scale.Max:
			t.Fatalf("star scale = %v", tr.ScaleX)
		case -v.X < spec.Speed.Min || -v.X > spec.Speed.Max || v.Y != 0:
			t.Fatalf("star velocity = %+v", v)
		case s.Alpha < spec.Alpha.Min || s.Alpha > spec.Alpha.Max:
			t.Fatalf("star alpha = %v", s.Alpha)
		}
	}
}
