package system

import (
	"testing"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/stage"
)

func TestAudioClearsRequests(t *testing.T) {
	for _, muted := range []bool{false, true} {
		w, b, _ := newTestWorld(t)
		ship, err := b.NewShip(w, 100, 100)
		if err != nil {
			t.Fatal(err)
		}
		a, _ := ecs.Get(w, ship, component.AudioComponent.Kind())
		if !a.Request(stage.SoundShoot) {
			t.Fatalf("ship has no %q clip", stage.SoundShoot)
		}
		if a.Request("explode") {
			t.Fatalf("unknown clip accepted")
		}

		sys := NewAudioSystem(muted)
		sys.Update(w)
		if a.Play[0] {
			t.Fatalf("muted=%v: play flag left set", muted)
		}
		if sys.Muted() != muted {
			t.Fatalf("Muted() = %v", sys.Muted())
		}
	}
}
