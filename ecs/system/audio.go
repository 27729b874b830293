package system

import (
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

// AudioSystem plays and stops clips flagged on Audio components. Muted, it
// still clears the flags so requests do not pile up.
type AudioSystem struct {
	muted bool
}

func NewAudioSystem(muted bool) *AudioSystem {
	return &AudioSystem{muted: muted}
}

func (a *AudioSystem) SetMuted(muted bool) {
	if a == nil {
		return
	}
	a.muted = muted
}

func (a *AudioSystem) Muted() bool {
	return a != nil && a.muted
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if player == nil || a.muted {
				continue
			}
			// A clip that is still playing restarts from the top.
			player.SetVolume(audioComp.Volume[i])
			if err := player.Rewind(); err != nil {
				continue
			}
			player.Play()
		}

		for i := 0; i < count && i < len(audioComp.Stop); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}
