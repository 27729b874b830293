package main

import (
	"math/rand"
	"time"

	"github.com/muhamadriskonalfani/war-space/stage"
)

// Session carries state between scenes: the last stage outcome and the
// random source shared by every battle.
type Session struct {
	Outcome stage.Outcome
	Battles int

	rng *rand.Rand
}

func NewSession(seed int64) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Session{rng: rand.New(rand.NewSource(seed))}
}

// Rand returns a fresh source for one battle, derived from the session seed
// so a fixed seed replays the same sequence of battles.
func (s *Session) Rand() *rand.Rand {
	s.Battles++
	return rand.New(rand.NewSource(s.rng.Int63()))
}
