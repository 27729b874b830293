package system

import (
	"math/rand"
	"time"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/entity"
	"github.com/muhamadriskonalfani/war-space/prefabs"
	"github.com/muhamadriskonalfani/war-space/stage"
	"go.uber.org/zap"
)

// StarfieldSystem emits background stars at the right edge on a fixed
// interval. Settings are re-read from the library so star.yaml reloads apply
// on the next emission.
type StarfieldSystem struct {
	lib     *prefabs.Library
	builder *entity.Builder
	rng     *rand.Rand
	log     *zap.Logger
	step    time.Duration

	timers   *stage.Scheduler
	timer    stage.TimerID
	interval time.Duration
	world    *ecs.World
}

func NewStarfieldSystem(lib *prefabs.Library, builder *entity.Builder, rng *rand.Rand, log *zap.Logger, step time.Duration) *StarfieldSystem {
	if step <= 0 {
		step = DefaultStep
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StarfieldSystem{
		lib:     lib,
		builder: builder,
		rng:     rng,
		log:     log,
		step:    step,
		timers:  stage.NewScheduler(),
	}
}

func (s *StarfieldSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.lib == nil {
		return
	}
	s.world = w

	interval := s.lib.Starfield().Interval
	if interval != s.interval || !s.timers.Active(s.timer) {
		s.timers.Cancel(s.timer)
		s.interval = interval
		s.timer = s.timers.Every(interval, s.emit)
	}
	s.timers.Advance(s.step)
}

func (s *StarfieldSystem) emit() {
	vp, ok := viewport(s.world)
	if !ok {
		return
	}
	spec := s.lib.Starfield()

	y := vp.H / 2
	if lo, hi := spec.YMargin, vp.H-spec.YMargin; hi > lo {
		y = lo + s.rng.Float64()*(hi-lo)
	}
	scale := roll(s.rng, spec.Scale)
	speed := roll(s.rng, spec.Speed)
	alpha := roll(s.rng, spec.Alpha)

	if _, err := s.builder.NewStar(s.world, vp.W, y, scale, -speed, alpha); err != nil {
		s.log.Warn("star spawn failed", zap.Error(err))
	}
}

func roll(rng *rand.Rand, r prefabs.Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
