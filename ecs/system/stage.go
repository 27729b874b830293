package system

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/ecs/entity"
	"github.com/muhamadriskonalfani/war-space/stage"
	"go.uber.org/zap"
)

// StageSystem drives a stage.Controller from the ECS world and is the
// controller's Engine. Each tick it feeds queued controls and the previous
// tick's collision and cull events into the controller, then advances its
// timers by one step.
type StageSystem struct {
	ctrl    *stage.Controller
	builder *entity.Builder
	log     *zap.Logger
	step    time.Duration

	world   *ecs.World
	outcome stage.Outcome
}

func NewStageSystem(cfg stage.Config, builder *entity.Builder, rng *rand.Rand, log *zap.Logger, step time.Duration) (*StageSystem, error) {
	if builder == nil {
		return nil, fmt.Errorf("stage system: builder is nil")
	}
	if step <= 0 {
		step = DefaultStep
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &StageSystem{builder: builder, log: log, step: step}
	ctrl, err := stage.NewController(cfg, s, rng, log)
	if err != nil {
		return nil, fmt.Errorf("stage system: %w", err)
	}
	s.ctrl = ctrl
	return s, nil
}

func (s *StageSystem) Controller() *stage.Controller {
	if s == nil {
		return nil
	}
	return s.ctrl
}

func (s *StageSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.world = w
	s.ctrl.Start()

	s.drainControls(w)
	s.drainEvents(w)
	s.ctrl.Update(s.step)
	s.publishStatus(w)
}

// Teardown stops the controller's timers; the scene drops the world.
func (s *StageSystem) Teardown() {
	if s == nil {
		return
	}
	s.ctrl.Teardown()
}

func (s *StageSystem) drainControls(w *ecs.World) {
	e, ok := w.First(component.ControlQueueComponent.Kind())
	if !ok {
		return
	}
	q, ok := ecs.Get(w, e, component.ControlQueueComponent.Kind())
	if !ok {
		return
	}
	for _, ev := range q.Drain() {
		if ev.Down {
			s.ctrl.Press(ev.Signal)
		} else {
			s.ctrl.Release(ev.Signal)
		}
	}
}

func (s *StageSystem) drainEvents(w *ecs.World) {
	for _, ev := range w.Events().Drain() {
		switch data := ev.Data.(type) {
		case ecs.OverlapEvent:
			switch data.Pair {
			case ecs.PairBulletUFO:
				s.ctrl.OnBulletHitUFO(handle(data.A), handle(data.B))
			case ecs.PairShipUFO:
				s.ctrl.OnShipHitUFO(handle(data.B))
			}
		case ecs.OutOfBoundsEvent:
			s.ctrl.OnOutOfBounds(handle(data.Entity))
		default:
			s.log.Debug("unhandled event", zap.String("type", ev.Type))
		}
	}
}

func (s *StageSystem) publishStatus(w *ecs.World) {
	e, ok := w.First(component.StageStatusComponent.Kind())
	if !ok {
		return
	}
	status, ok := ecs.Get(w, e, component.StageStatusComponent.Kind())
	if !ok {
		return
	}
	status.Stage = s.ctrl.Stage()
	status.Counter = s.ctrl.Counter()
	status.Outcome = s.ctrl.Outcome()
	status.Shooting = s.ctrl.Shooting()
}

func handle(e ecs.Entity) stage.Handle {
	return stage.Handle(uint64(e))
}

func entityOf(h stage.Handle) ecs.Entity {
	return ecs.Entity(uint64(h))
}

func (s *StageSystem) Spawn(req stage.SpawnRequest) stage.Handle {
	if s.world == nil {
		return 0
	}
	var (
		e   ecs.Entity
		err error
	)
	switch req.Kind {
	case stage.KindShip:
		e, err = s.builder.NewShip(s.world, req.X, req.Y)
	case stage.KindUFO:
		e, err = s.builder.NewUFO(s.world, req.Variant, req.X, req.Y, req.VX, req.VY)
	case stage.KindBullet:
		e, err = s.builder.NewBullet(s.world, req.X, req.Y, req.VX, req.VY)
	default:
		err = fmt.Errorf("unknown kind %d", req.Kind)
	}
	if err != nil {
		s.log.Error("spawn failed", zap.Stringer("kind", req.Kind), zap.Error(err))
		return 0
	}
	return handle(e)
}

func (s *StageSystem) Destroy(h stage.Handle) {
	if s.world == nil || h == 0 {
		return
	}
	ecs.DestroyEntity(s.world, entityOf(h))
}

func (s *StageSystem) SetVelocity(h stage.Handle, vx, vy float64) {
	if s.world == nil || !s.world.IsAlive(entityOf(h)) {
		return
	}
	_ = entity.SetEntityVelocity(s.world, entityOf(h), vx, vy)
}

func (s *StageSystem) Position(h stage.Handle) (float64, float64, bool) {
	if s.world == nil {
		return 0, 0, false
	}
	t, ok := ecs.Get(s.world, entityOf(h), component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

func (s *StageSystem) SetCollideWorldBounds(h stage.Handle, collide bool) {
	if s.world == nil {
		return
	}
	if pb, ok := ecs.Get(s.world, entityOf(h), component.PhysicsBodyComponent.Kind()); ok {
		pb.CollideBounds = collide
	}
}

func (s *StageSystem) Viewport() (float64, float64) {
	if s.world == nil {
		return 0, 0
	}
	vp, ok := viewport(s.world)
	if !ok {
		return 0, 0
	}
	return vp.W, vp.H
}

func (s *StageSystem) PlaySound(name string) {
	if s.world == nil {
		return
	}
	played := false
	ecs.ForEach(s.world, component.AudioComponent.Kind(), func(_ ecs.Entity, a *component.Audio) {
		if !played {
			played = a.Request(name)
		}
	})
}

func (s *StageSystem) Notify(outcome stage.Outcome) {
	s.outcome = outcome
}

// Outcome is the last result the controller reported.
func (s *StageSystem) Outcome() stage.Outcome {
	if s == nil {
		return stage.OutcomeNone
	}
	return s.outcome
}

func (s *StageSystem) AdvanceToScene(name string) {
	if s.world == nil {
		return
	}
	e, ok := s.world.First(component.ViewportComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(s.world)
	}
	req := &component.SceneRequest{Scene: name, Outcome: s.outcome}
	if err := ecs.Add(s.world, e, component.SceneRequestComponent.Kind(), req); err != nil {
		s.log.Error("scene request failed", zap.String("scene", name), zap.Error(err))
	}
}
