package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/muhamadriskonalfani/war-space/assets"
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/ecs/entity"
	"github.com/muhamadriskonalfani/war-space/ecs/system"
	"github.com/muhamadriskonalfani/war-space/stage"
	"go.uber.org/zap"
)

type battleScene struct {
	g   *Game
	log *zap.Logger

	world      *ecs.World
	state      ecs.Entity
	scheduler  *ecs.Scheduler
	stage      *system.StageSystem
	input      *system.InputSystem
	render     *system.RenderSystem
	physics    *system.PhysicsSystem
	audio      *system.AudioSystem
	hud        *hud
	background color.Color
}

func newBattleScene(g *Game) *battleScene {
	return &battleScene{g: g, log: g.log.Named("battle")}
}

// Preload decodes every sprite up front so the first wave does not stall.
func (s *battleScene) Preload() error {
	images, err := assets.List("img")
	if err != nil {
		return err
	}
	for _, path := range images {
		if _, err := assets.LoadImage(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *battleScene) Create() error {
	spec := s.g.lib.Stage()
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	s.background = spec.BackgroundColor()

	s.world = ecs.NewWorld()
	width, height := s.g.Size()
	s.state, err = entity.NewStageState(s.world, float64(width), float64(height))
	if err != nil {
		return err
	}

	rng := s.g.session.Rand()
	builder := entity.NewBuilder(s.g.lib, assets.Images{}, assets.Sounds{})
	s.stage, err = system.NewStageSystem(cfg, builder, rng, s.log, system.DefaultStep)
	if err != nil {
		return err
	}

	s.hud = newHUD(s.pushControl, s.g.toggleFullscreen)
	s.input = system.NewInputSystem(s.hud.Zones)
	s.render = system.NewRenderSystem()
	s.physics = system.NewPhysicsSystem(system.DefaultStep)
	s.audio = system.NewAudioSystem(s.g.settings.Game.Mute)
	s.scheduler = ecs.NewScheduler(
		s.input,
		s.stage,
		system.NewStarfieldSystem(s.g.lib, builder, rng, s.log, system.DefaultStep),
		system.NewMovementSystem(system.DefaultStep),
		s.physics,
		system.NewCullSystem(),
		s.audio,
	)

	s.log.Debug("battle created",
		zap.Int("battle", s.g.session.Battles),
		zap.Int("total", cfg.TotalUFOs),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return nil
}

func (s *battleScene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return s.g.scenes.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.audio.SetMuted(!s.audio.Muted())
		s.g.settings.Game.Mute = s.audio.Muted()
	}

	s.syncViewport()
	s.scheduler.Update(s.world)

	status, _ := ecs.Get(s.world, s.state, component.StageStatusComponent.Kind())
	width, height := s.g.Size()
	s.hud.Update(status, width, height)

	return s.consumeSceneRequest()
}

func (s *battleScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.render.Draw(s.world, screen)
	if s.g.debug {
		s.physics.DebugDraw(screen)
		_, height := s.g.Size()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick %d  bodies %d  entities %d", s.scheduler.Ticks(), s.physics.Bodies(), s.world.Len()), 4, height-32)
	}
	s.hud.Draw(screen)
}

func (s *battleScene) Teardown() {
	s.stage.Teardown()
	s.world = nil
}

func (s *battleScene) pushControl(sig stage.Signal, down bool) {
	if q, ok := ecs.Get(s.world, s.state, component.ControlQueueComponent.Kind()); ok {
		q.Push(sig, down)
	}
}

func (s *battleScene) syncViewport() {
	vp, ok := ecs.Get(s.world, s.state, component.ViewportComponent.Kind())
	if !ok {
		return
	}
	width, height := s.g.Size()
	vp.W, vp.H = float64(width), float64(height)
}

func (s *battleScene) consumeSceneRequest() error {
	req, ok := ecs.Get(s.world, s.state, component.SceneRequestComponent.Kind())
	if !ok {
		return nil
	}
	ecs.Remove(s.world, s.state, component.SceneRequestComponent.Kind())

	s.g.session.Outcome = req.Outcome
	if err := s.g.scenes.Advance(req.Scene); err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	return nil
}
