package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/muhamadriskonalfani/war-space/config"
	"github.com/muhamadriskonalfani/war-space/prefabs"
	"github.com/muhamadriskonalfani/war-space/scene"
	"go.uber.org/zap"
)

const (
	sceneMenu   = "menu"
	sceneBattle = "battle"
	sceneResult = "result"
)

type Game struct {
	settings *config.Settings
	lib      *prefabs.Library
	watcher  *prefabs.Watcher
	log      *zap.Logger
	debug    bool

	scenes  *scene.Manager
	session *Session

	width  int
	height int
}

func NewGame(settings *config.Settings, lib *prefabs.Library, watcher *prefabs.Watcher, log *zap.Logger, debug bool) (*Game, error) {
	g := &Game{
		settings: settings,
		lib:      lib,
		watcher:  watcher,
		log:      log,
		debug:    debug,
		scenes:   scene.NewManager(log.Named("scene")),
		session:  NewSession(settings.Game.Seed),
		width:    settings.Window.Width,
		height:   settings.Window.Height,
	}

	g.scenes.Register(sceneMenu, func() (scene.Scene, error) { return newMenuScene(g), nil })
	g.scenes.Register(sceneBattle, func() (scene.Scene, error) { return newBattleScene(g), nil })
	g.scenes.Register(sceneResult, func() (scene.Scene, error) { return newResultScene(g), nil })

	if err := g.scenes.Start(settings.Game.StartScene); err != nil {
		return nil, fmt.Errorf("start scene: %w", err)
	}
	return g, nil
}

func (g *Game) Update() error {
	g.pollPrefabChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.toggleFullscreen()
	}
	return g.scenes.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f  FPS: %.0f  scene: %s", ebiten.ActualTPS(), ebiten.ActualFPS(), g.scenes.Current()), 4, g.height-16)
	}
}

// Layout tracks the window size so the playfield follows resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Close() {
	g.scenes.Close()
}

func (g *Game) toggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

// pollPrefabChanges applies watcher events without blocking the frame.
// Reloaded prefabs take effect for entities built afterwards.
func (g *Game) pollPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			handled, err := g.lib.Reload(name)
			switch {
			case err != nil:
				g.log.Warn("prefab reload failed, keeping previous version", zap.String("file", name), zap.Error(err))
			case handled:
				g.log.Info("prefab reloaded", zap.String("file", name))
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}
