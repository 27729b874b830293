package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type menuScene struct {
	g     *Game
	ui    *ebitenui.UI
	start bool
}

func newMenuScene(g *Game) *menuScene {
	return &menuScene{g: g}
}

func (s *menuScene) Preload() error { return nil }

func (s *menuScene) Create() error {
	s.ui = &ebitenui.UI{Container: newDialog(
		newLabel("WAR SPACE", textColor),
		newLabel("Shoot down every UFO, then fly off to the right.", textColor),
		newLabel("Move: arrows / WASD / d-pad   Shoot: Space / A", textColor),
		newLabel("R restarts a battle, M mutes, F11 toggles fullscreen", textColor),
		newButton("Start", 120, 32, widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			s.start = true
		})),
	)}
	return nil
}

func (s *menuScene) Update() error {
	s.ui.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.start = true
	}
	if s.start {
		s.start = false
		return s.g.scenes.Advance(sceneBattle)
	}
	return nil
}

func (s *menuScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.g.lib.Stage().BackgroundColor())
	s.ui.Draw(screen)
}

func (s *menuScene) Teardown() {
	s.ui = nil
}
