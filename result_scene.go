package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/muhamadriskonalfani/war-space/stage"
)

type resultScene struct {
	g    *Game
	ui   *ebitenui.UI
	next string
}

func newResultScene(g *Game) *resultScene {
	return &resultScene{g: g}
}

func (s *resultScene) Preload() error { return nil }

func (s *resultScene) Create() error {
	msg := resultMessage(s.g.session.Outcome)
	c := okColor
	if s.g.session.Outcome != stage.OutcomeSuccess {
		c = alertColor
	}
	s.ui = &ebitenui.UI{Container: newDialog(
		newLabel(msg, c),
		newButton("Play again", 140, 32, widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			s.next = sceneBattle
		})),
		newButton("Menu", 140, 32, widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			s.next = sceneMenu
		})),
	)}
	return nil
}

func (s *resultScene) Update() error {
	s.ui.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.next = sceneBattle
	}
	if s.next == "" {
		return nil
	}
	next := s.next
	s.next = ""
	return s.g.scenes.Advance(next)
}

func (s *resultScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.g.lib.Stage().BackgroundColor())
	s.ui.Draw(screen)
}

func (s *resultScene) Teardown() {
	s.ui = nil
}

func resultMessage(o stage.Outcome) string {
	switch o {
	case stage.OutcomeSuccess:
		return "Success!"
	case stage.OutcomeDefeat:
		return "Game Over! Your ship was hit by a UFO."
	default:
		return "Battle abandoned."
	}
}
