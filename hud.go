package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/ecs/system"
	"github.com/muhamadriskonalfani/war-space/stage"
)

const padButtonSize = 48

// hud is the battle overlay: wave counter, viewport size, a fullscreen
// toggle and the on-screen control pad.
type hud struct {
	ui      *ebitenui.UI
	counter *widget.Text
	size    *widget.Text
	pad     map[stage.Signal]*widget.Button
}

func newHUD(push func(sig stage.Signal, down bool), toggleFullscreen func()) *hud {
	h := &hud{pad: make(map[stage.Signal]*widget.Button)}

	padButton := func(sig stage.Signal, label string) *widget.Button {
		b := newButton(label, padButtonSize, padButtonSize,
			widget.ButtonOpts.PressedHandler(func(*widget.ButtonPressedEventArgs) { push(sig, true) }),
			widget.ButtonOpts.ReleasedHandler(func(*widget.ButtonReleasedEventArgs) { push(sig, false) }),
		)
		h.pad[sig] = b
		return b
	}

	h.counter = newLabel(counterText(stage.Counter{}), textColor)
	h.size = newLabel("", textColor)
	status := hudRow(widget.DirectionVertical, widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}, h.counter, h.size)

	fullscreen := newButton("Fullscreen", 96, 24,
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { toggleFullscreen() }),
	)
	top := hudRow(widget.DirectionHorizontal, widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}, fullscreen)

	arrows := hudRow(widget.DirectionHorizontal, nil,
		padButton(stage.SignalLeft, "<"),
		padButton(stage.SignalDown, "v"),
		padButton(stage.SignalRight, ">"),
	)
	dpad := hudRow(widget.DirectionVertical, widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}, padButton(stage.SignalUp, "^"), arrows)

	shoot := hudRow(widget.DirectionHorizontal, widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}, padButton(stage.SignalShoot, "X"))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout(
		widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
	)))
	root.AddChild(status)
	root.AddChild(top)
	root.AddChild(dpad)
	root.AddChild(shoot)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func hudRow(dir widget.Direction, layoutData any, children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	opts := []widget.ContainerOpt{
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(dir),
			widget.RowLayoutOpts.Spacing(6),
		)),
	}
	if layoutData != nil {
		opts = append(opts, widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(layoutData)))
	}
	c := widget.NewContainer(opts...)
	for _, child := range children {
		c.AddChild(child)
	}
	return c
}

func (h *hud) Update(status *component.StageStatus, width, height int) {
	if status != nil {
		h.counter.Label = counterText(status.Counter)
	}
	h.size.Label = sizeText(width, height)
	h.ui.Update()
}

func (h *hud) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

// Zones reports the pad buttons' screen rectangles for touch input.
func (h *hud) Zones() []system.TouchZone {
	zones := make([]system.TouchZone, 0, len(h.pad))
	for _, sig := range stage.Signals {
		if b, ok := h.pad[sig]; ok {
			zones = append(zones, system.TouchZone{Signal: sig, Rect: b.GetWidget().Rect})
		}
	}
	return zones
}

func counterText(c stage.Counter) string {
	return fmt.Sprintf("Destroyed %d/%d | Spawned %d/%d", c.Destroyed, c.Total, c.Spawned, c.Total)
}

func sizeText(w, h int) string {
	return fmt.Sprintf("%d x %d", w, h)
}
