package system

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/stage"
)

const stickDeadzone = 0.35

// Levels is the held state of every control signal for one tick.
type Levels map[stage.Signal]bool

// TouchZone maps a screen rectangle to a control signal.
type TouchZone struct {
	Signal stage.Signal
	Rect   image.Rectangle
}

// InputSystem samples keyboard, gamepad and touch state each tick and turns
// level changes into press/release events on the ControlQueue.
type InputSystem struct {
	// Sample returns the held state of each signal. It defaults to reading
	// ebiten devices.
	Sample func() Levels
	// Zones returns the current on-screen pad rectangles for touch input.
	Zones func() []TouchZone

	held Levels
}

func NewInputSystem(zones func() []TouchZone) *InputSystem {
	i := &InputSystem{Zones: zones, held: make(Levels)}
	i.Sample = i.sampleDevices
	return i
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.Sample == nil {
		return
	}
	e, ok := w.First(component.ControlQueueComponent.Kind())
	if !ok {
		return
	}
	q, ok := ecs.Get(w, e, component.ControlQueueComponent.Kind())
	if !ok {
		return
	}
	i.apply(i.Sample(), q)
}

// Reset forgets the held state so the next tick re-reports every held
// signal as a fresh press.
func (i *InputSystem) Reset() {
	if i == nil {
		return
	}
	i.held = make(Levels)
}

// apply pushes releases before presses so a direction switch within a tick
// leaves the newly pressed direction active.
func (i *InputSystem) apply(now Levels, q *component.ControlQueue) {
	if i.held == nil {
		i.held = make(Levels)
	}
	for _, sig := range stage.Signals {
		if i.held[sig] && !now[sig] {
			q.Push(sig, false)
			i.held[sig] = false
		}
	}
	for _, sig := range stage.Signals {
		if now[sig] && !i.held[sig] {
			q.Push(sig, true)
			i.held[sig] = true
		}
	}
}

func (i *InputSystem) sampleDevices() Levels {
	levels := Levels{
		stage.SignalUp:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		stage.SignalDown:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		stage.SignalLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		stage.SignalRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		stage.SignalShoot: ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)

		levels[stage.SignalUp] = levels[stage.SignalUp] || y < -stickDeadzone ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
		levels[stage.SignalDown] = levels[stage.SignalDown] || y > stickDeadzone ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		levels[stage.SignalLeft] = levels[stage.SignalLeft] || x < -stickDeadzone ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		levels[stage.SignalRight] = levels[stage.SignalRight] || x > stickDeadzone ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		levels[stage.SignalShoot] = levels[stage.SignalShoot] ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	if i.Zones != nil {
		zones := i.Zones()
		for _, id := range ebiten.AppendTouchIDs(nil) {
			for sig := range touchedSignals(zones, image.Pt(ebiten.TouchPosition(id))) {
				levels[sig] = true
			}
		}
	}
	return levels
}

func touchedSignals(zones []TouchZone, p image.Point) Levels {
	out := make(Levels)
	for _, z := range zones {
		if p.In(z.Rect) {
			out[z.Signal] = true
		}
	}
	return out
}
