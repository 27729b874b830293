package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Scene is one screen of the game. Preload runs before Create and loads
// whatever the scene needs; Teardown releases everything Create built.
type Scene interface {
	Preload() error
	Create() error
	Update() error
	Draw(screen *ebiten.Image)
	Teardown()
}

// Factory builds a fresh scene each time the scene is entered.
type Factory func() (Scene, error)

// Manager owns the active scene. Switches requested during an update are
// applied after that update returns, so a scene never tears itself down
// mid-frame.
type Manager struct {
	log       *zap.Logger
	factories map[string]Factory

	current     Scene
	currentName string
	pending     string
	hasPending  bool
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log, factories: make(map[string]Factory)}
}

func (m *Manager) Register(name string, f Factory) {
	if m == nil || name == "" || f == nil {
		return
	}
	m.factories[name] = f
}

// Start switches to name immediately.
func (m *Manager) Start(name string) error {
	if m == nil {
		return fmt.Errorf("scene: manager is nil")
	}
	return m.switchTo(name)
}

// Advance queues a switch to name for the end of the current Update.
func (m *Manager) Advance(name string) error {
	if m == nil {
		return fmt.Errorf("scene: manager is nil")
	}
	if _, ok := m.factories[name]; !ok {
		return fmt.Errorf("scene: unknown scene %q", name)
	}
	m.pending = name
	m.hasPending = true
	return nil
}

// Restart queues a fresh copy of the current scene.
func (m *Manager) Restart() error {
	if m == nil || m.currentName == "" {
		return fmt.Errorf("scene: nothing to restart")
	}
	return m.Advance(m.currentName)
}

func (m *Manager) Update() error {
	if m == nil {
		return nil
	}
	if m.current != nil {
		if err := m.current.Update(); err != nil {
			return fmt.Errorf("scene: update %q: %w", m.currentName, err)
		}
	}
	if !m.hasPending {
		return nil
	}
	name := m.pending
	m.pending, m.hasPending = "", false
	return m.switchTo(name)
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m == nil || m.current == nil {
		return
	}
	m.current.Draw(screen)
}

// Current returns the active scene name.
func (m *Manager) Current() string {
	if m == nil {
		return ""
	}
	return m.currentName
}

// Close tears down the active scene.
func (m *Manager) Close() {
	if m == nil || m.current == nil {
		return
	}
	m.current.Teardown()
	m.current, m.currentName = nil, ""
}

func (m *Manager) switchTo(name string) error {
	f, ok := m.factories[name]
	if !ok {
		return fmt.Errorf("scene: unknown scene %q", name)
	}

	prev := m.currentName
	m.Close()

	next, err := f()
	if err != nil {
		return fmt.Errorf("scene: new %q: %w", name, err)
	}
	if err := next.Preload(); err != nil {
		return fmt.Errorf("scene: preload %q: %w", name, err)
	}
	if err := next.Create(); err != nil {
		next.Teardown()
		return fmt.Errorf("scene: create %q: %w", name, err)
	}

	m.current, m.currentName = next, name
	m.log.Info("scene switched", zap.String("from", prev), zap.String("to", name))
	return nil
}
