package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Settings struct {
	Window  WindowSettings  `toml:"window"`
	Logging LoggingSettings `toml:"logging"`
	Game    GameSettings    `toml:"game"`
	Prefabs PrefabSettings  `toml:"prefabs"`
}

type WindowSettings struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Fullscreen bool   `toml:"fullscreen"`
	Resizable  bool   `toml:"resizable"`
}

type LoggingSettings struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type GameSettings struct {
	StartScene string `toml:"start_scene"`
	Seed       int64  `toml:"seed"` // 0 picks a time-based seed
	Mute       bool   `toml:"mute"`
}

type PrefabSettings struct {
	Watch bool   `toml:"watch"`
	Dir   string `toml:"dir"` // empty uses the embedded prefabs only
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

func Defaults() *Settings {
	return &Settings{
		Window: WindowSettings{
			Width:     800,
			Height:    600,
			Title:     "War Space",
			Resizable: true,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
		Game: GameSettings{
			StartScene: "menu",
		},
		Prefabs: PrefabSettings{
			Dir: "prefabs",
		},
	}
}

func (s *Settings) validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", s.Window.Width, s.Window.Height)
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging format %q", s.Logging.Format)
	}
	return nil
}
