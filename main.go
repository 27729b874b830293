package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/muhamadriskonalfani/war-space/config"
	"github.com/muhamadriskonalfani/war-space/prefabs"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "settings.toml", "path to settings.toml")
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	sceneName := flag.String("scene", "", "start scene (menu, battle, result)")
	seed := flag.Int64("seed", 0, "random seed for UFO placement (0 = time based)")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		settings.Logging.Level = "debug"
	}
	if *sceneName != "" {
		settings.Game.StartScene = *sceneName
	}
	if *seed != 0 {
		settings.Game.Seed = *seed
	}

	log, err := config.NewLogger(settings.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	lib, err := prefabs.NewLibrary(diskPrefabDir(settings.Prefabs.Dir, log))
	if err != nil {
		log.Error("load prefabs", zap.Error(err))
		return err
	}

	var watcher *prefabs.Watcher
	if settings.Prefabs.Watch && lib.Dir() != "" {
		watcher, err = prefabs.NewWatcher(log.Named("prefabs"), lib.Dir())
		if err != nil {
			log.Warn("prefab watcher disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(settings, lib, watcher, log, *debug)
	if err != nil {
		log.Error("init game", zap.Error(err))
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetFullscreen(settings.Window.Fullscreen)
	if settings.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game exited", zap.Error(err))
		return err
	}
	return nil
}

// diskPrefabDir returns dir if it is a directory and "" otherwise, which
// selects the embedded prefabs.
func diskPrefabDir(dir string, log *zap.Logger) string {
	if dir == "" {
		return ""
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Debug("using embedded prefabs", zap.String("dir", dir))
		return ""
	}
	return dir
}
