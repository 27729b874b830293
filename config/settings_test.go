package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		check   func(t *testing.T, s *Settings)
		wantErr bool
	}{
		{
			name: "missing file keeps defaults",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			check: func(t *testing.T, s *Settings) {
				if *s != *Defaults() {
					t.Fatalf("got %+v", s)
				}
			},
		},
		{
			name: "overrides",
			path: func(t *testing.T) string {
				return writeSettings(t, `
[window]
width = 1024
fullscreen = true

[logging]
level = "debug"
format = "json"

[game]
seed = 42
mute = true

[prefabs]
watch = true
`)
			},
			check: func(t *testing.T, s *Settings) {
				if s.Window.Width != 1024 || s.Window.Height != 600 || !s.Window.Fullscreen {
					t.Fatalf("window = %+v", s.Window)
				}
				if s.Logging.Level != "debug" || s.Logging.Format != "json" {
					t.Fatalf("logging = %+v", s.Logging)
				}
				if s.Game.Seed != 42 || !s.Game.Mute || s.Game.StartScene != "menu" {
					t.Fatalf("game = %+v", s.Game)
				}
				if !s.Prefabs.Watch || s.Prefabs.Dir != "prefabs" {
					t.Fatalf("prefabs = %+v", s.Prefabs)
				}
			},
		},
		{
			name:    "syntax error",
			path:    func(t *testing.T) string { return writeSettings(t, "[window\nwidth = 1") },
			wantErr: true,
		},
		{
			name:    "bad format",
			path:    func(t *testing.T) string { return writeSettings(t, "[logging]\nformat = \"xml\"\n") },
			wantErr: true,
		},
		{
			name:    "bad size",
			path:    func(t *testing.T) string { return writeSettings(t, "[window]\nheight = -1\n") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.path(t))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	tests := []struct {
		in       LoggingSettings
		level    zapcore.Level
		encoding string
	}{
		{in: LoggingSettings{Level: "debug", Format: "console"}, level: zapcore.DebugLevel, encoding: "console"},
		{in: LoggingSettings{Level: "warn", Format: "json"}, level: zapcore.WarnLevel, encoding: "json"},
		{in: LoggingSettings{Level: "loud", Format: "console"}, level: zapcore.InfoLevel, encoding: "console"},
		{in: LoggingSettings{}, level: zapcore.InfoLevel, encoding: "console"},
	}
	for _, tt := range tests {
		t.Run(tt.in.Level+"/"+tt.in.Format, func(t *testing.T) {
			cfg := loggerConfig(tt.in)
			if got := cfg.Level.Level(); got != tt.level {
				t.Fatalf("level = %s, want %s", got, tt.level)
			}
			if cfg.Encoding != tt.encoding {
				t.Fatalf("encoding = %q, want %q", cfg.Encoding, tt.encoding)
			}
		})
	}

	log, err := NewLogger(LoggingSettings{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	_ = log.Sync()
}
