package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muhamadriskonalfani/war-space/stage"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedLibrary(t *testing.T) {
	lib, err := NewLibrary("")
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	for _, name := range EntityPrefabs {
		t.Run(name, func(t *testing.T) {
			spec, err := lib.Entity(name)
			if err != nil {
				t.Fatalf("Entity(%q): %v", name, err)
			}
			if spec.Name != name {
				t.Fatalf("name = %q, want %q", spec.Name, name)
			}
			if _, ok := spec.Components["transform"]; !ok {
				t.Fatalf("%s has no transform", name)
			}
		})
	}

	if _, err := lib.Entity("boss"); err == nil {
		t.Fatalf("expected error for unknown prefab")
	}

	cfg, err := lib.Stage().Config()
	if err != nil {
		t.Fatalf("stage config: %v", err)
	}
	if cfg != stage.DefaultConfig() {
		t.Fatalf("embedded stage.yaml drifted from defaults:\n got %+v\nwant %+v", cfg, stage.DefaultConfig())
	}

	sf := lib.Starfield()
	if sf.Interval != 500*time.Millisecond || sf.Scale != (Range{Min: 0.05, Max: 0.2}) || sf.Alpha != (Range{Min: 0.3, Max: 0.8}) {
		t.Fatalf("unexpected starfield %+v", sf)
	}
}

func TestStageSpecConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, cfg stage.Config)
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			yaml: "name: s\n",
			check: func(t *testing.T, cfg stage.Config) {
				if cfg != stage.DefaultConfig() {
					t.Fatalf("got %+v", cfg)
				}
			},
		},
		{
			name: "durations and policy",
			yaml: "total_ufos: 10\nspawn_interval: 250ms\ngrace_period: 2s\ngrace_policy: STRICT\n",
			check: func(t *testing.T, cfg stage.Config) {
				if cfg.TotalUFOs != 10 || cfg.SpawnInterval != 250*time.Millisecond || cfg.GracePeriod != 2*time.Second {
					t.Fatalf("got %+v", cfg)
				}
				if cfg.GracePolicy != stage.GraceStrict {
					t.Fatalf("policy = %q", cfg.GracePolicy)
				}
			},
		},
		{name: "bad policy", yaml: "grace_policy: sometimes\n", wantErr: true},
		{name: "negative total", yaml: "total_ufos: -3\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec StageSpec
			if err := yaml.Unmarshal([]byte(tt.yaml), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			cfg, err := spec.Config()
			if tt.wantErr {
				if err == nil || !stage.IsInvalidConfig(err) {
					t.Fatalf("expected invalid config error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Config: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#111138"`, want: color.NRGBA{R: 0x11, G: 0x11, B: 0x38, A: 0xff}},
		{in: `"ff000080"`, want: color.NRGBA{R: 0xff, A: 0x80}},
		{in: `"#12345"`, wantErr: true},
		{in: `"#zzzzzz"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.Color != tt.want {
				t.Fatalf("got %#v, want %#v", c.Color, tt.want)
			}
		})
	}
}

func TestDiskOverrideAndReload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	write(StageFile, "name: custom\ntotal_ufos: 7\n")
	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	if got := lib.Stage().TotalUFOs; got != 7 {
		t.Fatalf("disk override ignored: total = %d", got)
	}

	p := write(StageFile, "name: custom\ntotal_ufos: 12\n")
	if handled, err := lib.Reload(p); !handled || err != nil {
		t.Fatalf("Reload = %v, %v", handled, err)
	}
	if got := lib.Stage().TotalUFOs; got != 12 {
		t.Fatalf("reload not applied: total = %d", got)
	}

	write(StageFile, "name: custom\ngrace_policy: nope\n")
	if _, err := lib.Reload(p); err == nil {
		t.Fatalf("expected reload error")
	}
	if got := lib.Stage().TotalUFOs; got != 12 {
		t.Fatalf("bad reload replaced the stage: total = %d", got)
	}

	p = write("ufo.yaml", "name: ufo\ncomponents: {}\n")
	if _, err := lib.Reload(p); err == nil {
		t.Fatalf("expected error for prefab without components")
	}
	if spec, _ := lib.Entity(UFOPrefab); len(spec.Components) == 0 {
		t.Fatalf("bad reload replaced the ufo prefab")
	}

	if handled, err := lib.Reload(write("notes.yaml", "x: 1\n")); handled || err != nil {
		t.Fatalf("unknown file: handled=%v err=%v", handled, err)
	}
}

func TestWatcherReportsPrefabWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(nil, dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	for _, name := range []string{"notes.txt", "notes.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	target := filepath.Join(dir, "ship.yaml")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("name: ship\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Base(name) != "ship.yaml" {
				t.Fatalf("unexpected event %q", name)
			}
			return
		case <-deadline:
			t.Fatalf("no event for %s", target)
		}
	}
}

func TestIsPrefabFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"prefabs/ship.yaml", true},
		{"prefabs/ufo.yml", true},
		{"/tmp/x/stage.yaml", true},
		{"star.YAML", false},
		{"notes.yaml", false},
		{"ship.json", false},
		{"ship.yaml~", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isPrefabFile(tt.path); got != tt.want {
				t.Fatalf("isPrefabFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPrefabPathHelpers(t *testing.T) {
	tests := []struct {
		in, clean, name string
	}{
		{"ship", "ship.yaml", "ship"},
		{"ship.yaml", "ship.yaml", "ship"},
		{"prefabs/ufo.yaml", "ufo.yaml", "ufo"},
		{"/tmp/x/star.yml", "star.yml", "star"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanPrefabPath(tt.in); got != tt.clean {
				t.Fatalf("cleanPrefabPath = %q, want %q", got, tt.clean)
			}
			if got := prefabName(tt.in); got != tt.name {
				t.Fatalf("prefabName = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	got, err := DecodeComponentSpec[CullableSpec](map[string]any{"margin": 40, "notify": true})
	if err != nil || got != (CullableSpec{Margin: 40, Notify: true}) {
		t.Fatalf("decode = %+v, %v", got, err)
	}

	if got, err := DecodeComponentSpec[CullableSpec](nil); err != nil || got != (CullableSpec{}) {
		t.Fatalf("nil entry = %+v, %v", got, err)
	}

	if _, err := DecodeComponentSpec[CullableSpec](map[string]any{"margn": 40}); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
