package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ShipPrefab   = "ship"
	UFOPrefab    = "ufo"
	BulletPrefab = "bullet"
	StarPrefab   = "star"
	StageFile    = "stage.yaml"
)

// EntityPrefabs lists every entity prefab the library loads.
var EntityPrefabs = []string{ShipPrefab, UFOPrefab, BulletPrefab, StarPrefab}

// Library is the set of decoded prefabs one battle is built from. Reload swaps
// in a new version of one file only after it decodes and validates.
type Library struct {
	dir       string
	entities  map[string]EntityBuildSpec
	stage     StageSpec
	starfield StarfieldSpec
}

// NewLibrary loads every prefab, preferring files in dir over the embedded
// copies. An empty dir uses only the embedded set.
func NewLibrary(dir string) (*Library, error) {
	l := &Library{dir: dir, entities: make(map[string]EntityBuildSpec, len(EntityPrefabs))}
	for _, name := range EntityPrefabs {
		if err := l.loadEntity(name); err != nil {
			return nil, err
		}
	}
	if err := l.loadStage(); err != nil {
		return nil, err
	}
	if err := l.loadStarfield(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Library) Dir() string {
	if l == nil {
		return ""
	}
	return l.dir
}

// Entity returns the build spec for a prefab name such as "ufo".
func (l *Library) Entity(name string) (EntityBuildSpec, error) {
	if l == nil {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: library is nil")
	}
	spec, ok := l.entities[prefabName(name)]
	if !ok {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: unknown prefab %q", name)
	}
	return spec, nil
}

func (l *Library) Stage() StageSpec {
	if l == nil {
		return StageSpec{}
	}
	return l.stage
}

func (l *Library) Starfield() StarfieldSpec {
	if l == nil {
		return StarfieldSpec{}.withDefaults()
	}
	return l.starfield
}

// Reload re-reads the prefab a changed file belongs to. Unknown files are
// ignored; a file that fails to decode leaves the previous version active.
func (l *Library) Reload(path string) (bool, error) {
	if l == nil {
		return false, nil
	}
	name := prefabName(path)
	if cleanPrefabPath(path) == StageFile {
		return true, l.loadStage()
	}
	if _, ok := l.entities[name]; !ok {
		return false, nil
	}
	if err := l.loadEntity(name); err != nil {
		return true, err
	}
	if name == StarPrefab {
		return true, l.loadStarfield()
	}
	return true, nil
}

func (l *Library) loadEntity(name string) error {
	spec, err := LoadSpecFrom[EntityBuildSpec](l.dir, name)
	if err != nil {
		return err
	}
	if len(spec.Components) == 0 {
		return fmt.Errorf("prefabs: %s does not define components", cleanPrefabPath(name))
	}
	if spec.Name == "" {
		spec.Name = name
	}
	l.entities[name] = spec
	return nil
}

func (l *Library) loadStage() error {
	spec, err := LoadSpecFrom[StageSpec](l.dir, StageFile)
	if err != nil {
		return err
	}
	if _, err := spec.Config(); err != nil {
		return err
	}
	l.stage = spec
	return nil
}

func (l *Library) loadStarfield() error {
	spec, err := LoadSpecFrom[StarfieldSpec](l.dir, StarPrefab)
	if err != nil {
		return err
	}
	spec = spec.withDefaults()
	if spec.Scale.Min > spec.Scale.Max || spec.Speed.Min > spec.Speed.Max || spec.Alpha.Min > spec.Alpha.Max {
		return fmt.Errorf("prefabs: star.yaml: range min above max")
	}
	l.starfield = spec
	return nil
}

func prefabName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}
