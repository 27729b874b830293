package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/prefabs"
)

// ImageSource resolves sprite keys. A nil source leaves sprites without an
// image, which is how tests build entities without a GPU.
type ImageSource interface {
	Image(key string) (*ebiten.Image, error)
}

// SoundSource creates audio players for clip files.
type SoundSource interface {
	Player(path string) (*audio.Player, error)
}

type buildContext struct {
	Prefab  string
	Variant int
	Images  ImageSource
	Sounds  SoundSource
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"ship_tag":     addShipTag,
	"ufo":          addUFO,
	"bullet_tag":   addBulletTag,
	"star_tag":     addStarTag,
	"transform":    addTransform,
	"velocity":     addVelocity,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"physics_body": addPhysicsBody,
	"cullable":     addCullable,
	"audio":        addAudio,
}

var componentBuildOrder = []string{
	"ship_tag",
	"ufo",
	"bullet_tag",
	"star_tag",
	"transform",
	"velocity",
	"sprite",
	"render_layer",
	"physics_body",
	"cullable",
	"audio",
}

// Builder turns library prefabs into entities.
type Builder struct {
	lib    *prefabs.Library
	images ImageSource
	sounds SoundSource
}

func NewBuilder(lib *prefabs.Library, images ImageSource, sounds SoundSource) *Builder {
	return &Builder{lib: lib, images: images, sounds: sounds}
}

// Build creates an entity from a prefab without images or sounds.
func Build(w *ecs.World, lib *prefabs.Library, prefabName string) (ecs.Entity, error) {
	return NewBuilder(lib, nil, nil).Build(w, prefabName)
}

func (b *Builder) Build(w *ecs.World, prefabName string) (ecs.Entity, error) {
	return b.build(w, prefabName, 0)
}

func (b *Builder) build(w *ecs.World, prefabName string, variant int) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if b == nil || b.lib == nil {
		return 0, fmt.Errorf("build entity: %q: no prefab library", prefabName)
	}

	spec, err := b.lib.Entity(prefabName)
	if err != nil {
		return 0, fmt.Errorf("build entity: %w", err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabName)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Prefab: prefabName, Variant: variant, Images: b.images, Sounds: b.sounds}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabName, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabName, names[0])
	}

	return e, nil
}

func addShipTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ShipTagComponent.Kind(), &component.ShipTag{})
}

func addBulletTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BulletTagComponent.Kind(), &component.BulletTag{})
}

func addStarTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.StarTagComponent.Kind(), &component.StarTag{})
}

func addUFO(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.UFOSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ufo spec: %w", err)
	}
	if ctx.Variant <= 0 {
		ctx.Variant = spec.Variant
	}
	if ctx.Variant <= 0 {
		ctx.Variant = 1
	}
	return ecs.Add(w, e, component.UFOComponent.Kind(), &component.UFO{Variant: ctx.Variant})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale != 0 {
		if spec.ScaleX == 0 {
			spec.ScaleX = spec.Scale
		}
		if spec.ScaleY == 0 {
			spec.ScaleY = spec.Scale
		}
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VelocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: spec.X, Y: spec.Y})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	key := spec.Image
	if strings.Contains(key, "%d") {
		v := ctx.Variant
		if v <= 0 {
			v = 1
		}
		key = fmt.Sprintf(key, v)
	}

	sprite := component.Sprite{
		Key:      key,
		OriginX:  spec.OriginX,
		OriginY:  spec.OriginY,
		Centered: spec.Centered,
		Alpha:    spec.Alpha,
	}
	if sprite.Alpha == 0 {
		sprite.Alpha = 1
	}
	if key != "" && ctx.Images != nil {
		img, err := ctx.Images.Image(key)
		if err != nil {
			return fmt.Errorf("load image %q: %w", key, err)
		}
		sprite.Image = img
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	index := spec.Index
	if spec.Name != "" {
		var ok bool
		if index, ok = component.LayerIndex(spec.Name); !ok {
			return fmt.Errorf("unknown render layer %q", spec.Name)
		}
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: index})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	role := component.CollisionRole(spec.Role)
	switch role {
	case component.RoleShip, component.RoleUFO, component.RoleBullet:
	default:
		return fmt.Errorf("unknown collision role %q", spec.Role)
	}

	width, height, radius := spec.Width, spec.Height, spec.Radius
	if spec.ScaleWithTransform {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			width *= tr.ScaleX
			height *= tr.ScaleY
			radius *= tr.ScaleX
		}
	}
	if radius <= 0 && (width <= 0 || height <= 0) {
		return fmt.Errorf("physics body needs a radius or a width and height")
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         width,
		Height:        height,
		Radius:        radius,
		Mass:          spec.Mass,
		Role:          role,
		Sensor:        spec.Sensor,
		CollideBounds: spec.CollideBounds,
	})
}

func addCullable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CullableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode cullable spec: %w", err)
	}
	return ecs.Add(w, e, component.CullableComponent.Kind(), &component.Cullable{Margin: spec.Margin, Notify: spec.Notify})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponent(spec.Clips, ctx.Sounds)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	for _, name := range spec.Autoplay {
		comp.Request(name)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponent(clips []prefabs.AudioSpec, sounds SoundSource) (*component.Audio, error) {
	n := len(clips)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}

	for i, clip := range clips {
		var player *audio.Player
		if sounds != nil {
			p, err := sounds.Player(clip.File)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
			player = p
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
	}
	return comp, nil
}
