package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/muhamadriskonalfani/war-space/stage"
	"gopkg.in/yaml.v3"
)

// LoadSpecFrom decodes filename from dir, falling back to the embedded copy.
func LoadSpecFrom[T any](dir, filename string) (T, error) {
	var zero T
	data, err := LoadFrom(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// StageSpec is stage.yaml. Zero fields keep the stage defaults.
type StageSpec struct {
	Name                string        `yaml:"name"`
	TotalUFOs           int           `yaml:"total_ufos"`
	SpawnInterval       time.Duration `yaml:"spawn_interval"`
	GracePeriod         time.Duration `yaml:"grace_period"`
	GracePolicy         string        `yaml:"grace_policy"`
	ShootInterval       time.Duration `yaml:"shoot_interval"`
	ShipSpeed           float64       `yaml:"ship_speed"`
	ShipStartX          float64       `yaml:"ship_start_x"`
	BulletSpeed         float64       `yaml:"bullet_speed"`
	BulletOffsetX       float64       `yaml:"bullet_offset_x"`
	UFOSpeed            float64       `yaml:"ufo_speed"`
	UFOVariants         int           `yaml:"ufo_variants"`
	SpawnMargin         float64       `yaml:"spawn_margin"`
	AdvanceTick         time.Duration `yaml:"advance_tick"`
	AdvanceInitialSpeed float64       `yaml:"advance_initial_speed"`
	AdvanceAcceleration float64       `yaml:"advance_acceleration"`
	ExitMargin          float64       `yaml:"exit_margin"`
	ExitScene           string        `yaml:"exit_scene"`
	Background          *YAMLColor    `yaml:"background"`
}

// Config overlays the spec on stage.DefaultConfig and validates the result.
func (s StageSpec) Config() (stage.Config, error) {
	cfg := stage.DefaultConfig()
	setInt(&cfg.TotalUFOs, s.TotalUFOs)
	setDuration(&cfg.SpawnInterval, s.SpawnInterval)
	setDuration(&cfg.GracePeriod, s.GracePeriod)
	if s.GracePolicy != "" {
		cfg.GracePolicy = stage.GracePolicy(strings.ToLower(s.GracePolicy))
	}
	setDuration(&cfg.ShootInterval, s.ShootInterval)
	setFloat(&cfg.ShipSpeed, s.ShipSpeed)
	setFloat(&cfg.ShipStartX, s.ShipStartX)
	setFloat(&cfg.BulletSpeed, s.BulletSpeed)
	setFloat(&cfg.BulletOffsetX, s.BulletOffsetX)
	setFloat(&cfg.UFOSpeed, s.UFOSpeed)
	setInt(&cfg.UFOVariants, s.UFOVariants)
	setFloat(&cfg.SpawnMargin, s.SpawnMargin)
	setDuration(&cfg.AdvanceTick, s.AdvanceTick)
	setFloat(&cfg.AdvanceInitialSpeed, s.AdvanceInitialSpeed)
	setFloat(&cfg.AdvanceAcceleration, s.AdvanceAcceleration)
	setFloat(&cfg.ExitMargin, s.ExitMargin)
	if s.ExitScene != "" {
		cfg.ExitScene = s.ExitScene
	}
	if err := cfg.Validate(); err != nil {
		return stage.Config{}, fmt.Errorf("prefabs: stage %q: %w", s.Name, err)
	}
	return cfg, nil
}

// BackgroundColor returns the configured clear colour or the default navy.
func (s StageSpec) BackgroundColor() color.Color {
	if s.Background != nil && s.Background.Color != nil {
		return s.Background.Color
	}
	return color.NRGBA{R: 0x11, G: 0x11, B: 0x38, A: 0xff}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}

// Range is an inclusive [min, max] pair.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// StarfieldSpec holds the star.yaml emitter settings that sit next to the
// star's components.
type StarfieldSpec struct {
	Interval time.Duration `yaml:"interval"`
	YMargin  float64       `yaml:"y_margin"`
	Scale    Range         `yaml:"scale"`
	Speed    Range         `yaml:"speed"`
	Alpha    Range         `yaml:"alpha"`
}

func (s StarfieldSpec) withDefaults() StarfieldSpec {
	if s.Interval <= 0 {
		s.Interval = 500 * time.Millisecond
	}
	if s.YMargin == 0 {
		s.YMargin = 10
	}
	if s.Scale == (Range{}) {
		s.Scale = Range{Min: 0.05, Max: 0.2}
	}
	if s.Speed == (Range{}) {
		s.Speed = Range{Min: 50, Max: 150}
	}
	if s.Alpha == (Range{}) {
		s.Alpha = Range{Min: 0.3, Max: 0.8}
	}
	return s
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// RenderLayerSpec picks a layer by name, or by raw index when Name is empty.
type RenderLayerSpec struct {
	Name  string `yaml:"name"`
	Index int    `yaml:"index"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Scale    float64 `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

type VelocitySpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpriteSpec struct {
	// Image may hold one %d verb, filled with the entity's variant.
	Image    string  `yaml:"image"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	Centered bool    `yaml:"centered"`
	Alpha    float64 `yaml:"alpha"`
}

type PhysicsBodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	Role   string  `yaml:"role"`
	Sensor bool    `yaml:"sensor"`
	// ScaleWithTransform multiplies width/height/radius by the transform scale.
	ScaleWithTransform bool `yaml:"scale_with_transform"`
	CollideBounds      bool `yaml:"collide_bounds"`
}

type CullableSpec struct {
	Margin float64 `yaml:"margin"`
	Notify bool    `yaml:"notify"`
}

type UFOSpec struct {
	Variant int `yaml:"variant"`
}

type AudioComponentSpec struct {
	Clips    []AudioSpec `yaml:"clips"`
	Autoplay []string    `yaml:"autoplay"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
