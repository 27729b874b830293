package stage

import (
	"errors"
	"fmt"
	"time"
)

// GracePolicy decides what the post-spawn grace timer does when it fires
// before every UFO has been shot down.
type GracePolicy string

const (
	// GraceForce starts the victory flight when the grace timer fires.
	GraceForce GracePolicy = "force"
	// GraceStrict ignores the grace timer; only destroyed == total advances.
	GraceStrict GracePolicy = "strict"
)

// Config holds the stage tunables.
type Config struct {
	TotalUFOs     int
	SpawnInterval time.Duration
	GracePeriod   time.Duration
	GracePolicy   GracePolicy
	ShootInterval time.Duration

	ShipSpeed     float64
	ShipStartX    float64
	BulletSpeed   float64
	BulletOffsetX float64
	UFOSpeed      float64
	UFOVariants   int
	SpawnMargin   float64

	AdvanceTick         time.Duration
	AdvanceInitialSpeed float64
	AdvanceAcceleration float64
	ExitMargin          float64

	ExitScene string
}

func DefaultConfig() Config {
	return Config{
		TotalUFOs:     100,
		SpawnInterval: time.Second,
		GracePeriod:   6 * time.Second,
		GracePolicy:   GraceForce,
		ShootInterval: 200 * time.Millisecond,

		ShipSpeed:     200,
		ShipStartX:    100,
		BulletSpeed:   400,
		BulletOffsetX: 30,
		UFOSpeed:      150,
		UFOVariants:   9,
		SpawnMargin:   50,

		AdvanceTick:         20 * time.Millisecond,
		AdvanceInitialSpeed: 200,
		AdvanceAcceleration: 20,
		ExitMargin:          150,

		ExitScene: "result",
	}
}

var errInvalidConfig = errors.New("stage: invalid config")

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.TotalUFOs < 1:
		return fmt.Errorf("%w: total ufos %d", errInvalidConfig, c.TotalUFOs)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval %s", errInvalidConfig, c.SpawnInterval)
	case c.GracePeriod <= 0:
		return fmt.Errorf("%w: grace period %s", errInvalidConfig, c.GracePeriod)
	case c.ShootInterval <= 0:
		return fmt.Errorf("%w: shoot interval %s", errInvalidConfig, c.ShootInterval)
	case c.AdvanceTick <= 0:
		return fmt.Errorf("%w: advance tick %s", errInvalidConfig, c.AdvanceTick)
	case c.UFOVariants < 1:
		return fmt.Errorf("%w: ufo variants %d", errInvalidConfig, c.UFOVariants)
	case c.ShipSpeed < 0 || c.BulletSpeed < 0 || c.UFOSpeed < 0 || c.AdvanceInitialSpeed < 0 || c.AdvanceAcceleration < 0:
		return fmt.Errorf("%w: negative speed", errInvalidConfig)
	case c.SpawnMargin < 0 || c.ExitMargin < 0:
		return fmt.Errorf("%w: negative margin", errInvalidConfig)
	}
	switch c.GracePolicy {
	case GraceForce, GraceStrict:
	default:
		return fmt.Errorf("%w: grace policy %q", errInvalidConfig, c.GracePolicy)
	}
	return nil
}

// IsInvalidConfig reports whether err came from Validate.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, errInvalidConfig)
}
