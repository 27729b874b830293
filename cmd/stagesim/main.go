// Command stagesim plays stages headlessly with a simple autopilot and
// reports how each run ended. It is meant for tuning stage.yaml.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/muhamadriskonalfani/war-space/config"
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
	"github.com/muhamadriskonalfani/war-space/ecs/entity"
	"github.com/muhamadriskonalfani/war-space/ecs/system"
	"github.com/muhamadriskonalfani/war-space/prefabs"
	"github.com/muhamadriskonalfani/war-space/stage"
	"go.uber.org/zap"
)

type result struct {
	seed     int64
	outcome  stage.Outcome
	counter  stage.Counter
	duration time.Duration
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	dir := flag.String("prefabs", "", "prefab directory (empty uses the embedded prefabs)")
	runs := flag.Int("runs", 5, "number of stages to play")
	seed := flag.Int64("seed", 1, "seed of the first run; later runs add one")
	limit := flag.Duration("limit", 5*time.Minute, "game time after which a run is abandoned")
	policy := flag.String("policy", "", "override grace_policy (force or strict)")
	width := flag.Float64("width", 800, "viewport width")
	height := flag.Float64("height", 600, "viewport height")
	level := flag.String("log", "warn", "log level")
	flag.Parse()

	log, err := config.NewLogger(config.LoggingSettings{Level: *level, Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	lib, err := prefabs.NewLibrary(*dir)
	if err != nil {
		return err
	}
	cfg, err := lib.Stage().Config()
	if err != nil {
		return err
	}
	if *policy != "" {
		cfg.GracePolicy = stage.GracePolicy(*policy)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	wins := 0
	for i := 0; i < *runs; i++ {
		r, err := simulate(cfg, lib, *seed+int64(i), *width, *height, *limit, log)
		if err != nil {
			return err
		}
		if r.outcome == stage.OutcomeSuccess {
			wins++
		}
		fmt.Printf("seed %-4d %-8s destroyed %3d/%d spawned %3d/%d after %s\n",
			r.seed, r.outcome, r.counter.Destroyed, r.counter.Total, r.counter.Spawned, r.counter.Total,
			r.duration.Round(10*time.Millisecond))
	}
	fmt.Printf("%d/%d runs cleared (grace policy %s)\n", wins, *runs, cfg.GracePolicy)
	return nil
}

func simulate(cfg stage.Config, lib *prefabs.Library, seed int64, width, height float64, limit time.Duration, log *zap.Logger) (result, error) {
	w := ecs.NewWorld()
	state, err := entity.NewStageState(w, width, height)
	if err != nil {
		return result{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	builder := entity.NewBuilder(lib, nil, nil)
	ss, err := system.NewStageSystem(cfg, builder, rng, log.With(zap.Int64("seed", seed)), system.DefaultStep)
	if err != nil {
		return result{}, err
	}
	defer ss.Teardown()

	pilot := &autopilot{w: w, deadband: 4}
	input := system.NewInputSystem(nil)
	input.Sample = pilot.levels

	sched := ecs.NewScheduler(
		input,
		ss,
		system.NewMovementSystem(system.DefaultStep),
		system.NewPhysicsSystem(system.DefaultStep),
		system.NewCullSystem(),
	)

	maxTicks := uint64(limit / system.DefaultStep)
	for sched.Ticks() < maxTicks && !ecs.Has(w, state, component.SceneRequestComponent.Kind()) {
		sched.Update(w)
	}
	return result{
		seed:     seed,
		outcome:  ss.Outcome(),
		counter:  ss.Controller().Counter(),
		duration: time.Duration(sched.Ticks()) * system.DefaultStep,
	}, nil
}

// autopilot holds fire and steers toward the row of the closest UFO ahead of
// the ship.
type autopilot struct {
	w        *ecs.World
	deadband float64
}

func (a *autopilot) levels() system.Levels {
	levels := system.Levels{stage.SignalShoot: true}

	ship, ok := a.w.First(component.ShipTagComponent.Kind())
	if !ok {
		return levels
	}
	st, ok := ecs.Get(a.w, ship, component.TransformComponent.Kind())
	if !ok {
		return levels
	}

	targetY, best := st.Y, math.Inf(1)
	ecs.ForEach2(a.w, component.UFOComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.UFO, t *component.Transform) {
		if dx := t.X - st.X; dx > 0 && dx < best {
			best, targetY = dx, t.Y
		}
	})

	switch {
	case targetY < st.Y-a.deadband:
		levels[stage.SignalUp] = true
	case targetY > st.Y+a.deadband:
		levels[stage.SignalDown] = true
	}
	return levels
}
