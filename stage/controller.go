package stage

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Controller runs one stage: UFO spawning, kill counting, shoot gating, ship
// movement and the Playing -> Advancing -> Finished progression. It is not
// safe for concurrent use; every method is meant to be called from the game
// loop goroutine.
type Controller struct {
	cfg    Config
	engine Engine
	rng    *rand.Rand
	log    *zap.Logger
	timers *Scheduler

	ship    Handle
	stage   Stage
	dir     Direction
	outcome Outcome
	started bool

	spawned   int
	destroyed int

	ufos    map[Handle]struct{}
	bullets map[Handle]struct{}

	spawnTimer   TimerID
	shootTimer   TimerID
	graceTimer   TimerID
	advanceTimer TimerID
	advanceSpeed float64
}

func NewController(cfg Config, engine Engine, rng *rand.Rand, log *zap.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("stage: new controller: %w", err)
	}
	if engine == nil {
		return nil, fmt.Errorf("stage: new controller: engine is nil")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		cfg:     cfg,
		engine:  engine,
		rng:     rng,
		log:     log,
		timers:  NewScheduler(),
		ufos:    make(map[Handle]struct{}),
		bullets: make(map[Handle]struct{}),
	}, nil
}

// Start spawns the ship and starts the spawn timer. Calling it twice is a
// no-op.
func (c *Controller) Start() {
	if c == nil || c.started {
		return
	}
	c.started = true

	_, h := c.engine.Viewport()
	c.ship = c.engine.Spawn(SpawnRequest{Kind: KindShip, X: c.cfg.ShipStartX, Y: h / 2})
	c.engine.SetCollideWorldBounds(c.ship, true)
	c.spawnTimer = c.timers.Every(c.cfg.SpawnInterval, c.spawnTick)

	c.log.Info("stage started",
		zap.Int("total", c.cfg.TotalUFOs),
		zap.String("grace_policy", string(c.cfg.GracePolicy)),
	)
}

// Update advances the stage by dt: movement first, then every timer that
// falls due. All timer callbacks run from here.
func (c *Controller) Update(dt time.Duration) {
	if c == nil || !c.started || c.stage == Finished {
		return
	}
	if c.stage == Playing {
		c.applyMovement()
	}
	c.timers.Advance(dt)
}

// Press handles a control-down signal.
func (c *Controller) Press(sig Signal) {
	if c == nil || c.stage != Playing {
		return
	}
	if sig == SignalShoot {
		c.startShooting()
		return
	}
	if d := sig.direction(); d != DirNone {
		c.dir = d
	}
}

// Release handles a control-up signal. A direction release only clears the
// current direction when it matches.
func (c *Controller) Release(sig Signal) {
	if c == nil || c.stage == Finished {
		return
	}
	if sig == SignalShoot {
		c.stopShooting()
		return
	}
	if d := sig.direction(); d != DirNone && d == c.dir {
		c.dir = DirNone
	}
}

// OnBulletHitUFO resolves a bullet/UFO overlap. Pairs where either side is
// unknown or already gone are ignored.
func (c *Controller) OnBulletHitUFO(bullet, ufo Handle) {
	if c == nil || c.stage == Finished {
		return
	}
	if _, ok := c.bullets[bullet]; !ok {
		return
	}
	if _, ok := c.ufos[ufo]; !ok {
		return
	}
	delete(c.bullets, bullet)
	delete(c.ufos, ufo)
	c.engine.Destroy(bullet)
	c.engine.Destroy(ufo)
	c.destroyed++

	if c.destroyed == c.cfg.TotalUFOs && c.stage == Playing {
		c.beginAdvance("cleared")
	}
}

// OnShipHitUFO resolves a ship/UFO overlap. Only a live UFO while Playing
// ends the stage.
func (c *Controller) OnShipHitUFO(ufo Handle) {
	if c == nil || c.stage != Playing {
		return
	}
	if _, ok := c.ufos[ufo]; !ok {
		return
	}
	c.finish(OutcomeDefeat)
}

// OnOutOfBounds destroys a UFO or bullet that left the viewport. The counter
// is not touched.
func (c *Controller) OnOutOfBounds(h Handle) {
	if c == nil || c.stage == Finished {
		return
	}
	if _, ok := c.ufos[h]; ok {
		delete(c.ufos, h)
		c.engine.Destroy(h)
		return
	}
	if _, ok := c.bullets[h]; ok {
		delete(c.bullets, h)
		c.engine.Destroy(h)
	}
}

// Teardown cancels every timer. Entities stay with the engine, which drops
// them with the scene.
func (c *Controller) Teardown() {
	if c == nil {
		return
	}
	c.timers.CancelAll()
	c.spawnTimer, c.shootTimer, c.graceTimer, c.advanceTimer = 0, 0, 0, 0
}

func (c *Controller) Stage() Stage {
	if c == nil {
		return Finished
	}
	return c.stage
}

func (c *Controller) Direction() Direction {
	if c == nil {
		return DirNone
	}
	return c.dir
}

func (c *Controller) Outcome() Outcome {
	if c == nil {
		return OutcomeNone
	}
	return c.outcome
}

func (c *Controller) Counter() Counter {
	if c == nil {
		return Counter{}
	}
	return Counter{Spawned: c.spawned, Destroyed: c.destroyed, Total: c.cfg.TotalUFOs}
}

// Shooting reports whether the shoot timer is running.
func (c *Controller) Shooting() bool {
	return c != nil && c.timers.Active(c.shootTimer)
}

// Ship returns the ship handle, zero before Start or after Finished.
func (c *Controller) Ship() Handle {
	if c == nil {
		return 0
	}
	return c.ship
}

// ActiveTimers returns how many timers are scheduled.
func (c *Controller) ActiveTimers() int {
	if c == nil {
		return 0
	}
	return c.timers.Len()
}

func (c *Controller) applyMovement() {
	speed := c.cfg.ShipSpeed
	switch c.dir {
	case DirUp:
		c.engine.SetVelocity(c.ship, 0, -speed)
	case DirDown:
		c.engine.SetVelocity(c.ship, 0, speed)
	case DirLeft:
		c.engine.SetVelocity(c.ship, -speed, 0)
	case DirRight:
		c.engine.SetVelocity(c.ship, speed, 0)
	default:
		c.engine.SetVelocity(c.ship, 0, 0)
	}
}

func (c *Controller) spawnTick() {
	if c.spawned < c.cfg.TotalUFOs {
		c.spawnUFO()
		c.spawned++
	}
	if c.spawned >= c.cfg.TotalUFOs {
		c.timers.Cancel(c.spawnTimer)
		c.spawnTimer = 0
		if c.graceTimer == 0 && c.stage == Playing {
			c.graceTimer = c.timers.After(c.cfg.GracePeriod, c.graceElapsed)
		}
	}
}

func (c *Controller) spawnUFO() {
	w, h := c.engine.Viewport()
	lo := int(c.cfg.SpawnMargin)
	hi := int(h - c.cfg.SpawnMargin)
	y := h / 2
	if hi >= lo {
		y = float64(lo + c.rng.Intn(hi-lo+1))
	}
	variant := 1 + c.rng.Intn(c.cfg.UFOVariants)

	ufo := c.engine.Spawn(SpawnRequest{
		Kind:    KindUFO,
		Variant: variant,
		X:       w,
		Y:       y,
		VX:      -c.cfg.UFOSpeed,
	})
	if ufo == 0 {
		c.log.Warn("ufo spawn failed", zap.Int("index", c.spawned))
		return
	}
	c.ufos[ufo] = struct{}{}
}

func (c *Controller) graceElapsed() {
	c.graceTimer = 0
	if c.stage != Playing {
		return
	}
	if c.cfg.GracePolicy == GraceStrict {
		c.log.Debug("grace period elapsed, waiting for remaining kills",
			zap.Int("destroyed", c.destroyed),
			zap.Int("total", c.cfg.TotalUFOs),
		)
		return
	}
	c.beginAdvance("grace period elapsed")
}

func (c *Controller) startShooting() {
	if c.timers.Active(c.shootTimer) {
		return
	}
	c.fire()
	c.shootTimer = c.timers.Every(c.cfg.ShootInterval, c.fire)
}

func (c *Controller) stopShooting() {
	c.timers.Cancel(c.shootTimer)
	c.shootTimer = 0
}

func (c *Controller) fire() {
	x, y, ok := c.engine.Position(c.ship)
	if !ok {
		return
	}
	bullet := c.engine.Spawn(SpawnRequest{
		Kind: KindBullet,
		X:    x + c.cfg.BulletOffsetX,
		Y:    y,
		VX:   c.cfg.BulletSpeed,
	})
	if bullet == 0 {
		return
	}
	c.bullets[bullet] = struct{}{}
	c.engine.PlaySound(SoundShoot)
}

func (c *Controller) beginAdvance(reason string) {
	if c.stage != Playing {
		return
	}
	c.stage = Advancing
	c.dir = DirNone
	c.stopShooting()
	c.timers.Cancel(c.spawnTimer)
	c.timers.Cancel(c.graceTimer)
	c.spawnTimer, c.graceTimer = 0, 0

	c.engine.SetCollideWorldBounds(c.ship, false)
	c.advanceSpeed = c.cfg.AdvanceInitialSpeed
	c.engine.SetVelocity(c.ship, c.advanceSpeed, 0)
	c.advanceTimer = c.timers.Every(c.cfg.AdvanceTick, c.advanceTick)

	c.log.Info("stage advancing",
		zap.String("reason", reason),
		zap.Int("destroyed", c.destroyed),
		zap.Int("spawned", c.spawned),
	)
}

func (c *Controller) advanceTick() {
	w, _ := c.engine.Viewport()
	x, _, ok := c.engine.Position(c.ship)
	if ok && x < w+c.cfg.ExitMargin {
		c.advanceSpeed += c.cfg.AdvanceAcceleration
		c.engine.SetVelocity(c.ship, c.advanceSpeed, 0)
		return
	}
	c.finish(OutcomeSuccess)
}

func (c *Controller) finish(outcome Outcome) {
	if c.stage == Finished {
		return
	}
	c.stage = Finished
	c.outcome = outcome
	c.dir = DirNone
	c.Teardown()

	c.engine.Destroy(c.ship)
	c.ship = 0

	c.log.Info("stage finished",
		zap.Stringer("outcome", outcome),
		zap.Int("destroyed", c.destroyed),
		zap.Int("spawned", c.spawned),
	)
	c.engine.Notify(outcome)
	c.engine.AdvanceToScene(c.cfg.ExitScene)
}
