package stage

// Stage is the ship's progression state.
type Stage int

const (
	Playing Stage = iota
	Advancing
	Finished
)

func (s Stage) String() string {
	switch s {
	case Playing:
		return "playing"
	case Advancing:
		return "advancing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Direction is the single held movement direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Signal is a logical control coming from the keyboard, a gamepad, the mouse
// or a touch on the on-screen pad.
type Signal int

const (
	SignalUp Signal = iota
	SignalDown
	SignalLeft
	SignalRight
	SignalShoot
)

// Signals lists every control signal in pad order.
var Signals = []Signal{SignalUp, SignalDown, SignalLeft, SignalRight, SignalShoot}

func (s Signal) String() string {
	switch s {
	case SignalUp:
		return "up"
	case SignalDown:
		return "down"
	case SignalLeft:
		return "left"
	case SignalRight:
		return "right"
	case SignalShoot:
		return "shoot"
	default:
		return "unknown"
	}
}

func (s Signal) direction() Direction {
	switch s {
	case SignalUp:
		return DirUp
	case SignalDown:
		return DirDown
	case SignalLeft:
		return DirLeft
	case SignalRight:
		return DirRight
	default:
		return DirNone
	}
}

// Outcome is the terminal result of a stage.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDefeat
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefeat:
		return "defeat"
	case OutcomeSuccess:
		return "success"
	default:
		return "none"
	}
}

// Kind selects which prefab the engine spawns.
type Kind int

const (
	KindShip Kind = iota
	KindUFO
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindUFO:
		return "ufo"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Handle is an engine-issued entity reference. Zero means "no entity".
type Handle uint64

// SpawnRequest describes one entity for the engine to create.
type SpawnRequest struct {
	Kind    Kind
	Variant int
	X       float64
	Y       float64
	VX      float64
	VY      float64
}

// Counter is a snapshot of wave progress.
type Counter struct {
	Spawned   int
	Destroyed int
	Total     int
}

// Engine is everything the controller needs from the rendering and physics
// side. Implementations must tolerate stale handles.
type Engine interface {
	Spawn(req SpawnRequest) Handle
	Destroy(h Handle)
	SetVelocity(h Handle, vx, vy float64)
	Position(h Handle) (x, y float64, ok bool)
	SetCollideWorldBounds(h Handle, collide bool)
	Viewport() (w, h float64)
	PlaySound(name string)
	Notify(outcome Outcome)
	AdvanceToScene(name string)
}

// SoundShoot is the clip name played for every bullet.
const SoundShoot = "shoot"
