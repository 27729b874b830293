package component

// Transform is the entity centre in screen pixels.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// SetScale scales both axes uniformly.
func (t *Transform) SetScale(s float64) {
	t.ScaleX, t.ScaleY = s, s
}

// Translate moves the transform by v over dt seconds.
func (t *Transform) Translate(v Velocity, dt float64) {
	t.X += v.X * dt
	t.Y += v.Y * dt
}

// Velocity in pixels per second. Bodies owned by the physics system take it
// as their target velocity; everything else is integrated by MovementSystem.
type Velocity struct {
	X float64
	Y float64
}

var (
	TransformComponent = NewComponent[Transform]()
	VelocityComponent  = NewComponent[Velocity]()
)
