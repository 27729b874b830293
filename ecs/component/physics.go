package component

import "github.com/jakecoffman/cp"

// CollisionRole picks the shape's collision type and filter.
type CollisionRole string

const (
	RoleShip   CollisionRole = "ship"
	RoleUFO    CollisionRole = "ufo"
	RoleBullet CollisionRole = "bullet"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by the physics system.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Radius float64
	Mass   float64
	Role   CollisionRole
	Sensor bool
	// CollideBounds keeps the body inside the viewport walls.
	CollideBounds bool
	// AppliedBounds is the filter state last pushed to the shape.
	AppliedBounds bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
