package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/muhamadriskonalfani/war-space/ecs"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

const (
	collisionTypeBounds cp.CollisionType = iota + 1
	collisionTypeShip
	collisionTypeUFO
	collisionTypeBullet
)

const (
	categoryBounds uint = 1 << iota
	categoryShip
	categoryUFO
	categoryBullet
)

const boundsRadius = 1.0

// PhysicsSystem mirrors PhysicsBody entities into a Chipmunk space with no
// gravity. The space only resolves ship/wall contacts; bullet/UFO and
// ship/UFO contacts are reported as overlap events on the world queue.
type PhysicsSystem struct {
	space         *cp.Space
	step          time.Duration
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity

	bounds    []*cp.Shape
	boundsW   float64
	boundsH   float64
	pending   []ecs.OverlapEvent
	seenPairs map[[2]ecs.Entity]struct{}
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	role  component.CollisionRole
}

func NewPhysicsSystem(step time.Duration) *PhysicsSystem {
	if step <= 0 {
		step = DefaultStep
	}
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:     space,
		step:      step,
		entities:  make(map[ecs.Entity]*bodyInfo),
		shapes:    make(map[*cp.Shape]ecs.Entity),
		seenPairs: make(map[[2]ecs.Entity]struct{}),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies returns how many entities currently own a body in the space.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncWorldBounds(w)
	ps.syncEntities(w)

	ps.pending = ps.pending[:0]
	clear(ps.seenPairs)
	ps.space.Step(ps.step.Seconds())

	ps.syncTransforms(w)
	ps.flushOverlaps(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	ps.handlersReady = true

	bulletHandler := ps.space.NewCollisionHandler(collisionTypeBullet, collisionTypeUFO)
	bulletHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		ps.recordOverlap(ecs.PairBulletUFO, arb)
		return true
	}

	shipHandler := ps.space.NewCollisionHandler(collisionTypeShip, collisionTypeUFO)
	shipHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		ps.recordOverlap(ecs.PairShipUFO, arb)
		return true
	}
}

func (ps *PhysicsSystem) recordOverlap(pair ecs.OverlapPair, arb *cp.Arbiter) {
	sa, sb := arb.Shapes()
	a, okA := ps.shapes[sa]
	b, okB := ps.shapes[sb]
	if !okA || !okB {
		return
	}
	// Keep the UFO on the B side whatever order Chipmunk hands us.
	if info := ps.entities[a]; info != nil && info.role == component.RoleUFO {
		a, b = b, a
	}
	key := [2]ecs.Entity{a, b}
	if _, dup := ps.seenPairs[key]; dup {
		return
	}
	ps.seenPairs[key] = struct{}{}
	ps.pending = append(ps.pending, ecs.OverlapEvent{Pair: pair, A: a, B: b})
}

func (ps *PhysicsSystem) flushOverlaps(w *ecs.World) {
	for _, ev := range ps.pending {
		if !w.IsAlive(ev.A) || !w.IsAlive(ev.B) {
			continue
		}
		w.Events().Push(ecs.Event{Type: ecs.EventOverlap, Data: ev})
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
		info, ok := ps.entities[e]
		if !ok {
			info = ps.createBodyInfo(t, pb)
			if info == nil {
				return
			}
			ps.entities[e] = info
			ps.shapes[info.shape] = e
			pb.Body = info.body
			pb.Shape = info.shape
		}

		if info.role == component.RoleShip && pb.CollideBounds != pb.AppliedBounds {
			info.shape.SetFilter(shapeFilter(info.role, pb.CollideBounds))
			pb.AppliedBounds = pb.CollideBounds
		}

		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocity(v.X, v.Y)
		} else {
			info.body.SetVelocity(0, 0)
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(t *component.Transform, pb *component.PhysicsBody) *bodyInfo {
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	var shape *cp.Shape
	switch {
	case pb.Radius > 0:
		shape = cp.NewCircle(body, pb.Radius, cp.Vector{})
	case pb.Width > 0 && pb.Height > 0:
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	default:
		return nil
	}

	shape.SetSensor(pb.Sensor)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionType(pb.Role))
	shape.SetFilter(shapeFilter(pb.Role, pb.CollideBounds))
	pb.AppliedBounds = pb.CollideBounds

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape, role: pb.Role}
}

func collisionType(role component.CollisionRole) cp.CollisionType {
	switch role {
	case component.RoleShip:
		return collisionTypeShip
	case component.RoleUFO:
		return collisionTypeUFO
	case component.RoleBullet:
		return collisionTypeBullet
	default:
		return 0
	}
}

func shapeFilter(role component.CollisionRole, collideBounds bool) cp.ShapeFilter {
	switch role {
	case component.RoleShip:
		mask := categoryUFO
		if collideBounds {
			mask |= categoryBounds
		}
		return cp.NewShapeFilter(cp.NO_GROUP, categoryShip, mask)
	case component.RoleUFO:
		return cp.NewShapeFilter(cp.NO_GROUP, categoryUFO, categoryShip|categoryBullet)
	case component.RoleBullet:
		return cp.NewShapeFilter(cp.NO_GROUP, categoryBullet, categoryUFO)
	default:
		return cp.NewShapeFilter(cp.NO_GROUP, 0, 0)
	}
}

// syncWorldBounds keeps four static walls on the viewport edges, rebuilding
// them when the viewport changes size.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	vp, ok := viewport(w)
	if !ok || vp.W <= 0 || vp.H <= 0 {
		return
	}
	if len(ps.bounds) > 0 && vp.W == ps.boundsW && vp.H == ps.boundsH {
		return
	}

	for _, shape := range ps.bounds {
		ps.space.RemoveShape(shape)
	}
	ps.bounds = ps.bounds[:0]

	corners := []cp.Vector{{X: 0, Y: 0}, {X: vp.W, Y: 0}, {X: vp.W, Y: vp.H}, {X: 0, Y: vp.H}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		shape := cp.NewSegment(ps.space.StaticBody, a, b, boundsRadius)
		shape.SetFriction(0)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypeBounds)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryBounds, categoryShip))
		ps.space.AddShape(shape)
		ps.bounds = append(ps.bounds, shape)
	}
	ps.boundsW, ps.boundsH = vp.W, vp.H
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	vp, hasViewport := viewport(w)
	for e, info := range ps.entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		if hasViewport && info.role == component.RoleShip {
			if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.CollideBounds {
				clamped := clampToViewport(pos, pb, vp)
				if clamped != pos {
					pos = clamped
					info.body.SetPosition(pos)
				}
			}
		}
		t.X = pos.X
		t.Y = pos.Y
	}
}

func clampToViewport(pos cp.Vector, pb *component.PhysicsBody, vp *component.Viewport) cp.Vector {
	hw, hh := pb.Width/2, pb.Height/2
	if pb.Radius > 0 {
		hw, hh = pb.Radius, pb.Radius
	}
	if vp.W > 2*hw {
		pos.X = math.Max(hw, math.Min(vp.W-hw, pos.X))
	}
	if vp.H > 2*hh {
		pos.Y = math.Max(hh, math.Min(vp.H-hh, pos.Y))
	}
	return pos
}

// cleanupEntities drops bodies whose entity died or lost its PhysicsBody.
// It runs outside the step so no shape is removed from inside a callback.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
	}
}
