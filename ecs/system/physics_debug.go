package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/muhamadriskonalfani/war-space/ecs/component"
)

var (
	debugBoundsColor = color.RGBA{R: 0x66, G: 0xb3, B: 0xff, A: 0xff}
	debugShipColor   = color.RGBA{R: 0x33, G: 0xff, B: 0x33, A: 0xff}
	debugUFOColor    = color.RGBA{R: 0xe6, G: 0x66, B: 0xe6, A: 0xff}
	debugBulletColor = color.RGBA{R: 0xff, G: 0xd9, B: 0x33, A: 0xff}
)

// DebugDraw outlines every shape in the space, coloured by role.
func (ps *PhysicsSystem) DebugDraw(screen *ebiten.Image) {
	if ps == nil || ps.space == nil || screen == nil {
		return
	}
	cp.DrawSpace(ps.space, &shapeDrawer{screen: screen, ps: ps})
}

type shapeDrawer struct {
	screen *ebiten.Image
	ps     *PhysicsSystem
}

func (d *shapeDrawer) line(a, b cp.Vector, c color.Color) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, c, false)
}

func (d *shapeDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	vector.StrokeCircle(d.screen, float32(pos.X), float32(pos.Y), float32(radius), 1, toRGBA(fill), false)
}

func (d *shapeDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, toRGBA(fill))
}

func (d *shapeDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, toRGBA(fill))
}

func (d *shapeDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toRGBA(fill)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *shapeDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	vector.DrawFilledRect(d.screen, float32(pos.X-size/2), float32(pos.Y-size/2), float32(size), float32(size), toRGBA(fill), false)
}

func (d *shapeDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *shapeDrawer) OutlineColor() cp.FColor {
	return toFColor(debugShipColor)
}

// Shapes are outlined in their fill colour.
func (d *shapeDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return toFColor(debugBoundsColor)
	}
	var role component.CollisionRole
	if info := d.ps.entities[d.ps.shapes[shape]]; info != nil {
		role = info.role
	}
	switch role {
	case component.RoleUFO:
		return toFColor(debugUFOColor)
	case component.RoleBullet:
		return toFColor(debugBulletColor)
	default:
		return toFColor(debugShipColor)
	}
}

func (d *shapeDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1}
}

func (d *shapeDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.1, B: 0.1, A: 1}
}

func (d *shapeDrawer) Data() interface{} {
	return nil
}

func toFColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func toRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
