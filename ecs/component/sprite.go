package component

import "github.com/hajimehoshi/ebiten/v2"

type Sprite struct {
	Image *ebiten.Image
	// Key is the asset name the image was resolved from.
	Key string
	// OriginX/OriginY are in image pixels; Centered overrides them with the
	// image centre at draw time.
	OriginX  float64
	OriginY  float64
	Centered bool
	Alpha    float64
}

var SpriteComponent = NewComponent[Sprite]()
