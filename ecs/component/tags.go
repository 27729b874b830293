package component

type ShipTag struct{}

var ShipTagComponent = NewComponent[ShipTag]()

type BulletTag struct{}

var BulletTagComponent = NewComponent[BulletTag]()

type StarTag struct{}

var StarTagComponent = NewComponent[StarTag]()

// UFO marks an enemy; Variant selects the ufo1..ufoN sprite.
type UFO struct {
	Variant int
}

var UFOComponent = NewComponent[UFO]()
