package component

// Cullable marks entities removed once they are Margin pixels past any
// viewport edge. With Notify set the cull system reports the exit as an event
// and leaves destruction to the owner.
type Cullable struct {
	Margin float64
	Notify bool
}

var CullableComponent = NewComponent[Cullable]()
