package component

// Viewport is a singleton holding the logical screen size.
type Viewport struct {
	W float64
	H float64
}

var ViewportComponent = NewComponent[Viewport]()
