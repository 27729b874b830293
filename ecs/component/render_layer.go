package component

// Draw layers, back to front.
const (
	LayerStars   = 0
	LayerUFOs    = 10
	LayerBullets = 15
	LayerShip    = 20
)

var layerNames = map[string]int{
	"stars":   LayerStars,
	"ufos":    LayerUFOs,
	"bullets": LayerBullets,
	"ship":    LayerShip,
}

// RenderLayer orders sprites; higher indexes draw on top.
type RenderLayer struct {
	Index int
}

// LayerIndex resolves a named layer from prefab data.
func LayerIndex(name string) (int, bool) {
	idx, ok := layerNames[name]
	return idx, ok
}

var RenderLayerComponent = NewComponent[RenderLayer]()
