package component

import "github.com/muhamadriskonalfani/war-space/stage"

// SceneRequest is a one-shot request from the stage to the outer game loop.
// Systems only write it; the battle scene consumes it and switches scenes.
type SceneRequest struct {
	Scene   string
	Outcome stage.Outcome
}

var SceneRequestComponent = NewComponent[SceneRequest]()
