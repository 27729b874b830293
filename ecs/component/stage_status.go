package component

import "github.com/muhamadriskonalfani/war-space/stage"

// StageStatus mirrors the controller for the HUD.
type StageStatus struct {
	Stage    stage.Stage
	Counter  stage.Counter
	Outcome  stage.Outcome
	Shooting bool
}

var StageStatusComponent = NewComponent[StageStatus]()
