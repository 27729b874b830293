package component

import "github.com/muhamadriskonalfani/war-space/stage"

type ControlEvent struct {
	Signal stage.Signal
	Down   bool
}

// ControlQueue is a singleton filled by input sources and drained by the
// stage system once per tick.
type ControlQueue struct {
	Events []ControlEvent
}

func (q *ControlQueue) Push(sig stage.Signal, down bool) {
	if q == nil {
		return
	}
	q.Events = append(q.Events, ControlEvent{Signal: sig, Down: down})
}

func (q *ControlQueue) Drain() []ControlEvent {
	if q == nil || len(q.Events) == 0 {
		return nil
	}
	out := q.Events
	q.Events = nil
	return out
}

var ControlQueueComponent = NewComponent[ControlQueue]()
