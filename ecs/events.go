package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventOverlap     = "overlap"
	EventOutOfBounds = "out_of_bounds"
)

// OverlapPair names which collision pair produced an overlap.
type OverlapPair string

const (
	PairBulletUFO OverlapPair = "bullet_ufo"
	PairShipUFO   OverlapPair = "ship_ufo"
)

// OverlapEvent is pushed by the physics step. A is the bullet or the ship, B
// is always the UFO.
type OverlapEvent struct {
	Pair OverlapPair
	A    Entity
	B    Entity
}

// OutOfBoundsEvent is pushed by culling for entities that ask to be told
// rather than removed.
type OutOfBoundsEvent struct {
	Entity Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
