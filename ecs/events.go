package ecs

import "github.com/jakecoffman/cp"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventHostileDestroyed = "hostile_destroyed"
	EventHostileEscaped   = "hostile_escaped"
	EventHostileRammed    = "hostile_rammed"
	EventPlayerHit        = "player_hit"
	EventPlayerLifeLost   = "player_life_lost"
	EventPlayerDied       = "player_died"
)

// HostileRemoved is the payload of the hostile_* events. It is emitted once
// per hostile; Score is zero unless the hostile was destroyed by damage.
type HostileRemoved struct {
	Entity   Entity
	Category string
	Score    int
	Position cp.Vector
	Boss     bool
}

// PlayerDamaged is the payload of the player_* events.
type PlayerDamaged struct {
	Entity Entity
	Amount int
	Health int
	Lives  int
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

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
