package ecs

import "github.com/milk9111/striker/ecs/component"

// System advances a world by one simulation step.
type System interface {
	Update(w *World, dt float64)
}

type storage interface {
	remove(e Entity)
}

// World owns entities, their component stores and the per-tick event queue.
// A World is not safe for concurrent use; it belongs to the simulation
// goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]storage
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]storage)}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. It returns
// false for stale or already destroyed handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func store[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		set, _ := s.(*SparseSet[T])
		return set
	}
	if !create {
		return nil
	}
	set := &SparseSet[T]{}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]storage)
	}
	w.stores[kind.ID()] = set
	return set
}
