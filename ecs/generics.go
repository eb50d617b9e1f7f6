package ecs

import "github.com/milk9111/striker/ecs/component"

// Add attaches (or replaces) a component value on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	store(w, kind, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return store(w, kind, false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return store(w, kind, false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v := store(w, kind, false).Get(e)
	return v, v != nil
}

// Count returns how many entities carry the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return store(w, kind, false).Len()
}

// First returns any entity that has the component.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := store(w, kind, false)
	if s.Len() == 0 {
		return 0, false
	}
	return s.denseEntities[0], true
}
