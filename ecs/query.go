package ecs

import "github.com/milk9111/striker/ecs/component"

// ForEach visits every entity carrying the component. The visit order is the
// dense storage order. Entities destroyed by fn before being reached are
// skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := store(w, kind, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.Entities() {
		if v := s.Get(e); v != nil {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities carrying both components, iterating the smaller
// store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := store(w, ka, false)
	sb := store(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	ents := sa.Entities()
	if sb.Len() < sa.Len() {
		ents = sb.Entities()
	}
	for _, e := range ents {
		a := sa.Get(e)
		b := sb.Get(e)
		if a == nil || b == nil {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := store(w, kc, false)
	if sc == nil || fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c := sc.Get(e); c != nil {
			fn(e, a, b, c)
		}
	})
}
