package ecs

import "github.com/milk9111/isometric/ecs/component"

// ForEach calls fn for every live entity holding kind. Components must not
// be added or removed for that kind while iterating.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := w.store(ka.ID(), false)
	if sa == nil {
		return
	}
	for i, e := range sa.denseEntities {
		if !w.entities.isAlive(e) {
			continue
		}
		fn(e, sa.denseValues[i].(*A))
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	for i, e := range sa.denseEntities {
		if !w.entities.isAlive(e) {
			continue
		}
		b, ok := sb.Get(e.id()).(*B)
		if !ok {
			continue
		}
		fn(e, sa.denseValues[i].(*A), b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := w.store(kc.ID(), false).Get(e.id()).(*C)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := w.store(kd.ID(), false).Get(e.id()).(*D)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}

// First returns the first live entity holding kind.
func First[A any](w *World, ka component.ComponentKind[A]) (Entity, *A, bool) {
	sa := w.store(ka.ID(), false)
	for i, e := range sa.Entities() {
		if w.entities.isAlive(e) {
			return e, sa.denseValues[i].(*A), true
		}
	}
	return 0, nil, false
}

// Count returns how many live entities hold kind.
func Count[A any](w *World, ka component.ComponentKind[A]) int {
	return w.store(ka.ID(), false).Len()
}
