package system

import (
	"github.com/milk9111/isometric/common"
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
)

type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Update moves entities by Speed*dt along each held axis. Diagonals are not
// normalized. Clamped movers stay inside the first LevelBounds found.
func (m *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	_, bounds, hasBounds := ecs.First(w, component.LevelBoundsComponent.Kind())

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.InputComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, t *component.Transform, in *component.Input, mv *component.Movement) {
		dx, dy := in.Direction()
		if dx == 0 && dy == 0 {
			return
		}
		t.X += dx * mv.Speed * dt
		t.Y += dy * mv.Speed * dt
		if mv.Clamp && hasBounds {
			t.X = common.Clamp(t.X, 0, bounds.Width)
			t.Y = common.Clamp(t.Y, 0, bounds.Height)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventMoved, Data: e})
	})
}
