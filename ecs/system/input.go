package system

import (
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
)

type InputSystem struct {
	keys KeySource
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World, _ float64) {
	if i == nil || i.keys == nil || w == nil {
		return
	}
	state := i.keys.Directions()
	ecs.ForEach2(w, component.InputComponent.Kind(), component.PlayerTagComponent.Kind(), func(_ ecs.Entity, input *component.Input, _ *component.PlayerTag) {
		*input = state
	})
}
