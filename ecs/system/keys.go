package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isometric/ecs/component"
)

// KeySource reports which direction keys are held this frame.
type KeySource interface {
	Directions() component.Input
}

// EbitenKeys reads WASD and the arrow keys from the ebiten window.
type EbitenKeys struct{}

func (EbitenKeys) Directions() component.Input {
	return component.Input{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
}

// StaticKeys is a fixed key state, used by tests and scripted runs.
type StaticKeys component.Input

func (k StaticKeys) Directions() component.Input {
	return component.Input(k)
}
