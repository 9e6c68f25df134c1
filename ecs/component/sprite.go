package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a sheet of equally sized frame cells. Source is the decoded
// sheet; Image is its GPU copy and stays nil for headless renderers.
type Sprite struct {
	Source  image.Image
	Image   *ebiten.Image
	FrameW  int
	FrameH  int
	OriginX float64
	OriginY float64
}

var SpriteComponent = NewComponent[Sprite]()
