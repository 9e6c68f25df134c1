package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isometric/iso"
	"github.com/milk9111/isometric/levels"
)

// TileMap is a loaded grid with its atlas. Rects holds the atlas pixel
// rectangle of each cell, row-major, resolved once at load time.
type TileMap struct {
	Grid       *levels.Grid
	Projection iso.Projection
	Atlas      iso.Atlas
	Source     image.Image
	Image      *ebiten.Image
	Rects      []image.Rectangle
}

var TileMapComponent = NewComponent[TileMap]()
