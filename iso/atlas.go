package iso

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	ErrOutOfRange    = errors.New("iso: tile index out of range")
	ErrInvalidLayout = errors.New("iso: invalid atlas layout")
)

// Atlas describes a tileset image cut into a fixed-column grid. Texel sizes
// are normalized to the image dimensions.
type Atlas struct {
	Columns       int
	Rows          int
	TileTexWidth  float64
	TileTexHeight float64
}

// NewAtlas derives an atlas from the image size and the visible tile size in
// pixels. Rows is however many whole tiles fit vertically.
func NewAtlas(imageW, imageH, tileW, tileH, columns int) (Atlas, error) {
	if imageW <= 0 || imageH <= 0 || tileW <= 0 || tileH <= 0 || columns <= 0 {
		return Atlas{}, fmt.Errorf("%w: image %dx%d, tile %dx%d, columns %d", ErrInvalidLayout, imageW, imageH, tileW, tileH, columns)
	}
	if columns*tileW > imageW {
		return Atlas{}, fmt.Errorf("%w: %d columns of %dpx exceed image width %d", ErrInvalidLayout, columns, tileW, imageW)
	}
	rows := imageH / tileH
	if rows == 0 {
		return Atlas{}, fmt.Errorf("%w: tile height %d exceeds image height %d", ErrInvalidLayout, tileH, imageH)
	}
	return Atlas{
		Columns:       columns,
		Rows:          rows,
		TileTexWidth:  float64(tileW) / float64(imageW),
		TileTexHeight: float64(tileH) / float64(imageH),
	}, nil
}

// Capacity is the number of addressable tiles.
func (a Atlas) Capacity() int {
	return a.Columns * a.Rows
}

// Check reports whether index addresses a cell of the atlas.
func (a Atlas) Check(index int) error {
	if index < 0 || index >= a.Capacity() {
		return fmt.Errorf("%w: index %d, capacity %d", ErrOutOfRange, index, a.Capacity())
	}
	return nil
}

// UV returns the bottom-left corner of the tile's cell in normalized texture
// coordinates. The atlas origin is bottom-left while tiles are numbered
// row-major from the top, hence the flip on v.
func (a Atlas) UV(index int) (u, v float64, err error) {
	if err := a.Check(index); err != nil {
		return 0, 0, err
	}
	col := index % a.Columns
	row := index / a.Columns
	u = float64(col) * a.TileTexWidth
	v = 1 - float64(row)*a.TileTexHeight - a.TileTexHeight
	return u, v, nil
}

// PixelRect returns the tile's cell in a top-left origin image of the given
// size, the layout image decoders and ebiten use.
func (a Atlas) PixelRect(index, imageW, imageH int) (image.Rectangle, error) {
	u, v, err := a.UV(index)
	if err != nil {
		return image.Rectangle{}, err
	}
	x0 := int(math.Round(u * float64(imageW)))
	y0 := int(math.Round((1 - v - a.TileTexHeight) * float64(imageH)))
	w := int(math.Round(a.TileTexWidth * float64(imageW)))
	h := int(math.Round(a.TileTexHeight * float64(imageH)))
	return image.Rect(x0, y0, x0+w, y0+h), nil
}
