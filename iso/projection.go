package iso

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection maps grid cells onto a diamond layout in screen space.
// Screen space here is y-up: larger x+y places a tile higher on screen.
type Projection struct {
	TileWidth  float64
	TileHeight float64
	ScaleX     float64
	ScaleY     float64
	OffsetX    float64
	OffsetY    float64
}

// Project returns the screen position of cell (x, y).
func (p Projection) Project(x, y int) (float64, float64) {
	sx := float64(x-y)*(p.TileWidth/2)*p.ScaleX + p.OffsetX
	sy := float64(x+y)*(p.TileHeight/2)*p.ScaleY + p.OffsetY
	return sx, sy
}

// Model returns the tile quad transform for cell (x, y): translate to the
// projected position, then scale the unit tile by ScaleX/ScaleY.
func (p Projection) Model(x, y int) mgl32.Mat4 {
	sx, sy := p.Project(x, y)
	return mgl32.Translate3D(float32(sx), float32(sy), 0).
		Mul4(mgl32.Scale3D(float32(p.ScaleX), float32(p.ScaleY), 1))
}

// TileSize returns the on-screen size of one tile quad.
func (p Projection) TileSize() (float64, float64) {
	return p.TileWidth * p.ScaleX, p.TileHeight * p.ScaleY
}

// Bounds returns the screen-space box covering every tile quad of a
// width x height grid.
func (p Projection) Bounds(width, height int) (minX, minY, maxX, maxY float64) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, 0
	}
	tw, th := p.TileSize()
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	corners := [][2]int{{0, 0}, {width - 1, 0}, {0, height - 1}, {width - 1, height - 1}}
	for _, c := range corners {
		x, y := p.Project(c[0], c[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x+tw)
		maxY = math.Max(maxY, y+th)
	}
	return minX, minY, maxX, maxY
}

// DrawOrder returns the cells of a width x height grid back to front for the
// y-up layout: cells with the largest x+y sit highest and are drawn first.
func DrawOrder(width, height int) [][2]int {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([][2]int, 0, width*height)
	for d := width + height - 2; d >= 0; d-- {
		for x := 0; x < width; x++ {
			y := d - x
			if y < 0 || y >= height {
				continue
			}
			out = append(out, [2]int{x, y})
		}
	}
	return out
}
