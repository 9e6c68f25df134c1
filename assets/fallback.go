package assets

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

var tilePalette = []color.RGBA{
	colornames.Forestgreen,
	colornames.Olivedrab,
	colornames.Sandybrown,
	colornames.Steelblue,
	colornames.Slategray,
	colornames.Peru,
	colornames.Seagreen,
	colornames.Cadetblue,
	colornames.Darkkhaki,
}

// FallbackTileset draws a columns x rows atlas of flat diamond tiles inside
// cells of tileW x tileH pixels, with a margin to imageW x imageH.
func FallbackTileset(imageW, imageH, tileW, tileH, columns, rows int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, imageW, imageH))
	for i := 0; i < columns*rows; i++ {
		col := i % columns
		row := i / columns
		cell := image.Rect(col*tileW, row*tileH, col*tileW+tileW, row*tileH+tileH)
		fill := tilePalette[i%len(tilePalette)]
		edge := shade(fill, 0.6)
		drawDiamond(img, cell, fill, edge)
	}
	return img
}

// FallbackSheet draws a frames x rows strip of a running figure, one
// frameW x frameH cell per frame. Each row uses a different body colour.
func FallbackSheet(frames, rows, frameW, frameH int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frames*frameW, rows*frameH))
	bodies := []color.RGBA{colornames.Crimson, colornames.Royalblue, colornames.Goldenrod, colornames.Mediumpurple}
	for r := 0; r < rows; r++ {
		body := bodies[r%len(bodies)]
		for f := 0; f < frames; f++ {
			cell := image.Rect(f*frameW, r*frameH, f*frameW+frameW, r*frameH+frameH)
			phase := 2 * math.Pi * float64(f) / float64(frames)
			drawRunner(img, cell, body, phase)
		}
	}
	return img
}

func drawDiamond(dst *image.RGBA, cell image.Rectangle, fill, edge color.RGBA) {
	cx := float64(cell.Min.X) + float64(cell.Dx())/2
	cy := float64(cell.Min.Y) + float64(cell.Dy())/2
	hw := float64(cell.Dx()) / 2
	hh := float64(cell.Dy()) / 2
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			d := math.Abs(float64(x)+0.5-cx)/hw + math.Abs(float64(y)+0.5-cy)/hh
			switch {
			case d <= 0.94:
				dst.SetRGBA(x, y, fill)
			case d <= 1:
				dst.SetRGBA(x, y, edge)
			}
		}
	}
}

func drawRunner(dst *image.RGBA, cell image.Rectangle, body color.RGBA, phase float64) {
	w := cell.Dx()
	h := cell.Dy()
	u := func(fx, fy float64) image.Point {
		return image.Pt(cell.Min.X+int(fx*float64(w)), cell.Min.Y+int(fy*float64(h)))
	}
	rect := func(a, b image.Point, c color.Color) {
		draw.Draw(dst, image.Rectangle{Min: a, Max: b}.Intersect(cell), &image.Uniform{C: c}, image.Point{}, draw.Src)
	}

	bob := 0.03 * math.Abs(math.Sin(phase))
	rect(u(0.4, 0.1-bob), u(0.6, 0.28-bob), colornames.Wheat)
	rect(u(0.38, 0.3-bob), u(0.62, 0.62-bob), body)

	swing := 0.14 * math.Sin(phase)
	legs := []float64{swing, -swing}
	for _, s := range legs {
		x := 0.45 + s
		rect(u(x, 0.62-bob), u(x+0.1, 0.92), shade(body, 0.7))
	}
	for _, s := range legs {
		x := 0.45 - s*0.8
		rect(u(x, 0.34-bob), u(x+0.08, 0.55-bob), colornames.Wheat)
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
