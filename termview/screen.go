package termview

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// Paint copies fb onto a tcell screen using upper half blocks, two pixel
// rows per cell row.
func Paint(screen tcell.Screen, fb *image.RGBA) {
	b := fb.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		row := (y - b.Min.Y) / 2
		for x := b.Min.X; x < b.Max.X; x++ {
			top := fb.RGBAAt(x, y)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if y+1 < b.Max.Y {
				bottom := fb.RGBAAt(x, y+1)
				style = style.Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			screen.SetContent(x-b.Min.X, row, upperHalf, nil, style)
		}
	}
}

// FrameSize returns the framebuffer that fills a cols x rows terminal,
// leaving statusRows for text.
func FrameSize(cols, rows, statusRows int) (int, int) {
	rows -= statusRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows * 2
}

// Resize returns fb if it already has the given size, or a new buffer.
func Resize(fb *image.RGBA, w, h int) *image.RGBA {
	if fb != nil && fb.Bounds().Dx() == w && fb.Bounds().Dy() == h {
		return fb
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
