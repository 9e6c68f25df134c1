package termview

import (
	"image"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	upperHalf = '▀'
)

func Home() string { return CSI + "H" }
func ClearScreen() string { return CSI + "2J" }
func HideCursor() string { return CSI + "?25l" }
func ShowCursor() string { return CSI + "?25h" }
func EnableAltScreen() string { return CSI + "?1049h" }
func DisableAltScreen() string { return CSI + "?1049l" }

// EncodeHalfBlocks writes fb as rows of upper half blocks: each character
// cell shows two vertical pixels, the top as foreground and the bottom as
// background. An odd last pixel row is paired with black.
func EncodeHalfBlocks(sb *strings.Builder, fb *image.RGBA) {
	b := fb.Bounds()
	sb.WriteString(Home())
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteString("\r\n")
		}
		var prevTop, prevBottom [3]uint8
		first := true
		for x := b.Min.X; x < b.Max.X; x++ {
			top := rgb(fb, x, y)
			bottom := [3]uint8{}
			if y+1 < b.Max.Y {
				bottom = rgb(fb, x, y+1)
			}
			if first || top != prevTop || bottom != prevBottom {
				writeSGR(sb, top, bottom)
				prevTop, prevBottom, first = top, bottom, false
			}
			sb.WriteRune(upperHalf)
		}
		sb.WriteString(Reset)
	}
}

func writeSGR(sb *strings.Builder, fg, bg [3]uint8) {
	sb.WriteString("\x1b[0;38;2;")
	writeTriple(sb, fg)
	sb.WriteString(";48;2;")
	writeTriple(sb, bg)
	sb.WriteByte('m')
}

func writeTriple(sb *strings.Builder, c [3]uint8) {
	sb.WriteString(strconv.Itoa(int(c[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[2])))
}

func rgb(fb *image.RGBA, x, y int) [3]uint8 {
	c := fb.RGBAAt(x, y)
	return [3]uint8{c.R, c.G, c.B}
}
