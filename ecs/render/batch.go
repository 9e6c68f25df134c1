package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchQuads keeps every chunk addressable with uint16 indices.
const maxBatchQuads = (1 << 16) / 4

// QuadBatch accumulates textured quads for DrawTriangles. Reset it each
// frame; the backing slices are reused.
type QuadBatch struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func (b *QuadBatch) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// Len returns the number of queued quads.
func (b *QuadBatch) Len() int {
	return len(b.vertices) / 4
}

// AddRect queues an axis-aligned quad covering dst that samples src.
func (b *QuadBatch) AddRect(x0, y0, x1, y1 float32, src image.Rectangle) {
	base := uint16((b.Len() % maxBatchQuads) * 4)
	sx0, sy0 := float32(src.Min.X), float32(src.Min.Y)
	sx1, sy1 := float32(src.Max.X), float32(src.Max.Y)
	b.vertices = append(b.vertices,
		vertex(x0, y0, sx0, sy0),
		vertex(x1, y0, sx1, sy0),
		vertex(x0, y1, sx0, sy1),
		vertex(x1, y1, sx1, sy1),
	)
	b.indices = append(b.indices, base, base+1, base+2, base+1, base+3, base+2)
}

// AddModel queues a w x h quad transformed by model, which maps into a y-up
// space of height viewH. The quad is flipped into y-down screen space.
func (b *QuadBatch) AddModel(model mgl32.Mat4, w, h, viewH float32, src image.Rectangle) {
	lo := model.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	hi := model.Mul4x1(mgl32.Vec4{w, h, 0, 1})
	b.AddRect(lo.X(), viewH-hi.Y(), hi.X(), viewH-lo.Y(), src)
}

// Chunks calls fn with consecutive slices of at most maxBatchQuads quads.
func (b *QuadBatch) Chunks(fn func(vertices []ebiten.Vertex, indices []uint16)) {
	for start := 0; start < b.Len(); start += maxBatchQuads {
		end := min(start+maxBatchQuads, b.Len())
		fn(b.vertices[start*4:end*4], b.indices[start*6:end*6])
	}
}

// Vertices exposes the queued vertices for inspection.
func (b *QuadBatch) Vertices() []ebiten.Vertex {
	return b.vertices
}

func vertex(x, y, sx, sy float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: sx, SrcY: sy,
		ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
	}
}
