package system

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/iso"
)

// RenderSystem paints tilemaps back to front and then every animated
// sprite. Without a shader, frames are picked by source rectangle instead of
// the Offset uniform.
type RenderSystem struct {
	viewHeight float64
	shader     *ebiten.Shader
	batch      render.QuadBatch

	// Quads is the number of quads submitted by the last Draw.
	Quads int
}

func NewRenderSystem(viewHeight float64, shader *ebiten.Shader) *RenderSystem {
	return &RenderSystem{viewHeight: viewHeight, shader: shader}
}

func (r *RenderSystem) Update(*ecs.World, float64) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.Quads = 0

	ecs.ForEach(w, component.TileMapComponent.Kind(), func(_ ecs.Entity, tm *component.TileMap) {
		if tm.Image == nil {
			return
		}
		r.batch.Reset()
		QueueTiles(&r.batch, tm, r.viewHeight)
		r.submit(screen, tm.Image, nil)
	})

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Image == nil {
			return
		}
		var animator *component.Animation
		if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			animator = a
		}
		r.batch.Reset()
		bounds := s.Image.Bounds()
		x0, y0, x1, y1 := SpriteRect(t, s)

		if r.shader != nil {
			cell := image.Rect(0, 0, s.FrameW, s.FrameH).Add(bounds.Min)
			r.batch.AddRect(x0, y0, x1, y1, cell)
			var ox, oy float64
			if animator != nil {
				u, v := animator.Animator.Offset()
				ox, oy = u*float64(bounds.Dx()), v*float64(bounds.Dy())
			}
			r.submit(screen, s.Image, []float32{float32(ox), float32(oy)})
			return
		}

		cell := image.Rect(0, 0, s.FrameW, s.FrameH)
		if animator != nil {
			cell = animator.Animator.FrameRect(bounds.Dx(), bounds.Dy())
		}
		r.batch.AddRect(x0, y0, x1, y1, cell.Add(bounds.Min))
		r.submit(screen, s.Image, nil)
	})
}

func (r *RenderSystem) submit(screen, img *ebiten.Image, offset []float32) {
	r.batch.Chunks(func(vs []ebiten.Vertex, is []uint16) {
		if offset != nil {
			op := &ebiten.DrawTrianglesShaderOptions{}
			op.Images[0] = img
			op.Uniforms = map[string]any{"Offset": offset}
			screen.DrawTrianglesShader(vs, is, r.shader, op)
		} else {
			screen.DrawTriangles(vs, is, img, &ebiten.DrawTrianglesOptions{})
		}
	})
	r.Quads += r.batch.Len()
}

// QueueTiles adds every tile of tm to b in painter order. Projected
// positions are y-up and are flipped against viewHeight.
func QueueTiles(b *render.QuadBatch, tm *component.TileMap, viewHeight float64) {
	if tm == nil || tm.Grid == nil {
		return
	}
	g := tm.Grid
	tw, th := float32(g.TileWidth), float32(g.TileHeight)
	for _, cell := range iso.DrawOrder(g.Width, g.Height) {
		idx := cell[1]*g.Width + cell[0]
		if idx >= len(tm.Rects) {
			continue
		}
		b.AddModel(tm.Projection.Model(cell[0], cell[1]), tw, th, float32(viewHeight), tm.Rects[idx])
	}
}

// SpriteRect returns the screen rectangle covered by one frame of s.
func SpriteRect(t *component.Transform, s *component.Sprite) (x0, y0, x1, y1 float32) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	left := t.X - s.OriginX*sx
	top := t.Y - s.OriginY*sy
	return float32(left), float32(top), float32(left + float64(s.FrameW)*sx), float32(top + float64(s.FrameH)*sy)
}
