package termview

import (
	"image"
	"math"

	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/ecs/system"
	"github.com/milk9111/isometric/prefabs"
	"golang.org/x/image/draw"
)

// Rasterizer draws a scene world into a small RGBA framebuffer on the CPU.
// It queues the same quads as the window renderer and scales them to fit.
type Rasterizer struct {
	batch render.QuadBatch
}

// Draw letterboxes the scene's window into fb.
func (r *Rasterizer) Draw(w *ecs.World, spec prefabs.SceneSpec, fb *image.RGBA) {
	draw.Draw(fb, fb.Bounds(), image.NewUniform(spec.BackgroundColor()), image.Point{}, draw.Src)

	winW, winH := float64(spec.Window.Width), float64(spec.Window.Height)
	if winW <= 0 || winH <= 0 {
		return
	}
	fbW, fbH := float64(fb.Bounds().Dx()), float64(fb.Bounds().Dy())
	f := math.Min(fbW/winW, fbH/winH)
	ox := float64(fb.Bounds().Min.X) + (fbW-winW*f)/2
	oy := float64(fb.Bounds().Min.Y) + (fbH-winH*f)/2

	ecs.ForEach(w, component.TileMapComponent.Kind(), func(_ ecs.Entity, tm *component.TileMap) {
		if tm.Source == nil {
			return
		}
		r.batch.Reset()
		system.QueueTiles(&r.batch, tm, winH)
		r.blit(fb, tm.Source, f, ox, oy)
	})

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Source == nil {
			return
		}
		b := s.Source.Bounds()
		cell := image.Rect(0, 0, s.FrameW, s.FrameH)
		if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			cell = a.Animator.FrameRect(b.Dx(), b.Dy())
		}
		r.batch.Reset()
		x0, y0, x1, y1 := system.SpriteRect(t, s)
		r.batch.AddRect(x0, y0, x1, y1, cell.Add(b.Min))
		r.blit(fb, s.Source, f, ox, oy)
	})
}

func (r *Rasterizer) blit(fb *image.RGBA, src image.Image, f, ox, oy float64) {
	vs := r.batch.Vertices()
	for i := 0; i+3 < len(vs); i += 4 {
		a, b := vs[i], vs[i+3]
		dst := image.Rect(
			round(ox+float64(a.DstX)*f), round(oy+float64(a.DstY)*f),
			round(ox+float64(b.DstX)*f), round(oy+float64(b.DstY)*f),
		)
		if dst.Empty() || !dst.Overlaps(fb.Bounds()) {
			continue
		}
		sr := image.Rect(int(a.SrcX), int(a.SrcY), int(b.SrcX), int(b.SrcY))
		draw.NearestNeighbor.Scale(fb, dst, src, sr, draw.Over, nil)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
