package render

import (
	"errors"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isometric/assets"
	"github.com/milk9111/isometric/iso"
)

func TestQuadBatchAddRect(t *testing.T) {
	var b QuadBatch
	b.AddRect(10, 20, 30, 40, image.Rect(1, 2, 3, 4))
	b.AddRect(0, 0, 1, 1, image.Rect(0, 0, 1, 1))
	if b.Len() != 2 {
		t.Fatalf("expected 2 quads, got %d", b.Len())
	}
	v := b.Vertices()
	if v[0].DstX != 10 || v[0].DstY != 20 || v[3].DstX != 30 || v[3].DstY != 40 {
		t.Fatalf("unexpected corners %+v %+v", v[0], v[3])
	}
	if v[3].SrcX != 3 || v[3].SrcY != 4 {
		t.Fatalf("unexpected source corner %+v", v[3])
	}

	var indices []uint16
	b.Chunks(func(_ []ebiten.Vertex, is []uint16) {
		indices = append(indices, is...)
	})
	want := []uint16{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6}
	if len(indices) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(indices))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("index %d: expected %d, got %d", i, want[i], indices[i])
		}
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("expected empty batch after reset")
	}
}

func TestQuadBatchChunks(t *testing.T) {
	var b QuadBatch
	total := maxBatchQuads + 3
	for i := 0; i < total; i++ {
		b.AddRect(0, 0, 1, 1, image.Rect(0, 0, 1, 1))
	}
	var sizes []int
	b.Chunks(func(vs []ebiten.Vertex, is []uint16) {
		if len(is) != len(vs)/4*6 {
			t.Fatalf("chunk has %d vertices and %d indices", len(vs), len(is))
		}
		for _, idx := range is {
			if int(idx) >= len(vs) {
				t.Fatalf("index %d outside chunk of %d vertices", idx, len(vs))
			}
		}
		sizes = append(sizes, len(vs)/4)
	})
	if len(sizes) != 2 || sizes[0] != maxBatchQuads || sizes[1] != 3 {
		t.Fatalf("unexpected chunk sizes %v", sizes)
	}
}

func TestQuadBatchAddModel(t *testing.T) {
	p := iso.Projection{TileWidth: 64, TileHeight: 32, ScaleX: 2, ScaleY: 1, OffsetX: 100, OffsetY: 10}
	var b QuadBatch
	b.AddModel(p.Model(1, 0), 64, 32, 200, image.Rect(0, 0, 64, 32))
	v := b.Vertices()
	// Project(1,0) = (164, 26); the quad spans 128x32 in y-up space.
	if v[0].DstX != 164 || v[3].DstX != 292 {
		t.Fatalf("unexpected x span %v..%v", v[0].DstX, v[3].DstX)
	}
	if v[0].DstY != 200-58 || v[3].DstY != 200-26 {
		t.Fatalf("unexpected y span %v..%v", v[0].DstY, v[3].DstY)
	}
}

func TestTexturesZeroHandle(t *testing.T) {
	var tex Textures
	if tex.Get(0) != nil || tex.Get(3) != nil {
		t.Fatalf("expected nil for unknown handles")
	}
	tex.Release(0)
	if h, img := tex.Acquire(nil); h != 0 || img != nil {
		t.Fatalf("expected zero handle for nil source")
	}
	if tex.Live() != 0 {
		t.Fatalf("expected no live textures")
	}
	if err := tex.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestLoadImageCaching(t *testing.T) {
	key := "sprites/missing-for-test.png"
	defer ForgetImage(key)

	if _, err := LoadImage(key); err == nil {
		t.Fatalf("expected error for missing image")
	}

	sized := func(n int) func() image.Image {
		return func() image.Image { return image.NewRGBA(image.Rect(0, 0, n, n)) }
	}
	img, err := LoadImageOr(key, sized(4))
	var le *assets.LoadError
	if !errors.As(err, &le) || img == nil {
		t.Fatalf("expected fallback with LoadError, got img=%v err=%v", img, err)
	}
	// A second caller with another layout gets its own fallback and error.
	again, err := LoadImageOr(key, sized(16))
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError on every fallback, got %v", err)
	}
	if again.Bounds().Dx() != 16 {
		t.Fatalf("expected a 16px fallback, got %v", again.Bounds())
	}
	if GetImage(key) != nil {
		t.Fatalf("fallback must not be cached")
	}
	if _, err := LoadImage(""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
