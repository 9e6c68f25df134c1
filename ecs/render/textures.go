package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureHandle indexes a texture owned by Textures. The zero handle is
// never valid.
type TextureHandle int

// Textures owns GPU images uploaded for a scene. Released slots are reused.
type Textures struct {
	slots []*ebiten.Image
	free  []int
}

// Acquire uploads src and returns its handle.
func (t *Textures) Acquire(src image.Image) (TextureHandle, *ebiten.Image) {
	if src == nil {
		return 0, nil
	}
	img := ebiten.NewImageFromImage(src)
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[idx] = img
		return TextureHandle(idx + 1), img
	}
	t.slots = append(t.slots, img)
	return TextureHandle(len(t.slots)), img
}

func (t *Textures) Get(h TextureHandle) *ebiten.Image {
	idx := int(h) - 1
	if t == nil || idx < 0 || idx >= len(t.slots) {
		return nil
	}
	return t.slots[idx]
}

// Release deallocates the texture behind h. Releasing twice is a no-op.
func (t *Textures) Release(h TextureHandle) {
	idx := int(h) - 1
	if t == nil || idx < 0 || idx >= len(t.slots) || t.slots[idx] == nil {
		return
	}
	t.slots[idx].Deallocate()
	t.slots[idx] = nil
	t.free = append(t.free, idx)
}

// Live returns the number of textures not yet released.
func (t *Textures) Live() int {
	if t == nil {
		return 0
	}
	return len(t.slots) - len(t.free)
}

// Close releases every texture.
func (t *Textures) Close() error {
	if t == nil {
		return nil
	}
	for i := range t.slots {
		t.Release(TextureHandle(i + 1))
	}
	return nil
}
