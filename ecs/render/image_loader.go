package render

import (
	"fmt"
	"image"

	"github.com/milk9111/isometric/assets"
)

// LoadImage decodes an image from assets or the file system and caches it
// by key.
func LoadImage(key string) (image.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := assets.LoadImage(key)
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

// LoadImageOr behaves like LoadImage but substitutes fallback on failure.
// Only real images are cached: a fallback depends on the caller's layout, so
// it is rebuilt and the load error returned on every call.
func LoadImageOr(key string, fallback func() image.Image) (image.Image, error) {
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := assets.LoadImageOr(key, fallback)
	if err == nil && img != nil {
		RegisterImage(key, img)
	}
	return img, err
}
