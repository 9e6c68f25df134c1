package render

import (
	"image"
	"sync"
)

// Decoded images are shared across worlds; SSH sessions read them
// concurrently.
var (
	imagesMu sync.RWMutex
	images   = map[string]image.Image{}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img image.Image) {
	if key == "" || img == nil {
		return
	}
	imagesMu.Lock()
	images[key] = img
	imagesMu.Unlock()
}

// GetImage returns a cached image by key.
func GetImage(key string) image.Image {
	if key == "" {
		return nil
	}
	imagesMu.RLock()
	defer imagesMu.RUnlock()
	return images[key]
}

// ForgetImage drops a cached image so the next load rereads it.
func ForgetImage(key string) {
	imagesMu.Lock()
	delete(images, key)
	imagesMu.Unlock()
}

// ForgetAll empties the cache.
func ForgetAll() {
	imagesMu.Lock()
	clear(images)
	imagesMu.Unlock()
}
