package assets

import (
	"bytes"
	"embed"
	"errors"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed shaders/*.kage
var assetsFS embed.FS

// SpriteShaderPath is the Kage shader used to draw atlas quads.
const SpriteShaderPath = "shaders/sprite.kage"

// LoadFile loads an embedded asset by assets-relative path, falling back to
// the file system.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if b, err := assetsFS.ReadFile(clean); err == nil {
		return b, nil
	}
	var lastErr error
	for _, p := range candidatePaths(path) {
		b, err := os.ReadFile(p)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fs.ErrNotExist
	}
	return nil, &LoadError{Path: path, Reason: "file not found", Err: lastErr}
}

// LoadImage reads and decodes an image asset.
func LoadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, &LoadError{Reason: "empty image path", Err: fs.ErrInvalid}
	}
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "decode image", Err: err}
	}
	return img, nil
}

// LoadImageOr loads path and substitutes fallback when the asset is missing
// or unreadable. The load error is returned alongside the fallback so callers
// can log it.
func LoadImageOr(path string, fallback func() image.Image) (image.Image, error) {
	img, err := LoadImage(path)
	if err == nil {
		return img, nil
	}
	var le *LoadError
	if fallback == nil || !errors.As(err, &le) {
		return nil, err
	}
	return fallback(), err
}

func candidatePaths(path string) []string {
	out := []string{path}
	if !filepath.IsAbs(path) {
		out = append(out, filepath.Join("assets", path))
	}
	return out
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
