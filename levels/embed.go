package levels

import (
	"bytes"
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/isometric/assets"
)

//go:embed *.txt
var LevelsFS embed.FS

// Load reads a map description by name. A copy under levels/ on disk takes
// precedence over the embedded one so edits can be hot reloaded.
func Load(name string) (*Grid, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return Parse(bytes.NewReader(data), DiskPath(clean))
	}
	if data, err := LevelsFS.ReadFile(clean); err == nil {
		return Parse(bytes.NewReader(data), path.Join("levels", clean))
	}
	return LoadFile(name)
}

// LoadFile reads a map description from an arbitrary file system path.
func LoadFile(p string) (*Grid, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, &assets.LoadError{Path: p, Reason: "open map", Err: err}
	}
	return Parse(bytes.NewReader(data), p)
}

// DiskPath maps a level name onto the levels/ directory.
func DiskPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}

func cleanLevelPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".txt"
	}
	return s
}
