package levels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/milk9111/isometric/assets"
	"github.com/milk9111/isometric/iso"
)

// Grid is a loaded map description. It is not modified after loading.
type Grid struct {
	Source      string
	TilesetPath string
	TileCount   int
	TileWidth   int
	TileHeight  int
	Width       int
	Height      int
	Tiles       []int // row-major, Width*Height
}

// At returns the tile index of cell (x, y).
func (g *Grid) At(x, y int) (int, bool) {
	if g == nil || x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return g.Tiles[y*g.Width+x], true
}

// TilesetFile resolves the tileset path against the map file's directory.
func (g *Grid) TilesetFile() string {
	if g == nil || g.TilesetPath == "" {
		return ""
	}
	if filepath.IsAbs(g.TilesetPath) || g.Source == "" {
		return g.TilesetPath
	}
	return filepath.Join(filepath.Dir(g.Source), g.TilesetPath)
}

// Projection builds the projector for this grid's tile size.
func (g *Grid) Projection(scaleX, scaleY, offsetX, offsetY float64) iso.Projection {
	return iso.Projection{
		TileWidth:  float64(g.TileWidth),
		TileHeight: float64(g.TileHeight),
		ScaleX:     scaleX,
		ScaleY:     scaleY,
		OffsetX:    offsetX,
		OffsetY:    offsetY,
	}
}

// Validate checks every tile index against the declared tile count and the
// atlas the tiles will be sampled from.
func (g *Grid) Validate(atlas iso.Atlas) error {
	if g == nil {
		return errors.New("levels: nil grid")
	}
	limit := atlas.Capacity()
	if g.TileCount > 0 && g.TileCount < limit {
		limit = g.TileCount
	}
	for i, idx := range g.Tiles {
		if idx < 0 || idx >= limit {
			return fmt.Errorf("levels: cell (%d,%d): %w: index %d, limit %d",
				i%g.Width, i/g.Width, iso.ErrOutOfRange, idx, limit)
		}
	}
	return nil
}

// MaxTiles caps width*height of a parsed map.
const MaxTiles = 1 << 22

// Parse reads the whitespace-delimited map format:
//
//	tilesetPath tileCount tileWidth tileHeight mapWidth mapHeight idx...
//
// source is recorded on the grid and in any returned *assets.LoadError.
func Parse(r io.Reader, source string) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	fail := func(reason string, err error) (*Grid, error) {
		return nil, &assets.LoadError{Path: source, Reason: reason, Err: err}
	}

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	g := &Grid{Source: source}
	tok, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return fail("read map", err)
		}
		return fail("missing tileset path", io.ErrUnexpectedEOF)
	}
	g.TilesetPath = tok

	header := []struct {
		name string
		dst  *int
	}{
		{"tile count", &g.TileCount},
		{"tile width", &g.TileWidth},
		{"tile height", &g.TileHeight},
		{"map width", &g.Width},
		{"map height", &g.Height},
	}
	for _, h := range header {
		tok, ok := next()
		if !ok {
			return fail("missing "+h.name, io.ErrUnexpectedEOF)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return fail("parse "+h.name, err)
		}
		if v <= 0 {
			return fail(fmt.Sprintf("%s must be positive, got %d", h.name, v), nil)
		}
		*h.dst = v
	}

	if g.Width > MaxTiles/g.Height {
		return fail(fmt.Sprintf("map too large: %dx%d exceeds %d tiles", g.Width, g.Height, MaxTiles), nil)
	}
	n := g.Width * g.Height
	for len(g.Tiles) < n {
		tok, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return fail("read map", err)
			}
			return fail(fmt.Sprintf("expected %d tile indices, got %d", n, len(g.Tiles)), io.ErrUnexpectedEOF)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return fail(fmt.Sprintf("parse tile %d", len(g.Tiles)), err)
		}
		if v < 0 {
			return fail(fmt.Sprintf("tile %d: negative index %d", len(g.Tiles), v), iso.ErrOutOfRange)
		}
		g.Tiles = append(g.Tiles, v)
	}
	return g, nil
}

// Encode writes g in the format Parse reads, one map row per line.
func Encode(w io.Writer, g *Grid) error {
	if g == nil {
		return errors.New("levels: nil grid")
	}
	if len(g.Tiles) != g.Width*g.Height {
		return fmt.Errorf("levels: grid has %d tiles, want %d", len(g.Tiles), g.Width*g.Height)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d %d %d\n%d %d\n", g.TilesetPath, g.TileCount, g.TileWidth, g.TileHeight, g.Width, g.Height)
	row := make([]string, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			row[x] = strconv.Itoa(g.Tiles[y*g.Width+x])
		}
		bw.WriteString(strings.Join(row, " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
