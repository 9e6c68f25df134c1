package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/milk9111/isometric/assets"
	"github.com/milk9111/isometric/levels"
)

// atlasgen writes the generated tileset and sprite sheets as PNGs, and
// optionally a random map that uses the tileset.
func main() {
	out := flag.String("out", ".", "repository root to write into")
	columns := flag.Int("columns", 3, "tileset columns")
	tileW := flag.Int("tile-w", 420, "visible tile width in texels")
	tileH := flag.Int("tile-h", 337, "visible tile height in texels")
	tiles := flag.Int("tiles", 9, "number of tiles in the tileset")
	mapName := flag.String("map", "", "write a random map with this name to levels/")
	mapW := flag.Int("map-w", 10, "random map width")
	mapH := flag.Int("map-h", 10, "random map height")
	seed := flag.Uint64("seed", 1, "random map seed")
	flag.Parse()

	if *columns <= 0 || *tiles <= 0 {
		log.Fatalf("atlasgen: columns and tiles must be positive")
	}
	rows := (*tiles + *columns - 1) / *columns

	// Cells are padded like the 1380x1073 reference tileset.
	imgW := *columns * *tileW * 46 / 42
	imgH := rows * *tileH * 1073 / 1011
	tileset := assets.FallbackTileset(imgW, imgH, *tileW, *tileH, *columns, rows)
	must(writePNG(filepath.Join(*out, "levels", "tileset.png"), tileset))

	must(writePNG(filepath.Join(*out, "assets", "sprites", "sword_run.png"), assets.FallbackSheet(8, 1, 64, 64)))
	must(writePNG(filepath.Join(*out, "assets", "sprites", "run.png"), assets.FallbackSheet(8, 1, 64, 64)))

	if *mapName == "" {
		return
	}
	r := rand.New(rand.NewPCG(*seed, *seed))
	cells := *mapW * *mapH
	g := &levels.Grid{
		TilesetPath: "tileset.png",
		TileCount:   *tiles,
		TileWidth:   128,
		TileHeight:  64,
		Width:       *mapW,
		Height:      *mapH,
		Tiles:       make([]int, cells),
	}
	for i := range g.Tiles {
		g.Tiles[i] = r.IntN(*tiles)
	}
	path := levels.DiskPath(*mapName)
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	f, err := os.Create(filepath.Join(*out, path))
	must(err)
	defer f.Close()
	must(levels.Encode(f, g))
	fmt.Println("wrote", f.Name())
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("atlasgen: encode %s: %w", path, err)
	}
	fmt.Println("wrote", path)
	return f.Close()
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
