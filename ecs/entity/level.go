package entity

import (
	"fmt"
	"image"
	"log"

	"github.com/milk9111/isometric/assets"
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/iso"
	"github.com/milk9111/isometric/levels"
	"github.com/milk9111/isometric/prefabs"
)

// LoadScene populates w with the scene's bounds, its tilemap if one is
// named, and every entity prefab.
func LoadScene(w *ecs.World, scene prefabs.SceneSpec, opts Options) error {
	if w == nil {
		return fmt.Errorf("load scene: world is nil")
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(scene.Window.Width),
		Height: float64(scene.Window.Height),
	}); err != nil {
		return err
	}

	mapName := scene.Map
	if opts.Map != "" {
		mapName = opts.Map
	}
	if mapName != "" {
		if _, err := LoadTileMap(w, mapName, scene, opts); err != nil {
			return fmt.Errorf("load scene %s: %w", scene.Name, err)
		}
	}

	for _, prefab := range scene.Entities {
		if _, err := BuildEntity(w, prefab, opts); err != nil {
			return fmt.Errorf("load scene %s: %w", scene.Name, err)
		}
	}
	return nil
}

// LoadTileMap parses a map, resolves its tileset and checks every tile
// against the atlas. A missing tileset is replaced by a generated atlas with
// the same layout.
func LoadTileMap(w *ecs.World, mapName string, scene prefabs.SceneSpec, opts Options) (ecs.Entity, error) {
	grid, err := levels.Load(mapName)
	if err != nil {
		return 0, err
	}

	columns, tileW, tileH := atlasLayout(grid, scene.Atlas)
	rows := (grid.TileCount + columns - 1) / columns
	if rows <= 0 {
		rows = 1
	}

	tileset := grid.TilesetFile()
	src, err := render.LoadImageOr(tileset, func() image.Image {
		return assets.FallbackTileset(columns*tileW, rows*tileH, tileW, tileH, columns, rows)
	})
	if src == nil {
		return 0, err
	}
	if err != nil {
		log.Printf("entity: tileset for %s: %v; using generated atlas", grid.Source, err)
	}

	b := src.Bounds()
	atlas, err := iso.NewAtlas(b.Dx(), b.Dy(), tileW, tileH, columns)
	if err != nil {
		return 0, fmt.Errorf("tileset %s: %w", tileset, err)
	}
	if err := grid.Validate(atlas); err != nil {
		return 0, err
	}

	rects := make([]image.Rectangle, len(grid.Tiles))
	for i, idx := range grid.Tiles {
		r, err := atlas.PixelRect(idx, b.Dx(), b.Dy())
		if err != nil {
			return 0, err
		}
		rects[i] = r.Add(b.Min)
	}

	p := scene.Projection
	tm := &component.TileMap{
		Grid:       grid,
		Projection: grid.Projection(p.ScaleX, p.ScaleY, p.OffsetX, p.OffsetY),
		Atlas:      atlas,
		Source:     src,
		Rects:      rects,
	}
	win := scene.Window
	if minX, minY, maxX, maxY := tm.Projection.Bounds(grid.Width, grid.Height); minX < 0 || minY < 0 || maxX > float64(win.Width) || maxY > float64(win.Height) {
		log.Printf("entity: map %s spans (%.0f,%.0f)-(%.0f,%.0f), outside the %dx%d window", grid.Source, minX, minY, maxX, maxY, win.Width, win.Height)
	}
	if opts.Textures != nil {
		_, tm.Image = opts.Textures.Acquire(src)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TileMapComponent.Kind(), tm); err != nil {
		return 0, err
	}
	return e, nil
}

// atlasLayout fills unset atlas fields: the visible tile defaults to the
// map's tile size and the tileset to three columns.
func atlasLayout(grid *levels.Grid, spec prefabs.AtlasSpec) (columns, tileW, tileH int) {
	columns, tileW, tileH = spec.Columns, spec.TileW, spec.TileH
	if columns <= 0 {
		columns = 3
	}
	if tileW <= 0 {
		tileW = grid.TileWidth
	}
	if tileH <= 0 {
		tileH = grid.TileHeight
	}
	return columns, tileW, tileH
}
