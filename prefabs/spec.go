package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes one demo: its window, optional tilemap and the entity
// prefabs placed in it.
type SceneSpec struct {
	Name       string         `yaml:"name"`
	Window     WindowSpec     `yaml:"window"`
	Background *YAMLColor     `yaml:"background"`
	Map        string         `yaml:"map"`
	Projection ProjectionSpec `yaml:"projection"`
	Atlas      AtlasSpec      `yaml:"atlas"`
	Entities   []string       `yaml:"entities"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ProjectionSpec struct {
	ScaleX  float64 `yaml:"scale_x"`
	ScaleY  float64 `yaml:"scale_y"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// AtlasSpec is the tileset layout: tiles per row and the visible tile size
// in texels.
type AtlasSpec struct {
	Columns int `yaml:"columns"`
	TileW   int `yaml:"tile_w"`
	TileH   int `yaml:"tile_h"`
}

func LoadSceneSpec(name string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return spec, err
	}
	if spec.Window.Width <= 0 || spec.Window.Height <= 0 {
		return spec, fmt.Errorf("prefabs: scene %s: window size %dx%d", name, spec.Window.Width, spec.Window.Height)
	}
	if spec.Projection.ScaleX == 0 {
		spec.Projection.ScaleX = 1
	}
	if spec.Projection.ScaleY == 0 {
		spec.Projection.ScaleY = 1
	}
	return spec, nil
}

// BackgroundColor returns the scene clear colour, black when unset.
func (s SceneSpec) BackgroundColor() color.Color {
	if s.Background == nil || s.Background.Color == nil {
		return color.Black
	}
	return s.Background.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
