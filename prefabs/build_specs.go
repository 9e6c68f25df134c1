package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

// SpriteComponentSpec names a sheet and the pixel size of one frame cell.
// The cell size is only used to generate a placeholder sheet.
type SpriteComponentSpec struct {
	Sheet        string  `yaml:"sheet"`
	FrameW       int     `yaml:"frame_w"`
	FrameH       int     `yaml:"frame_h"`
	OriginX      float64 `yaml:"origin_x"`
	OriginY      float64 `yaml:"origin_y"`
	CenterOrigin bool    `yaml:"center_origin"`
}

type AnimationComponentSpec struct {
	Frames        int     `yaml:"frames"`
	Rows          int     `yaml:"rows"`
	Row           int     `yaml:"row"`
	FrameDuration float64 `yaml:"frame_duration"`
	Policy        string  `yaml:"policy"`
}

type MovementComponentSpec struct {
	Speed float64 `yaml:"speed"`
	Clamp bool    `yaml:"clamp"`
}
