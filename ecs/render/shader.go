package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/isometric/assets"
)

// CompileSpriteShader builds the atlas shader. Its Offset uniform shifts
// the sampled position in source pixels.
func CompileSpriteShader() (*ebiten.Shader, error) {
	src, err := assets.LoadFile(assets.SpriteShaderPath)
	if err != nil {
		return nil, err
	}
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("render: compile %s: %w", assets.SpriteShaderPath, err)
	}
	return shader, nil
}
