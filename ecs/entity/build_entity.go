package entity

import (
	"fmt"
	"image"
	"log"

	"github.com/milk9111/isometric/anim"
	"github.com/milk9111/isometric/assets"
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/prefabs"
)

// Options controls how entities are materialized. A nil Textures builds
// headless entities whose sprites only carry decoded images.
type Options struct {
	Textures *render.Textures
	// Map replaces the scene's map when set.
	Map string
}

type buildContext struct {
	PrefabPath string
	Spec       prefabs.EntityBuildSpec
	Options    Options
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag": addPlayerTag,
	"input":      addInput,
	"transform":  addTransform,
	"sprite":     addSprite,
	"animation":  addAnimation,
	"movement":   addMovement,
}

var componentBuildOrder = []string{
	"player_tag",
	"input",
	"transform",
	"animation",
	"sprite",
	"movement",
}

func BuildEntity(w *ecs.World, prefabPath string, opts Options) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Spec: spec, Options: opts}

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	t := &component.Transform{X: spec.X, Y: spec.Y, ScaleX: spec.ScaleX, ScaleY: spec.ScaleY}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := decodeAnimation(raw)
	if err != nil {
		return err
	}
	animator, err := anim.New(spec.Frames, spec.Rows, spec.FrameDuration)
	if err != nil {
		return err
	}
	animator.SetRow(spec.Row)

	policy := component.AnimationPolicy(spec.Policy)
	switch policy {
	case "":
		policy = component.PolicyAlways
	case component.PolicyAlways, component.PolicyMoving:
	default:
		return fmt.Errorf("unknown animation policy %q", spec.Policy)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Animator: animator, Policy: policy})
}

func decodeAnimation(raw any) (prefabs.AnimationComponentSpec, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return spec, err
	}
	if spec.Rows == 0 {
		spec.Rows = 1
	}
	return spec, nil
}

// addSprite loads the sheet and sizes one frame cell from the animation
// layout. A missing sheet is replaced by a generated one.
func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Sheet == "" {
		return fmt.Errorf("sprite sheet path is empty")
	}

	frames, rows := 1, 1
	if rawAnim, ok := ctx.Spec.Components["animation"]; ok {
		a, err := decodeAnimation(rawAnim)
		if err != nil {
			return err
		}
		frames, rows = max(a.Frames, 1), max(a.Rows, 1)
	}
	fw, fh := spec.FrameW, spec.FrameH
	if fw <= 0 {
		fw = 64
	}
	if fh <= 0 {
		fh = 64
	}

	src, err := render.LoadImageOr(spec.Sheet, func() image.Image {
		return assets.FallbackSheet(frames, rows, fw, fh)
	})
	if src == nil {
		return err
	}
	if err != nil {
		log.Printf("entity: %s: %v; using generated sheet", ctx.PrefabPath, err)
	}

	b := src.Bounds()
	s := &component.Sprite{
		Source:  src,
		FrameW:  b.Dx() / frames,
		FrameH:  b.Dy() / rows,
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
	}
	if s.FrameW <= 0 || s.FrameH <= 0 {
		return fmt.Errorf("sheet %s (%dx%d) is smaller than %dx%d frames", spec.Sheet, b.Dx(), b.Dy(), frames, rows)
	}
	if spec.CenterOrigin {
		s.OriginX = float64(s.FrameW) / 2
		s.OriginY = float64(s.FrameH) / 2
	}
	if ctx.Options.Textures != nil {
		_, s.Image = ctx.Options.Textures.Acquire(src)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), s)
}

func addMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Speed < 0 {
		return fmt.Errorf("movement speed must not be negative, got %v", spec.Speed)
	}
	return ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{Speed: spec.Speed, Clamp: spec.Clamp})
}
