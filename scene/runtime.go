package scene

import (
	"fmt"

	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
	"github.com/milk9111/isometric/ecs/entity"
	"github.com/milk9111/isometric/ecs/system"
	"github.com/milk9111/isometric/prefabs"
)

// Runtime is one simulated scene: input, movement and animation run by
// Step. It draws nothing on its own.
type Runtime struct {
	Spec      prefabs.SceneSpec
	World     *ecs.World
	Scheduler *ecs.Scheduler
}

// NewRuntime builds a world for spec. keys drives every player-tagged entity.
func NewRuntime(spec prefabs.SceneSpec, keys system.KeySource, opts entity.Options) (*Runtime, error) {
	w := ecs.NewWorld()
	if err := entity.LoadScene(w, spec, opts); err != nil {
		return nil, err
	}
	return &Runtime{
		Spec:  spec,
		World: w,
		Scheduler: ecs.NewScheduler(
			system.NewInputSystem(keys),
			system.NewMovementSystem(),
			system.NewAnimationSystem(),
		),
	}, nil
}

// Load reads the named scene spec and builds its runtime.
func Load(name string, keys system.KeySource, opts entity.Options) (*Runtime, error) {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, err
	}
	return NewRuntime(spec, keys, opts)
}

// Step advances the scene by dt seconds.
func (r *Runtime) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	r.Scheduler.Update(r.World, dt)
}

// Player returns the player's transform and animation, if there is one.
func (r *Runtime) Player() (*component.Transform, *component.Animation, bool) {
	e, _, ok := ecs.First(r.World, component.PlayerTagComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	t, ok := ecs.Get(r.World, e, component.TransformComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	a, _ := ecs.Get(r.World, e, component.AnimationComponent.Kind())
	return t, a, true
}

func (r *Runtime) String() string {
	t, a, ok := r.Player()
	if !ok {
		return r.Spec.Name
	}
	frame := 0
	if a != nil {
		frame = a.Animator.Frame()
	}
	return fmt.Sprintf("%s pos=(%.0f,%.0f) frame=%d", r.Spec.Name, t.X, t.Y, frame)
}
