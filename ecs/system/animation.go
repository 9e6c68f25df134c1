package system

import (
	"github.com/milk9111/isometric/anim"
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, animation *component.Animation) {
		if animation.Animator == nil {
			return
		}
		moving := false
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			moving = in.Moving()
		}
		if !animation.Animator.Update(dt, policyFor(animation.Policy, moving)) {
			return
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventFrameAdvanced,
			Data: ecs.FrameEvent{Entity: e, Frame: animation.Animator.Frame(), Moving: moving},
		})
	})
}

func policyFor(p component.AnimationPolicy, moving bool) anim.Policy {
	if p == component.PolicyMoving {
		return func() bool { return moving }
	}
	return anim.Always
}
