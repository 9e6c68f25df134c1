package component

import "github.com/milk9111/isometric/anim"

type AnimationPolicy string

const (
	PolicyAlways AnimationPolicy = "always"
	// PolicyMoving only advances while the entity's Input reports movement.
	PolicyMoving AnimationPolicy = "moving"
)

type Animation struct {
	Animator *anim.Animator
	Policy   AnimationPolicy
}

var AnimationComponent = NewComponent[Animation]()
