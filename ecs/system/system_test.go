package system

import (
	"image"
	"testing"

	"github.com/milk9111/isometric/anim"
	"github.com/milk9111/isometric/ecs"
	"github.com/milk9111/isometric/ecs/component"
	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/levels"
)

func newMover(t *testing.T, w *ecs.World, policy component.AnimationPolicy) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	animator, err := anim.New(8, 1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 50, Y: 50}))
	must(t, ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{Speed: 100, Clamp: true}))
	must(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Animator: animator, Policy: policy}))
	return e
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestInputSystemCopiesKeys(t *testing.T) {
	w := ecs.NewWorld()
	e := newMover(t, w, component.PolicyAlways)
	other := ecs.CreateEntity(w)
	must(t, ecs.Add(w, other, component.InputComponent.Kind(), &component.Input{}))

	NewInputSystem(StaticKeys{Right: true, Up: true}).Update(w, 0)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if !in.Right || !in.Up || in.Left || in.Down {
		t.Fatalf("unexpected input %+v", *in)
	}
	if in, _ := ecs.Get(w, other, component.InputComponent.Kind()); in.Moving() {
		t.Fatalf("untagged entity should not receive keys")
	}
}

func TestMovementSystem(t *testing.T) {
	cases := []struct {
		name   string
		keys   StaticKeys
		dt     float64
		wantX  float64
		wantY  float64
		events int
	}{
		{"idle", StaticKeys{}, 0.5, 50, 50, 0},
		{"right", StaticKeys{Right: true}, 0.25, 75, 50, 1},
		{"diagonal", StaticKeys{Left: true, Down: true}, 0.1, 40, 60, 1},
		{"cancel", StaticKeys{Left: true, Right: true}, 0.5, 50, 50, 0},
		{"clamped", StaticKeys{Right: true, Up: true}, 2, 120, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newMover(t, w, component.PolicyAlways)
			bounds := ecs.CreateEntity(w)
			must(t, ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 120, Height: 90}))

			sched := ecs.NewScheduler(NewInputSystem(c.keys), NewMovementSystem())
			sched.Update(w, c.dt)

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != c.wantX || tr.Y != c.wantY {
				t.Fatalf("expected (%v,%v), got (%v,%v)", c.wantX, c.wantY, tr.X, tr.Y)
			}
			if got := w.Events().Len(); got != c.events {
				t.Fatalf("expected %d events, got %d", c.events, got)
			}
		})
	}
}

func TestAnimationSystemPolicies(t *testing.T) {
	cases := []struct {
		name      string
		policy    component.AnimationPolicy
		keys      StaticKeys
		wantFrame int
	}{
		{"always_idle", component.PolicyAlways, StaticKeys{}, 2},
		{"moving_idle", component.PolicyMoving, StaticKeys{}, 0},
		{"moving_walking", component.PolicyMoving, StaticKeys{Down: true}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newMover(t, w, c.policy)
			sched := ecs.NewScheduler(NewInputSystem(c.keys), NewAnimationSystem())

			var advanced int
			for i := 0; i < 4; i++ {
				sched.Update(w, 0.06)
				for _, evt := range w.Events().Drain() {
					if evt.Type == ecs.EventFrameAdvanced {
						fe := evt.Data.(ecs.FrameEvent)
						if fe.Entity != e {
							t.Fatalf("event for unexpected entity %v", fe.Entity)
						}
						advanced++
					}
				}
			}
			a, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
			if got := a.Animator.Frame(); got != c.wantFrame {
				t.Fatalf("expected frame %d, got %d", c.wantFrame, got)
			}
			if advanced != c.wantFrame {
				t.Fatalf("expected %d frame events, got %d", c.wantFrame, advanced)
			}
		})
	}
}

func TestQueueTilesPainterOrder(t *testing.T) {
	grid := &levels.Grid{TileWidth: 64, TileHeight: 32, Width: 2, Height: 2, Tiles: []int{0, 1, 2, 3}}
	tm := &component.TileMap{
		Grid:       grid,
		Projection: grid.Projection(1, 1, 0, 0),
		Rects: []image.Rectangle{
			image.Rect(0, 0, 10, 10),
			image.Rect(10, 0, 20, 10),
			image.Rect(0, 10, 10, 20),
			image.Rect(10, 10, 20, 20),
		},
	}
	var b render.QuadBatch
	QueueTiles(&b, tm, 100)
	if b.Len() != 4 {
		t.Fatalf("expected 4 quads, got %d", b.Len())
	}
	v := b.Vertices()
	// The far tile (1,1) is painted first and the near tile (0,0) last.
	if v[0].SrcX != 10 || v[0].SrcY != 10 {
		t.Fatalf("expected tile 3 first, got src (%v,%v)", v[0].SrcX, v[0].SrcY)
	}
	last := v[12]
	if last.SrcX != 0 || last.SrcY != 0 {
		t.Fatalf("expected tile 0 last, got src (%v,%v)", last.SrcX, last.SrcY)
	}
	// Tile (0,0) projects to (0,0) in y-up space, so its top edge is 32
	// pixels above the bottom of a 100 pixel view.
	if last.DstX != 0 || last.DstY != 68 {
		t.Fatalf("unexpected tile 0 corner (%v,%v)", last.DstX, last.DstY)
	}
	// Tile (1,1) sits 32 pixels higher on screen than (0,0).
	if v[0].DstY != 36 {
		t.Fatalf("unexpected tile 3 corner y %v", v[0].DstY)
	}
}

func TestSpriteRect(t *testing.T) {
	tr := &component.Transform{X: 100, Y: 50, ScaleX: 2}
	s := &component.Sprite{FrameW: 64, FrameH: 32, OriginX: 32, OriginY: 16}
	x0, y0, x1, y1 := SpriteRect(tr, s)
	if x0 != 36 || y0 != 34 || x1 != 164 || y1 != 66 {
		t.Fatalf("unexpected rect (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}
}

func TestPolicyFor(t *testing.T) {
	if !policyFor(component.PolicyAlways, false)() {
		t.Fatalf("always policy should be active")
	}
	if policyFor(component.PolicyMoving, false)() {
		t.Fatalf("moving policy should hold while idle")
	}
	if !policyFor("", false)() {
		t.Fatalf("empty policy should default to always")
	}
}
