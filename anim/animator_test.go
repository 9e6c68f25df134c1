package anim

import (
	"errors"
	"image"
	"math"
	"testing"
)

func mustNew(t *testing.T, frames, rows int, d float64) *Animator {
	t.Helper()
	a, err := New(frames, rows, d)
	if err != nil {
		t.Fatalf("new animator: %v", err)
	}
	return a
}

func TestNewValidates(t *testing.T) {
	cases := []struct {
		name   string
		frames int
		rows   int
		d      float64
	}{
		{"zero_frames", 0, 1, 0.1},
		{"zero_rows", 8, 0, 0.1},
		{"zero_duration", 8, 1, 0},
		{"negative_duration", 8, 1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.frames, c.rows, c.d); !errors.Is(err, ErrInvalidAnimation) {
				t.Fatalf("expected ErrInvalidAnimation, got %v", err)
			}
		})
	}
}

func TestTickScenario(t *testing.T) {
	a := mustNew(t, 8, 1, 0.1)
	advances := 0
	for i := 0; i < 3; i++ {
		if a.Tick(0.04) {
			advances++
		}
	}
	if advances != 1 || a.Frame() != 1 {
		t.Fatalf("expected one advance to frame 1, got %d advances, frame %d", advances, a.Frame())
	}
}

func TestTickAdvancesAtMostOneFrame(t *testing.T) {
	cases := []struct {
		name string
		dt   float64
	}{
		{"exactly_one_duration", 0.1},
		{"two_durations", 0.2},
		{"ten_durations", 1.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := mustNew(t, 8, 1, 0.1)
			if !a.Tick(c.dt) {
				t.Fatalf("expected an advance")
			}
			if a.Frame() != 1 {
				t.Fatalf("expected frame 1, got %d", a.Frame())
			}
			if a.Elapsed() != 0 {
				t.Fatalf("expected accumulator reset, got %v", a.Elapsed())
			}
		})
	}
}

func TestTickMatchesFloorFormula(t *testing.T) {
	// Binary-exact tick sizes so accumulated time is tracked exactly.
	const (
		d = 0.25
		f = 1.0
		n = 5
	)
	a := mustNew(t, n, 1, f)
	for k := 1; k <= 60; k++ {
		a.Tick(d)
		want := int(math.Floor(float64(k)*d/f)) % n
		if a.Frame() != want {
			t.Fatalf("after %d ticks: expected frame %d, got %d", k, want, a.Frame())
		}
		if a.Frame() < 0 || a.Frame() >= n {
			t.Fatalf("frame %d out of range", a.Frame())
		}
	}
}

func TestUpdateGated(t *testing.T) {
	a := mustNew(t, 4, 1, 0.1)
	moving := false
	policy := func() bool { return moving }

	for i := 0; i < 10; i++ {
		if a.Update(0.05, policy) {
			t.Fatalf("held animator advanced")
		}
	}
	if a.Frame() != 0 || a.Elapsed() != 0 {
		t.Fatalf("held animator changed state: frame %d elapsed %v", a.Frame(), a.Elapsed())
	}

	moving = true
	a.Update(0.05, policy)
	if a.Frame() != 0 {
		t.Fatalf("expected frame 0 after half a duration, got %d", a.Frame())
	}
	moving = false
	a.Update(0.05, policy)
	if a.Elapsed() != 0.05 {
		t.Fatalf("expected held accumulator 0.05, got %v", a.Elapsed())
	}
	moving = true
	a.Update(0.05, policy)
	if a.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", a.Frame())
	}
}

func TestUpdateNilPolicyAlwaysActive(t *testing.T) {
	a := mustNew(t, 2, 1, 0.5)
	a.Update(0.5, nil)
	a.Update(0.5, Always)
	if a.Frame() != 0 {
		t.Fatalf("expected wrap back to frame 0, got %d", a.Frame())
	}
}

func TestOffsetAndRows(t *testing.T) {
	a := mustNew(t, 8, 4, 0.1)
	for i := 0; i < 3; i++ {
		a.Tick(0.1)
	}
	a.SetRow(2)

	s, tt := a.Offset()
	if s != 3*(1.0/8) || tt != 2*(1.0/4) {
		t.Fatalf("expected offset (0.375, 0.5), got (%v, %v)", s, tt)
	}
	if r := a.FrameRect(512, 256); r != image.Rect(192, 128, 256, 192) {
		t.Fatalf("unexpected frame rect %v", r)
	}

	a.SetRow(99)
	if a.Row() != 3 {
		t.Fatalf("expected row clamp to 3, got %d", a.Row())
	}
	a.SetRow(-1)
	if a.Row() != 0 {
		t.Fatalf("expected row clamp to 0, got %d", a.Row())
	}

	a.Reset()
	if a.Frame() != 0 || a.Elapsed() != 0 {
		t.Fatalf("reset did not rewind")
	}
}

func TestNilAnimator(t *testing.T) {
	var a *Animator
	if a.Tick(1) || a.Frame() != 0 || a.Row() != 0 {
		t.Fatalf("nil animator should be inert")
	}
	if s, tt := a.Offset(); s != 0 || tt != 0 {
		t.Fatalf("nil animator offset should be zero")
	}
}

func TestLayoutIsFixedAtConstruction(t *testing.T) {
	a := mustNew(t, 8, 2, 0.1)
	if a.FrameCount() != 8 || a.Rows() != 2 || a.FrameDuration() != 0.1 {
		t.Fatalf("unexpected layout %d frames, %d rows, %v s", a.FrameCount(), a.Rows(), a.FrameDuration())
	}
	for i := 0; i < 100; i++ {
		a.Tick(0.1)
		s, tt := a.Offset()
		if s < 0 || s >= 1 || tt < 0 || tt >= 1 {
			t.Fatalf("tick %d: offset (%v, %v) outside the sheet", i, s, tt)
		}
	}

	var zero Animator
	if zero.Tick(1) || zero.Frame() != 0 {
		t.Fatalf("zero animator should not advance")
	}
	if s, tt := zero.Offset(); s != 0 || tt != 0 {
		t.Fatalf("zero animator offset should be zero, got (%v, %v)", s, tt)
	}
	zero.SetRow(3)
	if zero.Row() != 0 {
		t.Fatalf("zero animator row should stay 0, got %d", zero.Row())
	}
	if r := zero.FrameRect(64, 64); !r.Empty() {
		t.Fatalf("zero animator frame rect should be empty, got %v", r)
	}
}
