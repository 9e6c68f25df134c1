package anim

import (
	"errors"
	"fmt"
	"image"
)

var ErrInvalidAnimation = errors.New("anim: invalid animation")

// Policy reports whether an animation should advance on the current tick.
type Policy func() bool

// Always never holds the animation.
func Always() bool { return true }

// Animator steps through the frames of one sprite-sheet row at a fixed
// interval. Frames are laid out left to right, animations top to bottom.
type Animator struct {
	frameCount    int
	rows          int
	frameDuration float64 // seconds

	frame   int
	row     int
	elapsed float64
}

// New creates an animator starting at frame 0 of row 0.
func New(frameCount, rows int, frameDuration float64) (*Animator, error) {
	if frameCount <= 0 || rows <= 0 || frameDuration <= 0 {
		return nil, fmt.Errorf("%w: frames %d, rows %d, duration %v", ErrInvalidAnimation, frameCount, rows, frameDuration)
	}
	return &Animator{frameCount: frameCount, rows: rows, frameDuration: frameDuration}, nil
}

// Tick accumulates dt and advances at most one frame once a full frame
// duration has elapsed. It reports whether the frame changed.
func (a *Animator) Tick(dt float64) bool {
	if a == nil || a.frameCount <= 0 {
		return false
	}
	a.elapsed += dt
	if a.elapsed < a.frameDuration {
		return false
	}
	a.frame = (a.frame + 1) % a.frameCount
	a.elapsed = 0
	return true
}

// Update ticks the animator only while active reports true. A held animator
// keeps its frame and does not accumulate time. A nil policy is always active.
func (a *Animator) Update(dt float64, active Policy) bool {
	if active != nil && !active() {
		return false
	}
	return a.Tick(dt)
}

// FrameCount returns the number of frames per row.
func (a *Animator) FrameCount() int {
	if a == nil {
		return 0
	}
	return a.frameCount
}

// Rows returns the number of animation rows in the sheet.
func (a *Animator) Rows() int {
	if a == nil {
		return 0
	}
	return a.rows
}

// FrameDuration returns the seconds each frame is shown.
func (a *Animator) FrameDuration() float64 {
	if a == nil {
		return 0
	}
	return a.frameDuration
}

// Frame returns the current frame index.
func (a *Animator) Frame() int {
	if a == nil {
		return 0
	}
	return a.frame
}

// Row returns the selected animation row.
func (a *Animator) Row() int {
	if a == nil {
		return 0
	}
	return a.row
}

// SetRow selects the animation row, clamped to the sheet.
func (a *Animator) SetRow(row int) {
	if a == nil || a.rows <= 0 {
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= a.rows {
		row = a.rows - 1
	}
	a.row = row
}

// Elapsed returns the time accumulated toward the next frame.
func (a *Animator) Elapsed() float64 {
	if a == nil {
		return 0
	}
	return a.elapsed
}

// Reset rewinds to the first frame of the current row.
func (a *Animator) Reset() {
	if a == nil {
		return
	}
	a.frame = 0
	a.elapsed = 0
}

// Offset returns the normalized sheet offset of the current frame.
func (a *Animator) Offset() (s, t float64) {
	if a == nil || a.frameCount <= 0 || a.rows <= 0 {
		return 0, 0
	}
	s = float64(a.frame) * (1 / float64(a.frameCount))
	t = float64(a.row) * (1 / float64(a.rows))
	return s, t
}

// FrameRect returns the current frame's cell in a sheet of the given size.
func (a *Animator) FrameRect(sheetW, sheetH int) image.Rectangle {
	if a == nil || a.frameCount <= 0 || a.rows <= 0 {
		return image.Rectangle{}
	}
	fw := sheetW / a.frameCount
	fh := sheetH / a.rows
	x := a.frame * fw
	y := a.row * fh
	return image.Rect(x, y, x+fw, y+fh)
}
