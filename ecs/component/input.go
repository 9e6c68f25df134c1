package component

// Input stores per-frame direction state for an entity.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Direction returns the unnormalized movement vector, y down.
func (in Input) Direction() (float64, float64) {
	var dx, dy float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	return dx, dy
}

// Moving reports whether any direction key is held. Opposite keys cancel.
func (in Input) Moving() bool {
	dx, dy := in.Direction()
	return dx != 0 || dy != 0
}

var InputComponent = NewComponent[Input]()
