package termview

import (
	"sync"
	"time"

	"github.com/milk9111/isometric/ecs/component"
)

// DefaultHold is how long a key counts as held after its last press.
// Terminals only report key repeats, never releases.
const DefaultHold = 150 * time.Millisecond

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Keys turns discrete key presses into held directions. It is safe for one
// goroutine to Press while another reads Directions.
type Keys struct {
	Hold time.Duration
	Now  func() time.Time

	mu   sync.Mutex
	last [4]time.Time
}

func NewKeys() *Keys {
	return &Keys{Hold: DefaultHold, Now: time.Now}
}

func (k *Keys) Press(d Direction) {
	if d < Up || d > Right {
		return
	}
	k.mu.Lock()
	k.last[d] = k.now()
	k.mu.Unlock()
}

// Release forgets every held direction.
func (k *Keys) Release() {
	k.mu.Lock()
	k.last = [4]time.Time{}
	k.mu.Unlock()
}

func (k *Keys) Directions() component.Input {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	held := func(d Direction) bool {
		return !k.last[d].IsZero() && now.Sub(k.last[d]) <= k.Hold
	}
	return component.Input{Up: held(Up), Down: held(Down), Left: held(Left), Right: held(Right)}
}

func (k *Keys) now() time.Time {
	if k.Now == nil {
		return time.Now()
	}
	return k.Now()
}
