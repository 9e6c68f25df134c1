package scene

import (
	"errors"
	"testing"

	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/prefabs"
)

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestCloseAllClosesEverything(t *testing.T) {
	boom := errors.New("boom")
	first, second := &closer{err: boom}, &closer{}
	err := closeAll(first, second)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the first error, got %v", err)
	}
	if !first.closed || !second.closed {
		t.Fatalf("expected both closed, got %v %v", first.closed, second.closed)
	}
}

func TestCloseAllNilResources(t *testing.T) {
	var w *prefabs.Watcher
	var tex *render.Textures
	if err := closeAll(w, tex); err != nil {
		t.Fatalf("expected nil-safe close, got %v", err)
	}
}
