package main

import (
	"flag"
	"image"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/isometric/ecs/entity"
	"github.com/milk9111/isometric/scene"
	"github.com/milk9111/isometric/sfx"
	"github.com/milk9111/isometric/termview"
)

// isoterm runs a scene inside the local terminal.
type app struct {
	screen tcell.Screen
	rt     *scene.Runtime
	keys   *termview.Keys
	steps  *sfx.Footsteps

	raster termview.Rasterizer
	fb     *image.RGBA
}

type keyAction int

const (
	actionNone keyAction = iota
	actionMove
	actionStop
	actionQuit
)

// classifyKey maps a key press to what the viewer does with it.
func classifyKey(key tcell.Key, r rune) (keyAction, termview.Direction) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, 0
	case tcell.KeyUp:
		return actionMove, termview.Up
	case tcell.KeyDown:
		return actionMove, termview.Down
	case tcell.KeyLeft:
		return actionMove, termview.Left
	case tcell.KeyRight:
		return actionMove, termview.Right
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return actionQuit, 0
		case ' ':
			return actionStop, 0
		case 'w', 'W':
			return actionMove, termview.Up
		case 's', 'S':
			return actionMove, termview.Down
		case 'a', 'A':
			return actionMove, termview.Left
		case 'd', 'D':
			return actionMove, termview.Right
		}
	}
	return actionNone, 0
}

// apply feeds one key press into the held keys and reports whether the
// viewer keeps running.
func (a *app) apply(action keyAction, dir termview.Direction) bool {
	switch action {
	case actionQuit:
		return false
	case actionStop:
		a.keys.Release()
	case actionMove:
		a.keys.Press(dir)
	}
	return true
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(classifyKey(ev.Key(), ev.Rune()))
	case *tcell.EventFocus:
		// Key repeats stop arriving once the terminal loses focus.
		if !ev.Focused {
			a.keys.Release()
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) frame(dt float64) {
	a.rt.Step(dt)
	a.steps.Play(a.rt.World.Events().Drain())

	cols, rows := a.screen.Size()
	w, h := termview.FrameSize(cols, rows, 1)
	a.fb = termview.Resize(a.fb, w, h)
	a.raster.Draw(a.rt.World, a.rt.Spec, a.fb)
	termview.Paint(a.screen, a.fb)

	status := a.rt.String() + "  [wasd/arrows move, space stops, q quits]"
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		a.screen.SetContent(x, rows-1, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		a.screen.SetContent(x, rows-1, ' ', nil, style)
	}
	a.screen.Show()
}

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene prefab to run")
	mapName := flag.String("map", "", "override the scene's map")
	sound := flag.Bool("sound", false, "play footsteps")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	keys := termview.NewKeys()
	rt, err := scene.Load(*sceneName, keys, entity.Options{Map: *mapName})
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("isoterm: screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("isoterm: init screen: %v", err)
	}
	screen.EnableFocus()

	a := &app{screen: screen, rt: rt, keys: keys, steps: sfx.NewFootsteps()}
	if *sound {
		if err := a.steps.Init(); err != nil {
			log.Printf("isoterm: audio: %v", err)
		}
	}
	defer func() {
		a.steps.Close()
		screen.Fini()
	}()

	if *fps <= 0 {
		*fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.frame(now.Sub(last).Seconds())
			last = now
		}
	}
}
