package scene

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/isometric/ecs/entity"
	"github.com/milk9111/isometric/ecs/render"
	"github.com/milk9111/isometric/ecs/system"
	"github.com/milk9111/isometric/prefabs"
)

type Options struct {
	Scene string
	// Map replaces the scene's map when set.
	Map   string
	Watch bool
	Debug bool
	// Keys defaults to the window keyboard.
	Keys system.KeySource
}

// Game runs a scene in an ebiten window.
type Game struct {
	opts     Options
	rt       *Runtime
	renderer *system.RenderSystem
	textures *render.Textures
	shader   *ebiten.Shader
	watcher  *prefabs.Watcher

	last   time.Time
	frames int
}

func NewGame(opts Options) (*Game, error) {
	if opts.Keys == nil {
		opts.Keys = system.EbitenKeys{}
	}
	g := &Game{opts: opts}

	shader, err := render.CompileSpriteShader()
	if err != nil {
		log.Printf("scene: %v; drawing frames without the shader", err)
	}
	g.shader = shader

	if err := g.load(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "levels", filepath.Join("assets", "sprites"))
		if err != nil {
			log.Printf("scene: watch: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) load() error {
	textures := &render.Textures{}
	rt, err := Load(g.opts.Scene, g.opts.Keys, entity.Options{Textures: textures, Map: g.opts.Map})
	if err != nil {
		_ = textures.Close()
		return err
	}
	renderer := system.NewRenderSystem(float64(rt.Spec.Window.Height), g.shader)
	rt.Scheduler.Add(renderer)

	if g.textures != nil {
		_ = g.textures.Close()
	}
	g.rt, g.renderer, g.textures = rt, renderer, textures
	return nil
}

// Spec returns the running scene's spec.
func (g *Game) Spec() prefabs.SceneSpec {
	return g.rt.Spec
}

func (g *Game) Update() error {
	g.frames++
	g.checkReload()

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.rt.Step(dt)
	return nil
}

// checkReload rebuilds the scene when a watched file changed. A broken edit
// keeps the previous scene running.
func (g *Game) checkReload() {
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	for _, name := range changed {
		if strings.EqualFold(filepath.Ext(name), ".png") {
			render.ForgetAll()
			break
		}
	}
	if err := g.load(); err != nil {
		log.Printf("scene: reload after %s: %v", strings.Join(changed, ", "), err)
		return
	}
	log.Printf("scene: reloaded %s", g.rt.Spec.Name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.rt.Spec.BackgroundColor())
	g.rt.Scheduler.Draw(g.rt.World, screen)

	if g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  quads: %d  textures: %d\n%s",
			ebiten.ActualFPS(), g.renderer.Quads, g.textures.Live(), g.rt))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.rt.Spec.Window.Width, g.rt.Spec.Window.Height
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	defer g.Close()
	w := g.rt.Spec.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Close releases textures and stops the watcher.
func (g *Game) Close() error {
	if g.shader != nil {
		g.shader.Deallocate()
		g.shader = nil
	}
	return closeAll(g.watcher, g.textures)
}

// closeAll closes every resource and joins their errors.
func closeAll(cs ...io.Closer) error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
