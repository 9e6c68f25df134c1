package sfx

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/isometric/ecs"
)

const sampleRate = beep.SampleRate(44100)

// Footsteps plays a short blip whenever a walking entity's run cycle puts a
// foot down.
type Footsteps struct {
	// StepEvery is how many animation frames make one step.
	StepEvery int
	Pitch     float64

	mu          sync.Mutex
	initialized bool
}

func NewFootsteps() *Footsteps {
	return &Footsteps{StepEvery: 4, Pitch: 220}
}

// Init opens the speaker. Without it Play only counts steps.
func (f *Footsteps) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	f.initialized = true
	return nil
}

// Play scans a frame's events and plays one blip per step. It returns the
// number of steps found.
func (f *Footsteps) Play(events []ecs.Event) int {
	steps := Steps(events, f.StepEvery)
	if steps == 0 {
		return 0
	}
	f.mu.Lock()
	ready := f.initialized
	f.mu.Unlock()
	if !ready {
		return steps
	}
	blip := beep.Take(sampleRate.N(40*time.Millisecond), &thud{sr: sampleRate, freq: f.Pitch})
	speaker.Play(&effects.Volume{Streamer: blip, Base: 2, Volume: -3})
	return steps
}

// thud is a sine that decays quickly.
type thud struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (t *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		sec := float64(t.pos) / float64(t.sr)
		v := 0.4 * math.Sin(2*math.Pi*t.freq*sec) * math.Exp(-sec*60)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *thud) Err() error {
	return nil
}

func (f *Footsteps) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	f.initialized = false
}

// Steps counts frame advances of moving entities that land on a step frame.
func Steps(events []ecs.Event, every int) int {
	if every <= 0 {
		every = 1
	}
	n := 0
	for _, evt := range events {
		if evt.Type != ecs.EventFrameAdvanced {
			continue
		}
		fe, ok := evt.Data.(ecs.FrameEvent)
		if !ok || !fe.Moving {
			continue
		}
		if fe.Frame%every == 0 {
			n++
		}
	}
	return n
}
