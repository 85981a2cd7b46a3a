package sfx

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/procne/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cue sounds into the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      float64
	initialized bool
}

// NewPlayer creates a player with the given master volume (0..1).
func NewPlayer(master float64) *Player {
	return &Player{mixer: &beep.Mixer{}, master: master}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("sfx: opening speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the sound of a cue. It is a no-op before Init.
func (p *Player) Play(c sim.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := Streamer(c, sampleRate, p.master)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
