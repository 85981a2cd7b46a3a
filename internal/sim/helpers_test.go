package sim

import (
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/world"
)

// fakeFX records every side effect the resolver and boss logic request.
type fakeFX struct {
	tasks    []string
	finishes int
	whispers []string
	cues     []Cue
	deaths   int
	bursts   int
	shake    float64
	hitStop  float64
}

func (f *fakeFX) CompleteTask(id, _ string) { f.tasks = append(f.tasks, id) }

func (f *fakeFX) Finish() { f.finishes++ }

func (f *fakeFX) Whisper(prompt string) { f.whispers = append(f.whispers, prompt) }

func (f *fakeFX) Burst(_, _ float64, _ core.Color, _ int) { f.bursts++ }

func (f *fakeFX) Cue(c Cue) { f.cues = append(f.cues, c) }

func (f *fakeFX) Die() { f.deaths++ }

func (f *fakeFX) Juice(shake, hitStop float64) {
	f.shake = max(f.shake, shake)
	f.hitStop = max(f.hitStop, hitStop)
}

func (f *fakeFX) count(id string) int {
	n := 0
	for _, t := range f.tasks {
		if t == id {
			n++
		}
	}
	return n
}

func (f *fakeFX) quiet() bool {
	return len(f.tasks) == 0 && f.finishes == 0 && len(f.whispers) == 0 &&
		len(f.cues) == 0 && f.deaths == 0 && f.bursts == 0
}

// fakeNarrator records prompts and hands out lines pushed by the test.
type fakeNarrator struct {
	prompts []string
	gens    []uint64
	ch      chan Line
}

func newFakeNarrator() *fakeNarrator {
	return &fakeNarrator{ch: make(chan Line, 16)}
}

func (n *fakeNarrator) Request(gen uint64, prompt string) {
	n.gens = append(n.gens, gen)
	n.prompts = append(n.prompts, prompt)
}

func (n *fakeNarrator) Lines() <-chan Line { return n.ch }

// recorder collects Events callbacks.
type recorder struct {
	taskCounts []int
	zones      []string
	dialogue   []string
	finishes   int
	cues       []Cue
}

func (r *recorder) events() Events {
	return Events{
		OnTaskComplete: func(n int) { r.taskCounts = append(r.taskCounts, n) },
		OnZoneChange:   func(z string) { r.zones = append(r.zones, z) },
		OnDialogue:     func(t string) { r.dialogue = append(r.dialogue, t) },
		OnFinish:       func() { r.finishes++ },
		OnCue:          func(c Cue) { r.cues = append(r.cues, c) },
	}
}

func (r *recorder) saw(c Cue) bool {
	for _, got := range r.cues {
		if got == c {
			return true
		}
	}
	return false
}

const groundY = 500

func testConfig() config.Config {
	return config.DefaultConfig()
}

// standingPlayer returns a grounded player with its feet on the ground line.
func standingPlayer(x float64) world.Player {
	p := world.NewPlayer(x, groundY-80, 40, 80, 3)
	p.Grounded = true
	return p
}

func testWorld(p world.Player, ents ...world.Entity) *world.World {
	return world.New(p, ents)
}

func ent(id string, x, y, w, h float64, payload world.Payload) world.Entity {
	return world.Entity{ID: id, Box: core.NewBox(x, y, w, h), Visible: true, Payload: payload}
}

func testRules() Rules {
	cfg := testConfig()
	return Rules{Combat: cfg.Combat, Boss: cfg.Boss, AllowDrag: true}
}

func physicsEnv() PhysicsEnv {
	return PhysicsEnv{Physics: testConfig().Physics, GroundY: groundY}
}

func held(keys ...core.Key) core.KeyState {
	ks := core.NewKeyState()
	for _, k := range keys {
		ks.Press(k)
	}
	return ks
}
