// Package sim is the simulation core: the physics integrator, the interaction
// and combat resolver, the boss state machine and the frame loop that
// sequences them. It holds no UI dependencies; collaborators observe it
// through Events and Snapshot.
package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/juice"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/world"
)

// Session runs one episode. It is owned by a single goroutine; input and
// stepping must happen on that goroutine.
type Session struct {
	cfg      config.Config
	manifest level.Manifest
	world    *world.World
	events   Events
	narrator Narrator
	emitter  *juice.Emitter
	logger   *log.Logger

	seed    int64
	gen     uint64
	tickDT  float64
	acc     float64
	ticks   uint64
	elapsed float64 // Simulated seconds while active
	deaths  int

	hasBoss  bool
	playing  bool
	paused   bool
	finished bool
}

// Option configures a Session.
type Option func(*Session)

// WithEvents sets the collaborator callbacks.
func WithEvents(ev Events) Option {
	return func(s *Session) { s.events = ev }
}

// WithNarrator sets the flavor text source.
func WithNarrator(n Narrator) Option {
	return func(s *Session) { s.narrator = n }
}

// WithSeed seeds particle bursts.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithGeneration tags narrator requests; lines from other generations are dropped.
func WithGeneration(gen uint64) Option {
	return func(s *Session) { s.gen = gen }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTickRate sets the fixed timestep rate in Hz.
func WithTickRate(hz int) Option {
	return func(s *Session) {
		if hz > 0 {
			s.tickDT = 1.0 / float64(hz)
		}
	}
}

// New creates a session for the manifest with a freshly built world.
// Call Start to announce the episode.
func New(cfg config.Config, m level.Manifest, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		manifest: m,
		logger:   log.New(io.Discard),
		tickDT:   1.0 / 60.0,
		hasBoss:  m.HasBoss(),
		playing:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.emitter = juice.NewEmitter(s.seed, cfg.Juice)
	s.world = s.build()
	return s
}

// build creates the player and entity list of a fresh episode start.
func (s *Session) build() *world.World {
	pc := s.cfg.Player
	p := world.NewPlayer(s.manifest.PlayerStart, s.cfg.World.GroundY-pc.Height, pc.Width, pc.Height, pc.MaxHP)
	p.Grounded = true
	ents := s.manifest.Build(level.BuildEnv{GroundY: s.cfg.World.GroundY, BossHP: s.cfg.Boss.HP})
	return world.New(p, ents)
}

// Start fires the zone change, clears any dialogue and asks the narrator
// for the opening line.
func (s *Session) Start() {
	s.logger.Debug("episode started", "episode", s.manifest.Episode, "zone", s.manifest.Zone, "generation", s.gen)
	s.events.zoneChange(s.manifest.Zone)
	s.events.dialogue("")
	if s.manifest.Intro != "" {
		s.whisper(s.manifest.Intro)
	}
}

// KeyDown records a press. Interact dismisses an active dialogue instead of
// interacting; pause toggles the pause state.
func (s *Session) KeyDown(k core.Key) {
	w := s.world
	if k == core.KeyPause {
		s.paused = !s.paused
		return
	}
	w.Keys.Press(k)
	if k != core.KeyInteract {
		return
	}
	if w.DialogueActive {
		w.DialogueActive = false
		s.events.dialogue("")
		return
	}
	w.Player.Interacting = true
	w.Player.InteractPressed = true
}

// KeyUp records a release. Releasing jump ends the slash; releasing interact
// drops whatever is being dragged.
func (s *Session) KeyUp(k core.Key) {
	w := s.world
	w.Keys.Release(k)
	switch k {
	case core.KeyJump:
		w.Player.Slashing = false
	case core.KeyInteract:
		w.Player.Interacting = false
		w.Player.Dragging = ""
	}
}

// World exposes the live world. Collaborators should prefer Snapshot.
func (s *Session) World() *world.World { return s.world }

// Manifest returns the episode manifest.
func (s *Session) Manifest() level.Manifest { return s.manifest }

// Generation returns the narrator generation of this session.
func (s *Session) Generation() uint64 { return s.gen }

// Ticks returns the number of logical ticks stepped.
func (s *Session) Ticks() uint64 { return s.ticks }

// Elapsed returns simulated seconds spent active.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Deaths returns how many encounter resets happened.
func (s *Session) Deaths() int { return s.deaths }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// SetPaused pauses or resumes the simulation.
func (s *Session) SetPaused(p bool) { s.paused = p }

// Playing reports whether the simulation is in the playing state.
func (s *Session) Playing() bool { return s.playing }

// SetPlaying switches the playing state. Juice keeps running while not playing.
func (s *Session) SetPlaying(p bool) { s.playing = p }

// Finished reports whether the finish signal was fired.
func (s *Session) Finished() bool { return s.finished }

func (s *Session) whisper(prompt string) {
	if s.narrator == nil {
		return
	}
	s.narrator.Request(s.gen, prompt)
}

func (s *Session) showDialogue(text string) {
	s.world.DialogueActive = true
	s.events.dialogue(text)
}

func (s *Session) burst(x, y float64, c core.Color, n int) {
	s.world.Particles = s.emitter.Burst(s.world.Particles, x, y, c, n)
}

// resetEncounter is the soft death: player and encounter entities return to
// their starting configuration while completed tasks are kept.
func (s *Session) resetEncounter() {
	w := s.world
	tasks, owned := w.Player.Tasks, w.Player.Owned

	fresh := s.build()
	w.Player = fresh.Player
	w.Player.Tasks = tasks
	w.Player.Owned = owned
	w.Entities = fresh.Entities
	w.Boss = world.BossState{}
	w.BossDefeated = false

	s.deaths++
	s.logger.Debug("encounter reset", "episode", s.manifest.Episode, "deaths", s.deaths)
	s.events.cue(CueReset)
	s.whisper("The cycle turns again. The watcher rises.")
}

// effects adapts a Session to the Effects interface without widening the
// exported Session API.
type effects Session

func (s *Session) fx() Effects { return (*effects)(s) }

func (f *effects) CompleteTask(id, whisper string) {
	s := (*Session)(f)
	p := &s.world.Player
	if !p.Claim(id) {
		return
	}
	p.Tasks++
	s.logger.Debug("task complete", "id", id, "tasks", p.Tasks)
	s.events.taskComplete(p.Tasks)
	s.whisper(whisper)
	s.world.Juice.Trigger(18, 0.12)
	s.burst(p.Pos.X+p.W/2, p.Pos.Y+p.H/2, core.ColorOrange, 25)
	s.events.cue(CueTask)
}

func (f *effects) Finish() {
	s := (*Session)(f)
	if s.finished {
		return
	}
	s.finished = true
	s.world.Finished = true
	s.logger.Debug("episode finished", "episode", s.manifest.Episode, "ticks", s.ticks)
	s.events.cue(CueFinish)
	s.events.finish()
}

func (f *effects) Whisper(prompt string) { (*Session)(f).whisper(prompt) }

func (f *effects) Juice(shake, hitStop float64) {
	(*Session)(f).world.Juice.Trigger(shake, hitStop)
}

func (f *effects) Burst(x, y float64, c core.Color, n int) { (*Session)(f).burst(x, y, c, n) }

func (f *effects) Cue(c Cue) { (*Session)(f).events.cue(c) }

func (f *effects) Die() { (*Session)(f).resetEncounter() }
