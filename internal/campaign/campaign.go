// Package campaign sequences episodes. It owns the current sim.Session,
// advances to the next episode when one finishes, plays the ending
// transition after the last, and records each attempt as a run.
package campaign

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/sim"
	"github.com/vovakirdan/procne/internal/storage"
)

// EndingDuration is how long the fade after the final episode lasts, in seconds.
const EndingDuration = 3.0

// ErrNoEpisodes is returned when a campaign is built without episodes.
var ErrNoEpisodes = errors.New("campaign: no episodes")

// State is the campaign lifecycle.
type State int

const (
	StateIntro    State = iota // Title card, waiting for a key
	StatePlaying               // An episode is running
	StateEnding                // Final episode done, fading out
	StateFinished              // Credits
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StateEnding:
		return "ending"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// RunSink receives finished and abandoned runs. *storage.Store implements it.
type RunSink interface {
	SaveRun(r storage.Run) (int64, error)
}

// Campaign runs a list of episodes in order.
type Campaign struct {
	cfg        config.Config
	episodes   []level.Manifest
	narrator   sim.Narrator
	sink       RunSink
	logger     *log.Logger
	onCue      func(sim.Cue)
	seed       int64
	difficulty string

	index   int
	gen     uint64
	session *sim.Session
	state   State

	tasks    int
	zone     string
	dialogue string
	pending  bool    // Finish fired during the last Advance
	ending   float64 // Seconds left in the ending fade

	elapsed float64 // Simulated seconds over completed episodes
	deaths  int     // Resets over completed episodes
}

// Option configures a Campaign.
type Option func(*Campaign)

// WithNarrator sets the flavor text source shared by every episode.
func WithNarrator(n sim.Narrator) Option {
	return func(c *Campaign) { c.narrator = n }
}

// WithRunSink sets where runs are recorded.
func WithRunSink(s RunSink) Option {
	return func(c *Campaign) { c.sink = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Campaign) { c.logger = l }
}

// WithCueHandler forwards feedback cues, e.g. to the sound layer.
func WithCueHandler(f func(sim.Cue)) Option {
	return func(c *Campaign) { c.onCue = f }
}

// WithSeed seeds every episode session.
func WithSeed(seed int64) Option {
	return func(c *Campaign) { c.seed = seed }
}

// WithDifficulty labels recorded runs.
func WithDifficulty(name string) Option {
	return func(c *Campaign) { c.difficulty = name }
}

// WithStartIndex starts at the given position of the episode list.
func WithStartIndex(i int) Option {
	return func(c *Campaign) { c.index = i }
}

// New validates the episodes and builds a campaign in the intro state.
func New(cfg config.Config, episodes []level.Manifest, opts ...Option) (*Campaign, error) {
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}
	for _, m := range episodes {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("campaign: episode %q: %w", m.ID, err)
		}
	}
	c := &Campaign{
		cfg:        cfg,
		episodes:   episodes,
		logger:     log.New(io.Discard),
		difficulty: string(config.DifficultyNormal),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.index < 0 || c.index >= len(episodes) {
		return nil, fmt.Errorf("campaign: start index %d out of range", c.index)
	}
	return c, nil
}

// Begin leaves the intro and starts the current episode.
func (c *Campaign) Begin() {
	if c.state != StateIntro {
		return
	}
	c.state = StatePlaying
	c.startEpisode()
}

func (c *Campaign) startEpisode() {
	m := c.episodes[c.index]
	c.gen++
	c.tasks = 0
	c.dialogue = ""
	c.pending = false
	c.session = sim.New(c.cfg, m,
		sim.WithEvents(c.events()),
		sim.WithNarrator(c.narrator),
		sim.WithSeed(c.seed+int64(c.index)),
		sim.WithGeneration(c.gen),
		sim.WithLogger(c.logger),
	)
	c.logger.Info("episode start", "episode", m.Episode, "id", m.ID, "zone", m.Zone)
	c.session.Start()
}

func (c *Campaign) events() sim.Events {
	return sim.Events{
		OnTaskComplete: func(n int) { c.tasks = n },
		OnZoneChange:   func(z string) { c.zone = z },
		OnDialogue:     func(t string) { c.dialogue = t },
		OnFinish:       func() { c.pending = true },
		OnCue: func(cue sim.Cue) {
			if c.onCue != nil {
				c.onCue(cue)
			}
		},
	}
}

// KeyDown forwards a press to the running episode. On the intro card the
// jump or interact key begins the campaign.
func (c *Campaign) KeyDown(k core.Key) {
	switch c.state {
	case StateIntro:
		if k == core.KeyJump || k == core.KeyInteract {
			c.Begin()
		}
	case StatePlaying:
		c.session.KeyDown(k)
	}
}

// KeyUp forwards a release to the running episode.
func (c *Campaign) KeyUp(k core.Key) {
	if c.state == StatePlaying {
		c.session.KeyUp(k)
	}
}

// Advance feeds wall-clock time to the current episode and applies any
// episode transition requested during it. It returns the ticks stepped.
func (c *Campaign) Advance(elapsed float64) int {
	switch c.state {
	case StatePlaying:
		n := c.session.Advance(elapsed)
		if c.pending {
			c.completeEpisode()
		}
		return n
	case StateEnding:
		n := c.session.Advance(elapsed)
		c.ending -= elapsed
		if c.ending <= 0 {
			c.ending = 0
			c.state = StateFinished
			c.logger.Info("campaign finished", "elapsed", c.elapsed, "deaths", c.deaths)
		}
		return n
	}
	return 0
}

// completeEpisode runs after the tick that fired finish, so the session is
// never replaced from inside its own callbacks.
func (c *Campaign) completeEpisode() {
	c.pending = false
	c.record(storage.OutcomeFinished)
	c.elapsed += c.session.Elapsed()
	c.deaths += c.session.Deaths()

	if c.index == len(c.episodes)-1 {
		c.state = StateEnding
		c.ending = EndingDuration
		c.session.SetPlaying(false)
		c.logger.Info("ending transition", "episode", c.episodes[c.index].Episode)
		return
	}
	c.index++
	c.startEpisode()
}

// Abandon records the running episode as abandoned. Call it when the player
// quits mid-episode.
func (c *Campaign) Abandon() {
	if c.state != StatePlaying || c.session == nil || c.session.Finished() {
		return
	}
	c.record(storage.OutcomeAbandoned)
}

func (c *Campaign) record(outcome storage.Outcome) {
	if c.sink == nil {
		return
	}
	m := c.episodes[c.index]
	run := storage.Run{
		Episode:    m.Episode,
		EpisodeID:  m.ID,
		Outcome:    outcome,
		Duration:   c.session.Elapsed(),
		Ticks:      int64(c.session.Ticks()),
		Tasks:      c.session.World().Player.Tasks,
		Deaths:     c.session.Deaths(),
		Seed:       c.seed,
		Difficulty: c.difficulty,
	}
	if _, err := c.sink.SaveRun(run); err != nil {
		c.logger.Warn("run not recorded", "episode", m.Episode, "err", err)
	}
}

// State returns the lifecycle state.
func (c *Campaign) State() State { return c.state }

// Session returns the running episode session, nil before Begin.
func (c *Campaign) Session() *sim.Session { return c.session }

// Episode returns the current manifest.
func (c *Campaign) Episode() level.Manifest { return c.episodes[c.index] }

// Index returns the position of the current episode in the list.
func (c *Campaign) Index() int { return c.index }

// Len returns the number of episodes.
func (c *Campaign) Len() int { return len(c.episodes) }

// Generation returns the narrator generation of the current episode.
func (c *Campaign) Generation() uint64 { return c.gen }

// Tasks returns tasks completed in the current episode.
func (c *Campaign) Tasks() int { return c.tasks }

// Zone returns the last announced zone name.
func (c *Campaign) Zone() string { return c.zone }

// Dialogue returns the dialogue text on screen, empty when none.
func (c *Campaign) Dialogue() string { return c.dialogue }

// EndingProgress returns how far the ending fade has run, from 0 to 1.
func (c *Campaign) EndingProgress() float64 {
	switch c.state {
	case StateEnding:
		return 1 - c.ending/EndingDuration
	case StateFinished:
		return 1
	}
	return 0
}

// Totals returns simulated seconds and resets over completed episodes.
func (c *Campaign) Totals() (elapsed float64, deaths int) {
	return c.elapsed, c.deaths
}
