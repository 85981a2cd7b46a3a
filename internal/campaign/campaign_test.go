package campaign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	_ "github.com/vovakirdan/procne/internal/episodes"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/sim"
	"github.com/vovakirdan/procne/internal/storage"
)

const tick = 1.0 / 60

type fakeSink struct {
	runs []storage.Run
	err  error
}

func (s *fakeSink) SaveRun(r storage.Run) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.runs = append(s.runs, r)
	return int64(len(s.runs)), nil
}

type fakeNarrator struct {
	gens []uint64
	ch   chan sim.Line
}

func (n *fakeNarrator) Request(gen uint64, _ string) { n.gens = append(n.gens, gen) }

func (n *fakeNarrator) Lines() <-chan sim.Line { return n.ch }

// doorAtStart builds an episode whose door is in reach of the spawn point and
// opens after one task.
func doorAtStart(ep int, id, zone string) level.Manifest {
	return level.Manifest{
		Episode:     ep,
		ID:          id,
		Zone:        zone,
		Intro:       "Episode " + id,
		PlayerStart: 100,
		Door:        level.DoorRule{Tasks: 1},
		Spawns:      []level.Spawn{{ID: "door", Kind: "door", X: 110, W: 100, H: 140}},
	}
}

func twoEpisodes() []level.Manifest {
	return []level.Manifest{doorAtStart(1, "one", "First"), doorAtStart(2, "two", "Second")}
}

func tap(c *Campaign, k core.Key) {
	c.KeyDown(k)
	c.Advance(tick)
	c.KeyUp(k)
}

// finishEpisode completes the task the test door needs and walks through it.
func finishEpisode(c *Campaign) {
	c.Session().World().Player.Tasks = 1
	tap(c, core.KeyInteract)
}

func TestNewValidates(t *testing.T) {
	_, err := New(config.DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrNoEpisodes)

	bad := doorAtStart(1, "bad", "x")
	bad.Door = level.DoorRule{}
	_, err = New(config.DefaultConfig(), []level.Manifest{bad})
	assert.ErrorIs(t, err, level.ErrInvalidManifest)

	_, err = New(config.DefaultConfig(), twoEpisodes(), WithStartIndex(2))
	assert.Error(t, err)
}

func TestBuiltInCampaign(t *testing.T) {
	c, err := New(config.DefaultConfig(), registry.Campaign())
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "sands", c.Episode().ID)
}

func TestIntroWaitsForKey(t *testing.T) {
	c, err := New(config.DefaultConfig(), twoEpisodes())
	require.NoError(t, err)

	assert.Equal(t, StateIntro, c.State())
	assert.Nil(t, c.Session())
	assert.Zero(t, c.Advance(1))

	c.KeyDown(core.KeyLeft)
	assert.Equal(t, StateIntro, c.State())

	c.KeyDown(core.KeyJump)
	assert.Equal(t, StatePlaying, c.State())
	require.NotNil(t, c.Session())
	assert.Equal(t, "First", c.Zone())
	assert.Equal(t, uint64(1), c.Generation())
}

func TestCampaignAdvancesAndEnds(t *testing.T) {
	sink := &fakeSink{}
	n := &fakeNarrator{ch: make(chan sim.Line, 4)}
	c, err := New(config.DefaultConfig(), twoEpisodes(),
		WithRunSink(sink), WithNarrator(n), WithSeed(9), WithDifficulty("hard"))
	require.NoError(t, err)
	c.Begin()

	first := c.Session()
	finishEpisode(c)

	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, 1, c.Index())
	assert.NotSame(t, first, c.Session())
	assert.Equal(t, "Second", c.Zone())
	assert.Equal(t, uint64(2), c.Generation())
	assert.Zero(t, c.Tasks(), "task count restarts per episode")
	assert.Equal(t, []uint64{1, 2}, n.gens)

	require.Len(t, sink.runs, 1)
	run := sink.runs[0]
	assert.Equal(t, 1, run.Episode)
	assert.Equal(t, "one", run.EpisodeID)
	assert.Equal(t, storage.OutcomeFinished, run.Outcome)
	assert.Equal(t, 1, run.Tasks)
	assert.Equal(t, int64(9), run.Seed)
	assert.Equal(t, "hard", run.Difficulty)
	assert.Positive(t, run.Ticks)

	finishEpisode(c)
	assert.Equal(t, StateEnding, c.State())
	assert.Len(t, sink.runs, 2)
	assert.False(t, c.Session().Playing())

	c.Advance(1)
	c.Advance(1)
	assert.Equal(t, StateEnding, c.State())
	assert.InDelta(t, 2.0/3, c.EndingProgress(), 1e-9)

	c.Advance(1)
	assert.Equal(t, StateFinished, c.State())
	assert.Equal(t, 1.0, c.EndingProgress())

	// Input is ignored once the campaign is over.
	c.KeyDown(core.KeyInteract)
	assert.Equal(t, StateFinished, c.State())
	assert.Zero(t, c.Advance(1))
}

func TestFinishingTickEndsTheFrame(t *testing.T) {
	sink := &fakeSink{}
	c, err := New(config.DefaultConfig(), twoEpisodes()[:1], WithRunSink(sink))
	require.NoError(t, err)
	c.Begin()
	c.Session().World().Player.Tasks = 1

	c.KeyDown(core.KeyInteract)
	assert.Equal(t, 1, c.Advance(0.1))

	assert.Equal(t, StateEnding, c.State())
	require.Len(t, sink.runs, 1)
	assert.Equal(t, int64(1), sink.runs[0].Ticks)
	assert.Zero(t, sink.runs[0].Deaths)
}

func TestStaleLinesDroppedAcrossEpisodes(t *testing.T) {
	n := &fakeNarrator{ch: make(chan sim.Line, 4)}
	c, err := New(config.DefaultConfig(), twoEpisodes(), WithNarrator(n))
	require.NoError(t, err)
	c.Begin()
	finishEpisode(c)
	require.Equal(t, uint64(2), c.Generation())

	n.ch <- sim.Line{Gen: 1, Text: "from the first episode"}
	c.Advance(tick)
	assert.Empty(t, c.Dialogue())

	n.ch <- sim.Line{Gen: 2, Text: "the weaver stirs"}
	c.Advance(tick)
	assert.Equal(t, "the weaver stirs", c.Dialogue())
}

func TestStartIndexSkipsAhead(t *testing.T) {
	c, err := New(config.DefaultConfig(), twoEpisodes(), WithStartIndex(1))
	require.NoError(t, err)
	c.Begin()
	assert.Equal(t, "two", c.Episode().ID)

	finishEpisode(c)
	assert.Equal(t, StateEnding, c.State())
}

func TestAbandonRecordsOnce(t *testing.T) {
	sink := &fakeSink{}
	c, err := New(config.DefaultConfig(), twoEpisodes(), WithRunSink(sink))
	require.NoError(t, err)

	c.Abandon()
	assert.Empty(t, sink.runs, "nothing to abandon on the intro card")

	c.Begin()
	c.Advance(tick)
	c.Abandon()
	require.Len(t, sink.runs, 1)
	assert.Equal(t, storage.OutcomeAbandoned, sink.runs[0].Outcome)
	assert.Equal(t, "one", sink.runs[0].EpisodeID)
}

func TestSinkFailureDoesNotStopCampaign(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}
	c, err := New(config.DefaultConfig(), twoEpisodes(), WithRunSink(sink))
	require.NoError(t, err)
	c.Begin()

	finishEpisode(c)
	assert.Equal(t, 1, c.Index())
}

func TestCuesAreForwarded(t *testing.T) {
	var cues []sim.Cue
	c, err := New(config.DefaultConfig(), twoEpisodes(), WithCueHandler(func(cue sim.Cue) { cues = append(cues, cue) }))
	require.NoError(t, err)
	c.Begin()

	tap(c, core.KeyInteract)
	assert.Contains(t, cues, sim.CueLocked)

	finishEpisode(c)
	assert.Contains(t, cues, sim.CueFinish)
}

func TestTotalsAccumulate(t *testing.T) {
	c, err := New(config.DefaultConfig(), twoEpisodes())
	require.NoError(t, err)
	c.Begin()
	for i := 0; i < 30; i++ {
		c.Advance(tick)
	}
	finishEpisode(c)

	elapsed, deaths := c.Totals()
	assert.InDelta(t, 31*tick, elapsed, 1e-6)
	assert.Zero(t, deaths)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "intro", StateIntro.String())
	assert.Equal(t, "ending", StateEnding.String())
	assert.Equal(t, "unknown", State(99).String())
}
