package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/procne/internal/campaign"
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
)

func newTestModel(t *testing.T) (Model, *campaign.Campaign) {
	t.Helper()
	c := newTestCampaign(t)
	return NewModel(c, config.DefaultConfig(), core.DefaultConfig(), nil), c
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModelJumpBeginsCampaign(t *testing.T) {
	m, c := newTestModel(t)
	require.Equal(t, campaign.StateIntro, c.State())

	update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, campaign.StatePlaying, c.State())
}

func TestModelTicksAdvanceByWallClock(t *testing.T) {
	m, c := newTestModel(t)
	c.Begin()
	start := time.Unix(100, 0)

	m, cmd := update(t, m, TickMsg(start))
	assert.NotNil(t, cmd, "loop continues")
	assert.Zero(t, c.Session().Ticks(), "first frame only sets the clock")

	update(t, m, TickMsg(start.Add(55*time.Millisecond)))
	assert.Equal(t, uint64(3), c.Session().Ticks())
}

func TestModelHeldKeyReleasesAfterTimeout(t *testing.T) {
	m, c := newTestModel(t)
	c.Begin()
	now := time.Now()
	startX := c.Session().World().Player.Pos.X

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRight}, now)
	m = next.(Model)
	assert.True(t, m.latch.Held(core.KeyRight))

	m, _ = update(t, m, TickMsg(now))
	m, _ = update(t, m, TickMsg(now.Add(DefaultHoldInitial/2)))
	assert.True(t, m.latch.Held(core.KeyRight))
	assert.Greater(t, c.Session().World().Player.Pos.X, startX)

	m, _ = update(t, m, TickMsg(now.Add(DefaultHoldInitial)))
	assert.False(t, m.latch.Held(core.KeyRight))
}

func TestModelPauseToggles(t *testing.T) {
	m, c := newTestModel(t)
	c.Begin()

	m, _ = update(t, m, runes("p"))
	assert.True(t, c.Session().Paused())
	assert.False(t, m.latch.Held(core.KeyPause))

	update(t, m, runes("p"))
	assert.False(t, c.Session().Paused())
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 40, m.screen.Height())
	assert.NotEmpty(t, m.View())
}
