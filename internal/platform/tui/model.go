package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/procne/internal/campaign"
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
)

// Model is the Bubble Tea model that plays a campaign.
type Model struct {
	campaign *campaign.Campaign
	screen   *core.Screen
	renderer *Renderer
	keys     *KeyMapper
	latch    *HoldLatch
	runtime  core.RuntimeConfig
	logger   *log.Logger
	last     time.Time
	quitting bool
}

// NewModel creates a model for the given campaign.
func NewModel(c *campaign.Campaign, cfg config.Config, rt core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		campaign: c,
		screen:   core.NewScreen(rt.ScreenW, rt.ScreenH),
		renderer: NewRenderer(cfg),
		keys:     NewKeyMapper(),
		latch:    NewHoldLatch(DefaultHoldInitial, DefaultHoldRepeat),
		runtime:  rt,
		logger:   logger,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	k, cmd := m.keys.MapKey(msg)
	switch cmd {
	case CommandQuit:
		m.campaign.Abandon()
		m.quitting = true
		return m, tea.Quit
	case CommandScreenshot:
		m.saveScreenshot()
		return m, nil
	}
	if k == core.KeyNone {
		return m, nil
	}

	// Pause is a toggle and never held.
	if k == core.KeyPause {
		m.campaign.KeyDown(k)
		m.campaign.KeyUp(k)
		return m, nil
	}
	if m.latch.Press(k, now) {
		m.campaign.KeyDown(k)
	}
	return m, nil
}

// handleTick releases expired holds and advances the campaign by the
// wall-clock time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, k := range m.latch.Expire(now) {
		m.campaign.KeyUp(k)
	}

	elapsed := 0.0
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last).Seconds()
	}
	m.last = now
	m.campaign.Advance(elapsed)

	return m, tickCmd(m.runtime.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Draw(m.screen, FrameOf(m.campaign))

	dir := filepath.Join(os.Getenv("HOME"), ".procne", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s.txt", m.campaign.Episode().ID, timestamp)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not saved", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.renderer.Draw(m.screen, FrameOf(m.campaign))
	return RenderScreen(m.screen)
}

// Run plays the campaign in the local terminal until the player quits.
func Run(c *campaign.Campaign, cfg config.Config, rt core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(c, cfg, rt, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
