package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/procne/internal/registry"
)

// MenuModel is the Bubble Tea model for the episode picker.
type MenuModel struct {
	items     []registry.EpisodeInfo
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	selected  int  // Index into items, -1 until chosen
	wantsRuns bool // Tab pressed
}

// NewMenuModel creates a picker over the registered episodes.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		items:     registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		selected:  -1,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.selected = m.cursor
			return m, tea.Quit
		}

	case MenuActionRuns:
		m.wantsRuns = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("  P R O C N E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose where the cycle begins", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, item.Episode, item.Title)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Start  |  Tab: Runs  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen index into registry.List, or -1.
func (m MenuModel) Selected() int {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	StartIndex int
	WantsRuns  bool
	Quit       bool
}

func (m MenuModel) result() MenuResult {
	switch {
	case m.wantsRuns:
		return MenuResult{WantsRuns: true}
	case m.quitting || m.selected < 0:
		return MenuResult{Quit: true}
	}
	return MenuResult{StartIndex: m.selected}
}

// RunMenu runs the picker and returns the selection.
func RunMenu(width, height int) (MenuResult, error) {
	finalModel, err := tea.NewProgram(NewMenuModel(width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Quit: true}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return m.result(), nil
}
