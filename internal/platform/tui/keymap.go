package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/procne/internal/core"
)

// Command is a platform request that never reaches the simulation.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandScreenshot
)

// KeyMapper translates Bubble Tea key messages to semantic keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a semantic key or a platform command.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Key, Command) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.KeyNone, CommandQuit
	case "ctrl+s":
		return core.KeyNone, CommandScreenshot
	}

	switch msg.String() {
	case "left", "a":
		return core.KeyLeft, CommandNone
	case "right", "d":
		return core.KeyRight, CommandNone
	case " ", "space", "up", "w":
		return core.KeyJump, CommandNone
	case "e", "enter":
		return core.KeyInteract, CommandNone
	case "down", "s":
		return core.KeyShield, CommandNone
	case "p", "esc":
		return core.KeyPause, CommandNone
	}
	return core.KeyNone, CommandNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "tab":
		return MenuActionRuns
	}
	return MenuActionNone
}

// Default hold timeouts. Terminals repeat a held key after an initial delay
// and then at a faster rate.
const (
	DefaultHoldInitial = 550 * time.Millisecond
	DefaultHoldRepeat  = 150 * time.Millisecond
)

// HoldLatch synthesizes key releases. Terminals report presses and
// auto-repeats but never releases, so a key counts as held until no repeat
// has arrived within the timeout.
type HoldLatch struct {
	initial time.Duration
	repeat  time.Duration
	held    map[core.Key]hold
}

type hold struct {
	deadline time.Time
	repeated bool
}

// NewHoldLatch creates a latch with the given timeouts for the first press
// and for auto-repeats.
func NewHoldLatch(initial, repeat time.Duration) *HoldLatch {
	return &HoldLatch{initial: initial, repeat: repeat, held: make(map[core.Key]hold)}
}

// Press records a press at now. It returns true when the key was not held,
// meaning the simulation should see a fresh KeyDown.
func (l *HoldLatch) Press(k core.Key, now time.Time) bool {
	h, ok := l.held[k]
	if !ok {
		l.held[k] = hold{deadline: now.Add(l.initial)}
		return true
	}
	h.repeated = true
	h.deadline = now.Add(l.repeat)
	l.held[k] = h
	return false
}

// Expire removes and returns every key whose hold ran out by now, in key order.
func (l *HoldLatch) Expire(now time.Time) []core.Key {
	var out []core.Key
	for k := core.KeyLeft; k <= core.KeyPause; k++ {
		h, ok := l.held[k]
		if ok && !now.Before(h.deadline) {
			delete(l.held, k)
			out = append(out, k)
		}
	}
	return out
}

// Held reports whether k is currently latched.
func (l *HoldLatch) Held(k core.Key) bool {
	_, ok := l.held[k]
	return ok
}

// ReleaseAll clears the latch and returns the keys that were held.
func (l *HoldLatch) ReleaseAll() []core.Key {
	var out []core.Key
	for k := core.KeyLeft; k <= core.KeyPause; k++ {
		if _, ok := l.held[k]; ok {
			out = append(out, k)
		}
	}
	l.held = make(map[core.Key]hold)
	return out
}
