package world

import (
	"strconv"

	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/juice"
)

// World is the complete mutable state of one episode. It is owned by a
// single goroutine; nothing in it is synchronized.
type World struct {
	Player    Player
	Entities  []Entity
	Particles []juice.Particle
	Boss      BossState
	Camera    float64 // Left edge of the view in world units
	Keys      core.KeyState
	Juice     juice.State

	DialogueActive bool
	BossDefeated   bool
	Finished       bool
	HintsShown     map[int]bool

	serial int
}

// New creates a world around a player and a fresh entity list.
func New(p Player, entities []Entity) *World {
	return &World{
		Player:     p,
		Entities:   entities,
		Keys:       core.NewKeyState(),
		HintsShown: make(map[int]bool),
	}
}

// Find returns the entity with the given ID, or nil.
func (w *World) Find(id string) *Entity {
	for i := range w.Entities {
		if w.Entities[i].ID == id {
			return &w.Entities[i]
		}
	}
	return nil
}

// FirstOf returns the first entity of the given kind, or nil.
func (w *World) FirstOf(k Kind) *Entity {
	for i := range w.Entities {
		if w.Entities[i].Kind() == k {
			return &w.Entities[i]
		}
	}
	return nil
}

// Count returns how many entities of the given kind exist, visible or not.
func (w *World) Count(k Kind) int {
	n := 0
	for i := range w.Entities {
		if w.Entities[i].Kind() == k {
			n++
		}
	}
	return n
}

// AllResolved reports whether every entity of the given kind is interacted.
// It is false when no such entity exists.
func (w *World) AllResolved(k Kind) bool {
	found := false
	for i := range w.Entities {
		if w.Entities[i].Kind() != k {
			continue
		}
		found = true
		if !w.Entities[i].Interacted {
			return false
		}
	}
	return found
}

// NextID returns a unique ID for a dynamically spawned entity.
func (w *World) NextID(prefix string) string {
	w.serial++
	return prefix + "-" + strconv.Itoa(w.serial)
}

// Remove drops the entity at index i, preserving order.
func (w *World) Remove(i int) {
	w.Entities = append(w.Entities[:i], w.Entities[i+1:]...)
}

// RemoveKind drops every entity of the given kind.
func (w *World) RemoveKind(k Kind) {
	kept := w.Entities[:0]
	for _, e := range w.Entities {
		if e.Kind() != k {
			kept = append(kept, e)
		}
	}
	w.Entities = kept
}
