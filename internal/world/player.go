package world

import "github.com/vovakirdan/procne/internal/core"

// Player is the single playable avatar.
type Player struct {
	Pos core.Vec2
	Vel core.Vec2 // World units per tick
	W   float64
	H   float64

	Grounded    bool
	FacingRight bool

	Slashing        bool
	Interacting     bool // Interact key held
	InteractPressed bool // Interact pressed since the last resolver pass
	Shielding       bool

	Carried  ItemKind // ItemNone when empty
	Dragging string   // Entity ID, empty when not dragging

	Tasks int
	Owned map[string]struct{} // Completed task IDs

	HP    int
	MaxHP int
}

// NewPlayer creates a player standing at (x, y) facing right.
func NewPlayer(x, y, w, h float64, maxHP int) Player {
	return Player{
		Pos:         core.Vec2{X: x, Y: y},
		W:           w,
		H:           h,
		FacingRight: true,
		Owned:       make(map[string]struct{}),
		HP:          maxHP,
		MaxHP:       maxHP,
	}
}

// Box returns the player's body box.
func (p *Player) Box() core.Box {
	return core.Box{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// Feet returns the bottom strip of the body, used for trap and wind checks.
func (p *Player) Feet(height float64) core.Box {
	if height <= 0 || height > p.H {
		height = p.H
	}
	return core.Box{X: p.Pos.X, Y: p.Pos.Y + p.H - height, W: p.W, H: height}
}

// Owns reports whether the task ID was already completed.
func (p *Player) Owns(id string) bool {
	_, ok := p.Owned[id]
	return ok
}

// Claim records a task ID. It returns false if the ID was already owned.
func (p *Player) Claim(id string) bool {
	if p.Owned == nil {
		p.Owned = make(map[string]struct{})
	}
	if _, ok := p.Owned[id]; ok {
		return false
	}
	p.Owned[id] = struct{}{}
	return true
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	owned := make(map[string]struct{}, len(p.Owned))
	for id := range p.Owned {
		owned[id] = struct{}{}
	}
	p.Owned = owned
	return p
}
