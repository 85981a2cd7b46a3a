// Package world holds the mutable per-episode simulation state: the player,
// the entity list with its typed payloads, particles, boss encounter timers
// and camera. Subsystems receive a *World and mutate only what they own.
package world

import (
	"github.com/vovakirdan/procne/internal/core"
)

// Kind identifies the closed set of entity variants.
type Kind int

const (
	KindPlatform Kind = iota
	KindMound
	KindPillar
	KindStone
	KindPedestal
	KindSandTrap
	KindWindTunnel
	KindDoor
	KindCollectible
	KindTurbine
	KindCauldron
	KindOfferingBowl
	KindBoss
	KindProjectile
)

var kindNames = [...]string{
	KindPlatform:     "platform",
	KindMound:        "mound",
	KindPillar:       "pillar",
	KindStone:        "stone",
	KindPedestal:     "pedestal",
	KindSandTrap:     "sand_trap",
	KindWindTunnel:   "wind_tunnel",
	KindDoor:         "door",
	KindCollectible:  "collectible",
	KindTurbine:      "turbine",
	KindCauldron:     "cauldron",
	KindOfferingBowl: "offering_bowl",
	KindBoss:         "boss",
	KindProjectile:   "projectile",
}

// String returns the snake_case name used in episode files and traces.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a name back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// ItemKind is what a collectible yields and what machines and doors ask for.
type ItemKind string

const (
	ItemNone       ItemKind = ""
	ItemKey        ItemKind = "key"
	ItemGear       ItemKind = "gear"
	ItemIngredient ItemKind = "ingredient"
	ItemHeart      ItemKind = "heart"
	ItemBone       ItemKind = "bone"
)

// Entity is any non-player world object.
// Invisible entities stay in the list but take part in no check.
type Entity struct {
	ID         string
	Box        core.Box
	Visible    bool
	Interacted bool // Terminal "resolved" flag
	Payload    Payload
}

// Kind returns the variant carried by the payload.
func (e *Entity) Kind() Kind {
	return e.Payload.Kind()
}

// Active reports whether the entity participates in collision and interaction.
func (e *Entity) Active() bool {
	return e.Visible
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	if e.Payload != nil {
		e.Payload = e.Payload.clone()
	}
	return e
}

// CloneEntities deep-copies an entity list.
func CloneEntities(src []Entity) []Entity {
	if src == nil {
		return nil
	}
	dst := make([]Entity, len(src))
	for i := range src {
		dst[i] = src[i].Clone()
	}
	return dst
}
