package level

import (
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/world"
)

// Spawn is one entity of a manifest. Fields that do not apply to Kind are
// ignored. Boxes are anchored to the ground: Lift is the gap between the
// ground line and the bottom of the box.
type Spawn struct {
	ID   string  `yaml:"id"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Lift float64 `yaml:"lift,omitempty"`
	W    float64 `yaml:"w"`
	H    float64 `yaml:"h"`

	Item      world.ItemKind `yaml:"item,omitempty"`   // Collectible yield, machine requirement
	Reward    world.ItemKind `yaml:"reward,omitempty"` // Mound reveal, cauldron product
	Task      string         `yaml:"task,omitempty"`
	Target    string         `yaml:"target,omitempty"` // Pedestal stone, turbine tunnel
	Tilt      float64        `yaml:"tilt,omitempty"`
	Force     float64        `yaml:"force,omitempty"`
	Factor    float64        `yaml:"factor,omitempty"` // Sand trap speed multiplier
	Threshold int            `yaml:"threshold,omitempty"`
	HP        int            `yaml:"hp,omitempty"`
	Invisible bool           `yaml:"invisible,omitempty"`
}

// BuildEnv carries the tuning Build needs to place and size entities.
type BuildEnv struct {
	GroundY float64
	BossHP  int // Used when a boss spawn leaves hp unset
}

// Build creates a fresh entity list. Every call returns independent payloads.
func (m Manifest) Build(env BuildEnv) []world.Entity {
	out := make([]world.Entity, 0, len(m.Spawns))
	for _, s := range m.Spawns {
		e, ok := s.entity(env)
		if !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Box returns the spawn's box for the given ground line.
func (s Spawn) Box(groundY float64) core.Box {
	return core.NewBox(s.X, groundY-s.Lift-s.H, s.W, s.H)
}

func (s Spawn) entity(env BuildEnv) (world.Entity, bool) {
	kind, ok := world.ParseKind(s.Kind)
	if !ok {
		return world.Entity{}, false
	}

	var payload world.Payload
	switch kind {
	case world.KindPlatform:
		payload = &world.Platform{Invisible: s.Invisible}
	case world.KindMound:
		payload = &world.Mound{RewardTask: s.Task, RewardItem: s.Reward}
	case world.KindPillar:
		payload = &world.Pillar{Tilt: s.Tilt}
	case world.KindStone:
		payload = &world.Stone{}
	case world.KindPedestal:
		payload = &world.Pedestal{Tracks: s.Target, TaskID: s.Task}
	case world.KindSandTrap:
		payload = &world.SandTrap{Multiplier: s.Factor}
	case world.KindWindTunnel:
		payload = &world.WindTunnel{Force: s.Force, Active: true}
	case world.KindDoor:
		payload = &world.Door{}
	case world.KindCollectible:
		payload = &world.Collectible{Item: s.Item, TaskID: s.Task}
	case world.KindTurbine:
		payload = &world.Turbine{Requires: s.Item, Threshold: atLeastOne(s.Threshold), Tunnel: s.Target, TaskID: s.Task}
	case world.KindCauldron:
		payload = &world.Cauldron{Requires: s.Item, Threshold: atLeastOne(s.Threshold), Reward: s.Reward, TaskID: s.Task}
	case world.KindOfferingBowl:
		payload = &world.OfferingBowl{Requires: s.Item, TaskID: s.Task}
	case world.KindBoss:
		hp := s.HP
		if hp <= 0 {
			hp = env.BossHP
		}
		payload = &world.Boss{HP: hp, MaxHP: hp}
	default:
		return world.Entity{}, false
	}

	return world.Entity{
		ID:      s.ID,
		Box:     s.Box(env.GroundY),
		Visible: true,
		Payload: payload,
	}, true
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
