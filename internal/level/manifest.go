// Package level provides declarative episode manifests: the zone name, the
// entity spawn list, hints and the door rule. A manifest is immutable once
// constructed; Build produces a fresh entity list for every episode start.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/procne/internal/world"
)

// Manifest describes one episode.
type Manifest struct {
	Episode      int      `yaml:"episode"`
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Zone         string   `yaml:"zone"`
	Intro        string   `yaml:"intro,omitempty"` // Narrator prompt at episode start
	PlayerStart  float64  `yaml:"player_start"`
	CameraLocked bool     `yaml:"camera_locked,omitempty"`
	Shield       bool     `yaml:"shield,omitempty"` // Shield key enabled
	Door         DoorRule `yaml:"door"`
	Spawns       []Spawn  `yaml:"spawns"`
	Hints        []Hint   `yaml:"hints,omitempty"`
}

// DoorRule is the unlock requirement of the episode's door.
// Every set field must hold; a carried Item is consumed on success.
type DoorRule struct {
	Tasks        int            `yaml:"tasks,omitempty"`
	Item         world.ItemKind `yaml:"item,omitempty"`
	BossDefeated bool           `yaml:"boss_defeated,omitempty"`
}

// Hint is flavor text shown once when the player comes within Radius of X.
type Hint struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
	Text   string  `yaml:"text"`
}

// ErrInvalidManifest is wrapped by every manifest validation failure.
var ErrInvalidManifest = errors.New("level: invalid manifest")

// HasBoss reports whether the episode spawns a boss.
func (m Manifest) HasBoss() bool {
	for _, s := range m.Spawns {
		if s.Kind == world.KindBoss.String() {
			return true
		}
	}
	return false
}

// Validate checks ids, kinds and cross references.
func (m Manifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidManifest)
	}
	if m.Episode <= 0 {
		return fmt.Errorf("%w: %s: episode must be positive", ErrInvalidManifest, m.ID)
	}
	if m.Door.Tasks == 0 && m.Door.Item == world.ItemNone && !m.Door.BossDefeated {
		return fmt.Errorf("%w: %s: door has no unlock rule", ErrInvalidManifest, m.ID)
	}

	ids := make(map[string]world.Kind, len(m.Spawns))
	for i, s := range m.Spawns {
		k, ok := world.ParseKind(s.Kind)
		if !ok || k == world.KindProjectile {
			return fmt.Errorf("%w: %s: spawn %d has kind %q", ErrInvalidManifest, m.ID, i, s.Kind)
		}
		if s.ID == "" {
			return fmt.Errorf("%w: %s: spawn %d has no id", ErrInvalidManifest, m.ID, i)
		}
		if _, dup := ids[s.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate spawn id %q", ErrInvalidManifest, m.ID, s.ID)
		}
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%w: %s: spawn %q has no size", ErrInvalidManifest, m.ID, s.ID)
		}
		ids[s.ID] = k
	}

	for _, s := range m.Spawns {
		switch s.Kind {
		case world.KindPedestal.String():
			if ids[s.Target] != world.KindStone || s.Target == "" {
				return fmt.Errorf("%w: %s: pedestal %q must track a stone", ErrInvalidManifest, m.ID, s.ID)
			}
		case world.KindTurbine.String():
			if k, ok := ids[s.Target]; s.Target != "" && (!ok || k != world.KindWindTunnel) {
				return fmt.Errorf("%w: %s: turbine %q must drive a wind tunnel", ErrInvalidManifest, m.ID, s.ID)
			}
		}
	}
	return nil
}
