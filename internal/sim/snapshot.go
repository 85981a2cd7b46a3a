package sim

import (
	"github.com/vovakirdan/procne/internal/juice"
	"github.com/vovakirdan/procne/internal/world"
)

// Snapshot is a read-only deep copy of the renderable state of a session.
type Snapshot struct {
	Tick      uint64
	Episode   int
	Zone      string
	Player    world.Player
	Entities  []world.Entity
	Particles []juice.Particle
	Boss      world.BossState
	Phase     int // Boss phase, 0 without a live boss
	Camera    float64
	Shake     float64
	HitStop   float64
	Dialogue  bool
	Paused    bool
	Finished  bool
	Deaths    int
}

// Snapshot copies the current state. Mutating the result never affects the
// session.
func (s *Session) Snapshot() Snapshot {
	w := s.world
	snap := Snapshot{
		Tick:      s.ticks,
		Episode:   s.manifest.Episode,
		Zone:      s.manifest.Zone,
		Player:    w.Player.Clone(),
		Entities:  world.CloneEntities(w.Entities),
		Particles: append([]juice.Particle(nil), w.Particles...),
		Boss:      w.Boss,
		Camera:    w.Camera,
		Shake:     w.Juice.Shake,
		HitStop:   w.Juice.HitStop,
		Dialogue:  w.DialogueActive,
		Paused:    s.paused,
		Finished:  s.finished,
		Deaths:    s.deaths,
	}
	if e := w.FirstOf(world.KindBoss); e != nil && !e.Interacted {
		if b, ok := e.Payload.(*world.Boss); ok {
			snap.Phase = s.cfg.Boss.Phase(b.HP)
		}
	}
	return snap
}

// BossHP returns the boss entity's health and maximum, or zeros.
func (snap Snapshot) BossHP() (hp, maxHP int) {
	for i := range snap.Entities {
		if b, ok := snap.Entities[i].Payload.(*world.Boss); ok {
			return b.HP, b.MaxHP
		}
	}
	return 0, 0
}
