// Package juice holds the exaggerated feedback state of a session:
// screen shake, hit-stop and particle bursts. It never affects gameplay.
package juice

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
)

// Particle is a transient visual feedback unit.
// Velocity is in world units per tick; Life is in seconds.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Life  float64
	Color core.Color
}

// State is the per-session shake magnitude and hit-stop timer.
type State struct {
	Shake   float64
	HitStop float64 // Seconds of frozen simulation left
}

// Trigger raises shake and hit-stop to at least the given values.
func (s *State) Trigger(shake, hitStop float64) {
	s.Shake = math.Max(s.Shake, shake)
	s.HitStop = math.Max(s.HitStop, hitStop)
}

// Freeze consumes dt from the hit-stop timer and returns the dt the
// simulation should actually run with: zero while hit-stop is active.
func (s *State) Freeze(dt float64) float64 {
	if s.HitStop > 0 {
		s.HitStop -= dt
		if s.HitStop < 0 {
			s.HitStop = 0
		}
		return 0
	}
	return dt
}

// Decay applies one frame of exponential shake decay.
func (s *State) Decay(cfg config.JuiceConfig) {
	s.Shake *= cfg.ShakeDecay
	if s.Shake < cfg.ShakeFloor {
		s.Shake = 0
	}
}

// Reset clears shake and hit-stop.
func (s *State) Reset() {
	s.Shake = 0
	s.HitStop = 0
}

// Emitter spawns particle bursts from a seeded source so that runs with the
// same seed and input produce the same particles.
type Emitter struct {
	rng   *rand.Rand
	speed float64
	life  float64
}

// NewEmitter creates an emitter. Speed is the full spread of the random
// velocity on each axis, life the initial lifetime in seconds.
func NewEmitter(seed int64, cfg config.JuiceConfig) *Emitter {
	return &Emitter{
		rng:   rand.New(rand.NewSource(seed)),
		speed: cfg.ParticleSpeed,
		life:  cfg.ParticleLife,
	}
}

// Burst appends n particles at (x, y) to dst and returns the extended slice.
func (e *Emitter) Burst(dst []Particle, x, y float64, c core.Color, n int) []Particle {
	for i := 0; i < n; i++ {
		dst = append(dst, Particle{
			Pos:   core.Vec2{X: x, Y: y},
			Vel:   core.Vec2{X: (e.rng.Float64() - 0.5) * e.speed, Y: (e.rng.Float64() - 0.5) * e.speed},
			Life:  e.life,
			Color: c,
		})
	}
	return dst
}

// Update moves every particle by its velocity, ages it by dt and drops the
// expired ones. Particles keep drifting during hit-stop (dt = 0) but do not age.
// The slice is compacted in place.
func Update(ps []Particle, dt float64) []Particle {
	alive := ps[:0]
	for _, p := range ps {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Life -= dt
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	return alive
}
