package sim

import (
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/juice"
)

// Advance feeds wall-clock time into the session and returns the number of
// logical ticks run. In fixed mode time accumulates and whole ticks are
// stepped, at most MaxTicksPerFrame per call; a larger backlog is dropped.
// Stepping stops after the tick that finishes the episode.
// In variable mode one tick of the (clamped) elapsed time is stepped.
func (s *Session) Advance(elapsed float64) int {
	ts := s.cfg.Timestep
	if elapsed < 0 {
		elapsed = 0
	}
	if ts.Mode == config.TimestepVariable {
		s.Step(elapsed)
		return 1
	}

	maxTicks := ts.MaxTicksPerFrame
	if maxTicks <= 0 {
		maxTicks = 1
	}
	s.acc += elapsed
	n := 0
	for s.acc >= s.tickDT && n < maxTicks {
		done := s.finished
		s.Step(s.tickDT)
		s.acc -= s.tickDT
		n++
		if s.finished && !done {
			// Nothing may happen to the episode after the tick that finished it.
			s.acc = 0
			return n
		}
	}
	if n == maxTicks && s.acc >= s.tickDT {
		s.acc = 0
	}
	return n
}

// Step runs one logical tick. Juice always runs; physics, hints,
// interactions, boss logic and the camera run only while playing, not
// paused and not frozen by hit-stop.
func (s *Session) Step(dt float64) {
	s.drainDialogue()

	ts := s.cfg.Timestep
	if dt > ts.MaxDT {
		dt = ts.FallbackDT
	}
	if dt < 0 {
		dt = 0
	}
	dt *= ts.TimeScale

	w := s.world
	dt = w.Juice.Freeze(dt)
	w.Juice.Decay(s.cfg.Juice)
	w.Particles = juice.Update(w.Particles, dt)
	s.ticks++

	if !s.playing || s.paused || dt <= 0 {
		return
	}
	s.elapsed += dt
	s.simulate(dt)
}

// simulate runs the gameplay passes in their fixed order.
func (s *Session) simulate(dt float64) {
	w := s.world
	p := &w.Player
	p.Shielding = s.manifest.Shield && w.Keys.Held(core.KeyShield)

	land := Integrate(p, w.Entities, w.Keys, PhysicsEnv{
		Physics:        s.cfg.Physics,
		GroundY:        s.cfg.World.GroundY,
		DialogueActive: w.DialogueActive,
	})
	if land.Landed {
		w.Juice.Trigger(core.AbsF(land.Impact)*s.cfg.Juice.LandingShake, 0)
		s.burst(p.Pos.X+p.W/2, land.Surface, core.ColorGrey, 10)
		s.events.cue(CueLand)
	}

	s.checkHints()
	Resolve(w, s.rules(), s.fx())
	if s.hasBoss {
		UpdateBoss(w, s.cfg.Boss, dt, s.fx())
	}
	s.followCamera()
}

func (s *Session) rules() Rules {
	return Rules{
		Combat:    s.cfg.Combat,
		Boss:      s.cfg.Boss,
		Door:      s.manifest.Door,
		AllowDrag: !s.hasBoss,
	}
}

// checkHints shows each hint the first time the player enters its radius.
func (s *Session) checkHints() {
	w := s.world
	cx := w.Player.Box().CenterX()
	for i, h := range s.manifest.Hints {
		if w.HintsShown[i] {
			continue
		}
		if core.AbsF(cx-h.X) <= h.Radius {
			w.HintsShown[i] = true
			s.showDialogue(h.Text)
		}
	}
}

// followCamera eases the camera toward the player, or holds it at the
// origin for locked episodes.
func (s *Session) followCamera() {
	w := s.world
	target := 0.0
	if !s.manifest.CameraLocked {
		target = w.Player.Pos.X - s.cfg.Camera.Lead
	}
	w.Camera += (target - w.Camera) * s.cfg.Camera.Lerp
	if w.Camera < 0 {
		w.Camera = 0
	}
}

// drainDialogue applies finished narrator lines of the current generation.
func (s *Session) drainDialogue() {
	if s.narrator == nil {
		return
	}
	lines := s.narrator.Lines()
	for {
		select {
		case line := <-lines:
			if line.Gen != s.gen {
				s.logger.Debug("stale whisper dropped", "generation", line.Gen, "current", s.gen)
				continue
			}
			if line.Text != "" {
				s.showDialogue(line.Text)
			}
		default:
			return
		}
	}
}
