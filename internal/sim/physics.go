package sim

import (
	"math"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/world"
)

// PhysicsEnv is what the integrator reads besides the player and entities.
type PhysicsEnv struct {
	Physics        config.PhysicsConfig
	GroundY        float64
	DialogueActive bool
}

// Landing reports a touchdown from the air during Integrate.
type Landing struct {
	Landed  bool
	Impact  float64 // Downward speed at touchdown, world units per tick
	Surface float64 // Y of the surface landed on
}

// Integrate advances the player by one tick. Velocities are per tick, so the
// kinematics do not depend on dt; the caller runs it at a fixed rate.
func Integrate(p *world.Player, ents []world.Entity, keys core.KeyState, env PhysicsEnv) Landing {
	cfg := env.Physics
	burden := cfg.BurdenMultiplier(p.Tasks)
	wind, trap := surroundings(p, ents, cfg)

	accel := cfg.MoveSpeed * burden * trap * cfg.Acceleration
	switch {
	case !env.DialogueActive && keys.Held(core.KeyRight):
		p.Vel.X += accel
		p.FacingRight = true
	case !env.DialogueActive && keys.Held(core.KeyLeft):
		p.Vel.X -= accel
		p.FacingRight = false
	default:
		p.Vel.X *= cfg.Friction
	}
	p.Vel.X += wind

	limit := cfg.MaxSpeed
	switch {
	case p.Dragging != "":
		limit = cfg.DragMaxSpeed
	case p.Shielding:
		limit = cfg.ShieldMaxSpeed
	}
	limit *= burden * trap
	p.Vel.X = core.ClampF(p.Vel.X, -limit, limit)

	p.Vel.Y += cfg.Gravity
	if cfg.MaxFallSpeed > 0 && p.Vel.Y > cfg.MaxFallSpeed {
		p.Vel.Y = cfg.MaxFallSpeed
	}

	prevBottom := p.Pos.Y + p.H
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y

	var land Landing
	surface := supportingSurface(p, ents, prevBottom, env.GroundY)
	if p.Pos.Y+p.H >= surface {
		if !p.Grounded {
			land = Landing{Landed: true, Impact: p.Vel.Y, Surface: surface}
		}
		p.Pos.Y = surface - p.H
		p.Vel.Y = 0
		p.Grounded = true
	} else {
		p.Grounded = false
	}

	if keys.Held(core.KeyJump) {
		if p.Grounded {
			p.Vel.Y = cfg.JumpImpulse
			p.Grounded = false
		}
		// Holding jump in the air is the airborne attack.
		if !p.Grounded {
			p.Slashing = true
		}
	}

	if p.Pos.X < 0 {
		p.Pos.X = 0
	}
	return land
}

// surroundings sums active wind over the player's feet and returns the
// strongest sand trap slowdown (1 when outside every trap).
func surroundings(p *world.Player, ents []world.Entity, cfg config.PhysicsConfig) (wind, trap float64) {
	feet := p.Feet(cfg.FeetHeight)
	trap = 1
	for i := range ents {
		e := &ents[i]
		if !e.Visible || !core.Overlaps(feet, e.Box) {
			continue
		}
		switch pl := e.Payload.(type) {
		case *world.WindTunnel:
			if pl.Active {
				wind += pl.Force
			}
		case *world.SandTrap:
			m := pl.Multiplier
			if m <= 0 {
				m = cfg.SandTrapMultiplier
			}
			trap = math.Min(trap, m)
		}
	}
	return wind, trap
}

// supportingSurface returns the highest surface under the player: the ground
// or a one-way platform whose top the feet crossed this tick while falling.
func supportingSurface(p *world.Player, ents []world.Entity, prevBottom, groundY float64) float64 {
	surface := groundY
	if p.Vel.Y < 0 {
		return surface
	}
	bottom := p.Pos.Y + p.H
	for i := range ents {
		e := &ents[i]
		if !e.Visible {
			continue
		}
		if _, ok := e.Payload.(*world.Platform); !ok {
			continue
		}
		top := e.Box.Y
		if p.Pos.X < e.Box.Right() && p.Pos.X+p.W > e.Box.X &&
			prevBottom <= top && bottom >= top && top < surface {
			surface = top
		}
	}
	return surface
}
