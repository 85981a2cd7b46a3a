package sim

import (
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/world"
)

// Projectile dimensions and launch offset from the boss box.
const (
	projectileW       = 30
	projectileH       = 6
	projectileOffsetX = 20
	projectileOffsetY = 35
)

// UpdateBoss runs one tick of the boss encounter: timers, stun, action
// selection, movement and body contact. Contact damage applies in every
// action state, stunned included. It does nothing once the boss is defeated
// or when the episode has none.
func UpdateBoss(w *world.World, cfg config.BossConfig, dt float64, fx Effects) {
	e := w.FirstOf(world.KindBoss)
	if e == nil || !e.Visible || e.Interacted {
		return
	}
	boss, ok := e.Payload.(*world.Boss)
	if !ok {
		return
	}
	st := &w.Boss
	p := &w.Player

	if st.Invuln > 0 {
		st.Invuln -= dt
	}

	// Stunned: frozen in place and the stagger counter stays empty.
	if st.Stun > 0 {
		st.Stun -= dt
		if st.Stun < 0 {
			st.Stun = 0
		}
		st.HitsTaken = 0
		bossContact(p, e, st, cfg, fx)
		return
	}

	st.SinceHit += dt
	if st.HitsTaken > 0 && st.SinceHit > cfg.StaggerWindow {
		st.HitsTaken = 0
	}

	phase := cfg.Phase(boss.HP)
	dist := p.Pos.X - e.Box.X

	st.Timer += dt
	if st.Timer > cfg.ActionInterval(phase) {
		st.Timer = 0
		if core.AbsF(dist) > cfg.ThrowDistance {
			st.Action = world.BossThrow
		} else {
			st.Action = world.BossDash
		}
	}

	switch st.Action {
	case world.BossDash:
		e.Box.X += core.Sign(dist) * cfg.DashSpeedFor(phase)
		if core.AbsF(dist) < cfg.CloseDistance {
			st.Action = world.BossWait
			fx.Juice(12, 0)
			fx.Burst(e.Box.X+e.Box.W/2, e.Box.Bottom(), core.ColorWhite, 5)
		}
	case world.BossThrow:
		w.Entities = append(w.Entities, world.Entity{
			ID:      w.NextID("proj"),
			Box:     core.NewBox(e.Box.X+projectileOffsetX, e.Box.Y+projectileOffsetY, projectileW, projectileH),
			Visible: true,
			Payload: &world.Projectile{VX: core.Sign(dist) * cfg.ProjectileSpeedFor(phase)},
		})
		// The append may have moved the slice.
		e = w.FirstOf(world.KindBoss)
		st.Action = world.BossWait
	default:
		e.Box.X += core.Sign(dist) * cfg.DriftSpeedFor(phase)
	}

	bossContact(p, e, st, cfg, fx)
}

// bossContact applies body contact: knockback away from the boss, then a
// blocked cue or the loss of one HP.
func bossContact(p *world.Player, e *world.Entity, st *world.BossState, cfg config.BossConfig, fx Effects) {
	touching := core.Overlaps(p.Box(), e.Box)
	hit := touching && (cfg.ContactDamage != config.ContactOnEntry || !st.Touching)
	st.Touching = touching
	if !hit {
		return
	}

	away := core.Sign(p.Box().CenterX() - e.Box.CenterX())
	if away == 0 {
		away = -1
	}
	p.Vel.X = away * cfg.ContactKnockback
	fx.Juice(15, 0.05)
	fx.Burst(p.Pos.X+p.W/2, p.Pos.Y+p.H/2, core.ColorRed, 6)
	if p.Shielding {
		fx.Cue(CueBlocked)
		return
	}
	p.HP--
	fx.Cue(CueHurt)
	if p.HP <= 0 {
		fx.Die()
	}
}
