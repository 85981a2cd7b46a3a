package sim

import (
	"fmt"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/world"
)

// PillarTask is the task completed once every pillar is aligned.
const PillarTask = "pillar"

// Effects are the side effects the resolver and boss logic may request.
// The session implements them; CompleteTask must be idempotent per id.
type Effects interface {
	CompleteTask(id, whisper string)
	Finish()
	Whisper(prompt string)
	Juice(shake, hitStop float64)
	Burst(x, y float64, c core.Color, n int)
	Cue(c Cue)
	Die()
}

// Rules are the per-episode inputs of the resolver.
type Rules struct {
	Combat    config.CombatConfig
	Boss      config.BossConfig
	Door      level.DoorRule
	AllowDrag bool
}

// SlashBox returns the forward reach box of the player's attack.
func SlashBox(p *world.Player, c config.CombatConfig) core.Box {
	x := p.Pos.X - c.SlashBackOffset
	if p.FacingRight {
		x = p.Pos.X + c.SlashOffset
	}
	return core.NewBox(x, p.Pos.Y, c.SlashWidth, c.SlashHeight)
}

// InteractBox returns the centered reach box used by every interact rule.
func InteractBox(p *world.Player, c config.CombatConfig) core.Box {
	return core.NewBox(p.Pos.X-c.InteractPadX, p.Pos.Y-c.InteractPadY, c.InteractWidth, c.InteractHeight)
}

// Resolve runs one interaction and combat pass over the entity list, in list
// order. Invisible entities are skipped. Entities spawned during the pass
// are appended after it, and a lethal hit is applied once the pass is over.
// The just-pressed interact flag is consumed.
func Resolve(w *world.World, r Rules, fx Effects) {
	p := &w.Player
	slash := SlashBox(p, r.Combat)
	reach := InteractBox(p, r.Combat)
	body := p.Box()

	var spawned []world.Entity
	died := false

	for i := 0; i < len(w.Entities); {
		e := &w.Entities[i]
		if !e.Visible {
			i++
			continue
		}
		inReach := core.Overlaps(reach, e.Box)
		slashed := p.Slashing && core.Overlaps(slash, e.Box)
		removed := false

		switch pl := e.Payload.(type) {
		case *world.Collectible:
			if inReach && p.InteractPressed && !e.Interacted {
				removed = pickup(w, e, pl, fx)
			}
		case *world.Door:
			if inReach && p.InteractPressed {
				tryDoor(w, pl, r.Door, fx)
			}
		case *world.Pillar:
			if inReach && p.InteractPressed && !e.Interacted {
				alignPillar(w, e, pl, r.Combat, fx)
			}
		case *world.Stone:
			drag(p, e, inReach, r)
		case *world.Turbine:
			if inReach && p.InteractPressed && !pl.Complete {
				if feed(p, e, pl.Requires, fx) {
					pl.Progress++
					if pl.Progress >= pl.Threshold {
						pl.Complete = true
						e.Interacted = true
						if tunnel := w.Find(pl.Tunnel); tunnel != nil {
							if wt, ok := tunnel.Payload.(*world.WindTunnel); ok {
								wt.Active = false
							}
						}
						completeIfSet(fx, pl.TaskID, "The wind falls silent. The weaver loses its tongue.")
					}
				}
			}
		case *world.Cauldron:
			if inReach && p.InteractPressed && !pl.Complete {
				if feed(p, e, pl.Requires, fx) {
					pl.Progress++
					if pl.Progress >= pl.Threshold {
						pl.Complete = true
						e.Interacted = true
						if pl.Reward != world.ItemNone {
							spawned = append(spawned, reveal(w, e, pl.Reward))
						}
						completeIfSet(fx, pl.TaskID, "The broth remembers every hand that stirred it.")
					}
				}
			}
		case *world.OfferingBowl:
			if inReach && p.InteractPressed && !pl.Filled {
				if feed(p, e, pl.Requires, fx) {
					pl.Filled = true
					e.Interacted = true
					completeIfSet(fx, pl.TaskID, "The offering is complete. The cycle remembers.")
				}
			}
		case *world.Pedestal:
			if !e.Interacted {
				if tracked := w.Find(pl.Tracks); tracked != nil && tracked.Visible && core.Overlaps(tracked.Box, e.Box) {
					e.Interacted = true
					completeIfSet(fx, pl.TaskID, "The altar finds its stone. The anchor is set.")
				}
			}
		case *world.Mound:
			if slashed && !e.Interacted {
				if item, ok := strikeMound(e, pl, r.Combat, fx); ok {
					spawned = append(spawned, reveal(w, e, item))
				}
			}
		case *world.Boss:
			if slashed && !e.Interacted {
				strikeBoss(w, e, pl, r.Boss, fx)
			}
		case *world.Projectile:
			e.Box.X += pl.VX
			switch {
			case core.Overlaps(body, e.Box):
				removed = true
				if projectileHit(p, pl, r.Combat, fx) {
					died = true
				}
			case core.AbsF(e.Box.X-w.Camera) > r.Combat.ProjectileRange:
				removed = true
			}
		}

		if removed {
			w.Remove(i)
			continue
		}
		i++
	}

	w.Entities = append(w.Entities, spawned...)
	p.InteractPressed = false
	if died {
		fx.Die()
	}
}

func completeIfSet(fx Effects, id, whisper string) {
	if id != "" {
		fx.CompleteTask(id, whisper)
	}
}

// pickup handles a collectible under the interact press. It returns true when
// the entity must be removed from the list.
func pickup(w *world.World, e *world.Entity, c *world.Collectible, fx Effects) bool {
	p := &w.Player
	if c.Item == world.ItemHeart {
		if p.HP < p.MaxHP {
			p.HP++
		}
		fx.Burst(e.Box.CenterX(), e.Box.Y, core.ColorRed, 8)
		fx.Cue(CueHeal)
		return true
	}
	if p.Carried != world.ItemNone {
		fx.Whisper(fmt.Sprintf("Your hands already hold a %s.", p.Carried))
		fx.Cue(CueBlocked)
		return false
	}
	e.Visible = false
	e.Interacted = true
	p.Carried = c.Item
	fx.Cue(CuePickup)
	if c.TaskID != "" {
		fx.CompleteTask(c.TaskID, fmt.Sprintf("The %s... a cold weight.", c.Item))
	}
	return false
}

func tryDoor(w *world.World, d *world.Door, rule level.DoorRule, fx Effects) {
	p := &w.Player
	if d.Unlocked {
		fx.Finish()
		return
	}

	switch {
	case rule.Tasks > 0 && p.Tasks < rule.Tasks:
		fx.Whisper(fmt.Sprintf("The door remains locked. %d/%d burdens resolved.", p.Tasks, rule.Tasks))
	case rule.Item != world.ItemNone && p.Carried != rule.Item:
		fx.Whisper(fmt.Sprintf("The door remains locked. It waits for a %s.", rule.Item))
	case rule.BossDefeated && !w.BossDefeated:
		fx.Whisper("The door will not open while the Recurrence stands.")
	default:
		if rule.Item != world.ItemNone {
			p.Carried = world.ItemNone
		}
		d.Unlocked = true
		fx.Finish()
		return
	}
	fx.Juice(8, 0)
	fx.Cue(CueLocked)
}

func alignPillar(w *world.World, e *world.Entity, pl *world.Pillar, c config.CombatConfig, fx Effects) {
	if pl.Tilt < 0 {
		pl.Tilt += c.PillarStep
	} else {
		pl.Tilt -= c.PillarStep
	}
	fx.Juice(10, 0)
	if core.AbsF(pl.Tilt) < c.PillarEpsilon {
		pl.Tilt = 0
		e.Interacted = true
		if w.AllResolved(world.KindPillar) {
			fx.CompleteTask(PillarTask, "The monoliths find their balance. The sky shivers.")
		}
	}
}

func drag(p *world.Player, e *world.Entity, inReach bool, r Rules) {
	if !r.AllowDrag || !p.Interacting {
		return
	}
	switch {
	case p.Dragging == e.ID:
	case p.Dragging == "" && inReach:
		p.Dragging = e.ID
	default:
		return
	}
	if p.FacingRight {
		e.Box.X = p.Pos.X + r.Combat.DragOffset
	} else {
		e.Box.X = p.Pos.X - r.Combat.DragBackOffset
	}
}

// feed consumes the carried item if it is what a machine requires.
func feed(p *world.Player, e *world.Entity, requires world.ItemKind, fx Effects) bool {
	switch p.Carried {
	case requires:
		p.Carried = world.ItemNone
		fx.Burst(e.Box.CenterX(), e.Box.Y, core.ColorOrange, 10)
		fx.Juice(10, 0.05)
		return true
	case world.ItemNone:
		fx.Whisper(fmt.Sprintf("It hungers for a %s.", requires))
	default:
		fx.Whisper(fmt.Sprintf("It refuses the %s.", p.Carried))
	}
	fx.Cue(CueBlocked)
	return false
}

// strikeMound lands one slash. On depletion it returns the item to reveal.
func strikeMound(e *world.Entity, m *world.Mound, c config.CombatConfig, fx Effects) (world.ItemKind, bool) {
	m.Hits++
	fx.Burst(e.Box.X+20, e.Box.Y+30, core.ColorWhite, 5)
	fx.Juice(6, 0.05)
	fx.Cue(CueSlash)
	if m.Hits < c.MoundHits {
		return world.ItemNone, false
	}
	e.Interacted = true
	e.Visible = false
	completeIfSet(fx, m.RewardTask, "Something unearths... a fragment of what was.")
	return m.RewardItem, m.RewardItem != world.ItemNone
}

// reveal builds a pickup resting on the ground under src.
func reveal(w *world.World, src *world.Entity, item world.ItemKind) world.Entity {
	const size = 24
	return world.Entity{
		ID:      w.NextID(string(item)),
		Box:     core.NewBox(src.Box.CenterX()-size/2, src.Box.Bottom()-size, size, size),
		Visible: true,
		Payload: &world.Collectible{Item: item},
	}
}

func strikeBoss(w *world.World, e *world.Entity, b *world.Boss, cfg config.BossConfig, fx Effects) {
	st := &w.Boss
	if st.Invuln > 0 || st.Stun > 0 {
		return
	}
	b.HP--
	st.Invuln = cfg.Invulnerability
	st.HitsTaken++
	st.SinceHit = 0
	fx.Juice(35, 0.18)
	fx.Burst(e.Box.X+20, e.Box.Y+40, core.ColorRed, 25)
	fx.Cue(CueBossHit)

	if b.HP <= 0 {
		b.HP = 0
		e.Interacted = true
		w.BossDefeated = true
		fx.Finish()
		return
	}
	if st.HitsTaken >= cfg.StaggerHits {
		st.Stun = cfg.StunDuration
		fx.Cue(CueStun)
	}
}

// projectileHit resolves a projectile striking the player. It reports
// whether the hit was lethal.
func projectileHit(p *world.Player, pr *world.Projectile, c config.CombatConfig, fx Effects) bool {
	if p.Shielding {
		fx.Juice(6, 0)
		fx.Burst(p.Pos.X+p.W/2, p.Pos.Y+p.H/2, core.ColorBlue, 6)
		fx.Cue(CueBlocked)
		return false
	}
	p.HP--
	p.Vel.X = -core.Sign(pr.VX) * c.ProjectileKnockback
	fx.Juice(25, 0.12)
	fx.Burst(p.Pos.X+p.W/2, p.Pos.Y+p.H/2, core.ColorWhite, 12)
	fx.Cue(CueHurt)
	return p.HP <= 0
}
