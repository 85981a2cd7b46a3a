package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/world"
)

const bossTick = 1.0 / 60

func bossWorld(playerX float64, hp int) *world.World {
	return testWorld(standingPlayer(playerX), ent("boss", 600, 400, 40, 80, &world.Boss{HP: hp, MaxHP: 20}))
}

func TestBossThrowsAtRange(t *testing.T) {
	w := bossWorld(100, 20)
	w.Boss.Timer = 3.0
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, 0.1, fx)

	require.Len(t, w.Entities, 2)
	proj := w.Entities[1]
	assert.Equal(t, world.KindProjectile, proj.Kind())
	assert.Equal(t, 620.0, proj.Box.X)
	assert.Equal(t, 435.0, proj.Box.Y)
	assert.Equal(t, -18.0, proj.Payload.(*world.Projectile).VX)
	assert.Equal(t, world.BossWait, w.Boss.Action)
	assert.Zero(t, w.Boss.Timer)
	assert.Equal(t, 600.0, w.Find("boss").Box.X, "throwing does not move the boss")
}

func TestBossThrowIDsAreUnique(t *testing.T) {
	w := bossWorld(100, 20)
	cfg := testConfig().Boss
	for i := 0; i < 3; i++ {
		w.Boss.Timer = 3.0
		UpdateBoss(w, cfg, 0.1, &fakeFX{})
	}
	require.Equal(t, 3, w.Count(world.KindProjectile))
	seen := map[string]bool{}
	for _, e := range w.Entities {
		assert.False(t, seen[e.ID], e.ID)
		seen[e.ID] = true
	}
}

func TestBossDashesWhenClose(t *testing.T) {
	w := bossWorld(400, 20)
	w.Boss.Timer = 2.6
	cfg := testConfig().Boss

	UpdateBoss(w, cfg, 0.1, &fakeFX{})
	assert.Equal(t, world.BossDash, w.Boss.Action)
	assert.Equal(t, 580.0, w.Find("boss").Box.X)

	UpdateBoss(w, cfg, 0.1, &fakeFX{})
	assert.Equal(t, world.BossDash, w.Boss.Action)
	assert.Equal(t, 560.0, w.Find("boss").Box.X)
}

func TestBossDashEndsNearPlayer(t *testing.T) {
	w := bossWorld(560, 20)
	w.Boss.Action = world.BossDash
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, bossTick, fx)
	assert.Equal(t, world.BossWait, w.Boss.Action)
	assert.Equal(t, 580.0, w.Find("boss").Box.X)
	assert.Greater(t, fx.bursts, 0)
}

func TestBossDriftSpeedByPhase(t *testing.T) {
	tests := []struct {
		hp    int
		wantX float64
	}{
		{20, 596},
		{11, 596},
		{10, 595},
		{1, 595},
	}
	for _, tc := range tests {
		w := bossWorld(100, tc.hp)
		UpdateBoss(w, testConfig().Boss, bossTick, &fakeFX{})
		assert.Equal(t, tc.wantX, w.Find("boss").Box.X, "hp %d", tc.hp)
	}
}

func TestBossIntervalShrinksWithPhase(t *testing.T) {
	cfg := testConfig().Boss

	calm := bossWorld(100, 20)
	calm.Boss.Timer = 1.95
	UpdateBoss(calm, cfg, 0.1, &fakeFX{})
	assert.Equal(t, world.BossWait, calm.Boss.Action)
	assert.InDelta(t, 2.05, calm.Boss.Timer, 1e-9)

	angry := bossWorld(100, 10)
	angry.Boss.Timer = 1.95
	UpdateBoss(angry, cfg, 0.1, &fakeFX{})
	assert.Zero(t, angry.Boss.Timer)
	require.Equal(t, 1, angry.Count(world.KindProjectile))
	assert.Equal(t, -20.0, angry.Entities[1].Payload.(*world.Projectile).VX)
}

func TestBossStunFreezes(t *testing.T) {
	w := bossWorld(100, 20)
	w.Boss.Stun = 0.5
	w.Boss.HitsTaken = 4
	w.Boss.Timer = 2.5
	w.Boss.Action = world.BossDash
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, 0.1, fx)

	assert.Equal(t, 600.0, w.Find("boss").Box.X)
	assert.Equal(t, world.BossDash, w.Boss.Action)
	assert.Equal(t, 2.5, w.Boss.Timer)
	assert.Zero(t, w.Boss.HitsTaken)
	assert.InDelta(t, 0.4, w.Boss.Stun, 1e-9)
	assert.False(t, w.Boss.Touching)
	assert.True(t, fx.quiet())
}

func TestStunnedBossStillHurtsOnContact(t *testing.T) {
	cfg := testConfig().Boss
	cfg.ContactDamage = config.ContactContinuous
	w := bossWorld(590, 20)
	w.Boss.Stun = 1.0
	fx := &fakeFX{}

	for i := 0; i < 2; i++ {
		UpdateBoss(w, cfg, bossTick, fx)
	}

	assert.Equal(t, 1, w.Player.HP)
	assert.Equal(t, -cfg.ContactKnockback, w.Player.Vel.X)
	assert.Equal(t, []Cue{CueHurt, CueHurt}, fx.cues)
	assert.True(t, w.Boss.Touching)
	assert.True(t, w.Boss.Stunned())
	assert.Equal(t, 600.0, w.Find("boss").Box.X, "a stunned boss does not move")
}

func TestStunnedBossContactShielded(t *testing.T) {
	w := bossWorld(590, 20)
	w.Boss.Stun = 1.0
	w.Player.Shielding = true
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, bossTick, fx)
	assert.Equal(t, 3, w.Player.HP)
	assert.Equal(t, []Cue{CueBlocked}, fx.cues)
}

func TestBossStunRunsOut(t *testing.T) {
	w := bossWorld(100, 20)
	w.Boss.Stun = 0.05

	UpdateBoss(w, testConfig().Boss, 0.1, &fakeFX{})
	assert.Zero(t, w.Boss.Stun)
	assert.False(t, w.Boss.Stunned())

	UpdateBoss(w, testConfig().Boss, bossTick, &fakeFX{})
	assert.Equal(t, 596.0, w.Find("boss").Box.X)
}

func TestBossStaggerWindowExpires(t *testing.T) {
	cfg := testConfig().Boss

	w := bossWorld(100, 20)
	w.Boss.HitsTaken = 2
	w.Boss.SinceHit = 2.45
	UpdateBoss(w, cfg, 0.1, &fakeFX{})
	assert.Zero(t, w.Boss.HitsTaken)

	w = bossWorld(100, 20)
	w.Boss.HitsTaken = 2
	w.Boss.SinceHit = 1
	UpdateBoss(w, cfg, 0.1, &fakeFX{})
	assert.Equal(t, 2, w.Boss.HitsTaken)
}

func TestBossInvulnerabilityCountsDown(t *testing.T) {
	w := bossWorld(100, 20)
	w.Boss.Invuln = 0.4

	UpdateBoss(w, testConfig().Boss, 0.1, &fakeFX{})
	assert.InDelta(t, 0.3, w.Boss.Invuln, 1e-9)
}

func TestBossContactDamage(t *testing.T) {
	tests := []struct {
		name   string
		mode   config.ContactDamage
		frames int
		wantHP int
	}{
		{"continuous", config.ContactContinuous, 2, 1},
		{"on entry", config.ContactOnEntry, 2, 2},
		{"on entry single frame", config.ContactOnEntry, 1, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig().Boss
			cfg.ContactDamage = tc.mode
			w := bossWorld(590, 20)
			fx := &fakeFX{}

			for i := 0; i < tc.frames; i++ {
				UpdateBoss(w, cfg, bossTick, fx)
			}

			assert.Equal(t, tc.wantHP, w.Player.HP)
			assert.True(t, w.Boss.Touching)
			assert.Equal(t, -cfg.ContactKnockback, w.Player.Vel.X)
			assert.Contains(t, fx.cues, CueHurt)
		})
	}
}

func TestBossContactOnEntryRearms(t *testing.T) {
	cfg := testConfig().Boss
	cfg.ContactDamage = config.ContactOnEntry
	w := bossWorld(590, 20)

	UpdateBoss(w, cfg, bossTick, &fakeFX{})
	assert.Equal(t, 2, w.Player.HP)

	w.Player.Pos.X = 100
	UpdateBoss(w, cfg, bossTick, &fakeFX{})
	assert.False(t, w.Boss.Touching)

	w.Player.Pos.X = w.Find("boss").Box.X - 10
	UpdateBoss(w, cfg, bossTick, &fakeFX{})
	assert.Equal(t, 1, w.Player.HP)
}

func TestBossKnockbackPushesAway(t *testing.T) {
	w := bossWorld(620, 20)
	UpdateBoss(w, testConfig().Boss, bossTick, &fakeFX{})
	assert.Equal(t, testConfig().Boss.ContactKnockback, w.Player.Vel.X)
}

func TestBossContactShielded(t *testing.T) {
	w := bossWorld(590, 20)
	w.Player.Shielding = true
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, bossTick, fx)
	assert.Equal(t, 3, w.Player.HP)
	assert.Contains(t, fx.cues, CueBlocked)
	assert.NotZero(t, w.Player.Vel.X, "the shield still takes the knockback")
}

func TestBossContactLethal(t *testing.T) {
	w := bossWorld(590, 20)
	w.Player.HP = 1
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, bossTick, fx)
	assert.Equal(t, 0, w.Player.HP)
	assert.Equal(t, 1, fx.deaths)
}

func TestDefeatedBossIsInert(t *testing.T) {
	w := bossWorld(590, 0)
	w.Find("boss").Interacted = true
	w.Boss.Timer = 10
	fx := &fakeFX{}

	UpdateBoss(w, testConfig().Boss, 0.1, fx)
	assert.Equal(t, 600.0, w.Find("boss").Box.X)
	assert.Equal(t, 1, len(w.Entities))
	assert.Equal(t, 3, w.Player.HP)
	assert.True(t, fx.quiet())
}

func TestUpdateBossWithoutBoss(t *testing.T) {
	w := testWorld(standingPlayer(100))
	fx := &fakeFX{}
	UpdateBoss(w, testConfig().Boss, 0.1, fx)
	assert.True(t, fx.quiet())
}
