package juice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
)

func TestTriggerKeepsMaximum(t *testing.T) {
	var s State
	s.Trigger(18, 0.12)
	s.Trigger(6, 0.05)

	assert.Equal(t, 18.0, s.Shake)
	assert.Equal(t, 0.12, s.HitStop)

	s.Trigger(35, 0.18)
	assert.Equal(t, 35.0, s.Shake)
	assert.Equal(t, 0.18, s.HitStop)
}

func TestFreezeForcesZeroDT(t *testing.T) {
	s := State{HitStop: 0.04}

	assert.Equal(t, 0.0, s.Freeze(1.0/60))
	assert.Equal(t, 0.0, s.Freeze(1.0/60))
	assert.Equal(t, 0.0, s.Freeze(1.0/60))
	assert.Equal(t, 0.0, s.HitStop)
	assert.Equal(t, 1.0/60, s.Freeze(1.0/60))
}

func TestDecaySnapsToZero(t *testing.T) {
	cfg := config.DefaultConfig().Juice
	s := State{Shake: 10}

	s.Decay(cfg)
	assert.InDelta(t, 9.0, s.Shake, 1e-9)

	frames := 0
	for s.Shake > 0 {
		s.Decay(cfg)
		frames++
		require.Less(t, frames, 1000)
	}
	assert.Equal(t, 0.0, s.Shake)
}

func TestEmitterIsDeterministic(t *testing.T) {
	cfg := config.DefaultConfig().Juice
	a := NewEmitter(42, cfg).Burst(nil, 10, 20, core.ColorWhite, 12)
	b := NewEmitter(42, cfg).Burst(nil, 10, 20, core.ColorWhite, 12)

	require.Len(t, a, 12)
	assert.Equal(t, a, b)
	for _, p := range a {
		assert.LessOrEqual(t, core.AbsF(p.Vel.X), cfg.ParticleSpeed/2)
		assert.LessOrEqual(t, core.AbsF(p.Vel.Y), cfg.ParticleSpeed/2)
		assert.Equal(t, cfg.ParticleLife, p.Life)
	}
}

func TestUpdateAgesAndDrops(t *testing.T) {
	ps := []Particle{
		{Pos: core.Vec2{X: 0, Y: 0}, Vel: core.Vec2{X: 1, Y: 2}, Life: 0.5},
		{Pos: core.Vec2{X: 5, Y: 5}, Vel: core.Vec2{X: -1, Y: 0}, Life: 0.01},
	}

	ps = Update(ps, 0.02)
	require.Len(t, ps, 1)
	assert.Equal(t, core.Vec2{X: 1, Y: 2}, ps[0].Pos)
	assert.InDelta(t, 0.48, ps[0].Life, 1e-9)

	// Hit-stop: particles drift but do not age.
	ps = Update(ps, 0)
	assert.Equal(t, core.Vec2{X: 2, Y: 4}, ps[0].Pos)
	assert.InDelta(t, 0.48, ps[0].Life, 1e-9)
}
