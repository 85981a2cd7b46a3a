package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 1.2\nboss:\n  hp: 30\n"))
	require.NoError(t, err)

	assert.Equal(t, 1.2, cfg.Physics.Gravity)
	assert.Equal(t, 30, cfg.Boss.HP)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultConfig().Physics.JumpImpulse, cfg.Physics.JumpImpulse)
	assert.Equal(t, DefaultConfig().Camera, cfg.Camera)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"friction above one", "physics:\n  friction: 1.5\n"},
		{"zero boss hp", "boss:\n  hp: 0\n"},
		{"unknown contact mode", "boss:\n  contact_damage: sometimes\n"},
		{"unknown timestep", "timestep:\n  mode: elastic\n"},
		{"negative time scale", "timestep:\n  time_scale: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("physics: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("camera:\n  lerp: 0.5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Camera.Lerp)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	story := DefaultConfig()
	ApplyPreset(&story, DifficultyStory)
	assert.Equal(t, 5, story.Player.MaxHP)
	assert.Equal(t, ContactOnEntry, story.Boss.ContactDamage)

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	assert.Equal(t, 2, hard.Player.MaxHP)
	assert.Len(t, hard.Boss.PhaseThresholds, 2)

	normal := DefaultConfig()
	ApplyPreset(&normal, DifficultyNormal)
	assert.Equal(t, DefaultConfig(), normal)
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParseDifficulty("hard"))
	assert.Equal(t, DifficultyPreset(""), ParseDifficulty("nightmare"))
}

func TestBossPhaseRamp(t *testing.T) {
	b := DefaultConfig().Boss

	assert.Equal(t, 1, b.Phase(20))
	assert.Equal(t, 1, b.Phase(11))
	assert.Equal(t, 2, b.Phase(10))
	assert.Equal(t, 2, b.Phase(1))

	assert.InDelta(t, 2.6, b.ActionInterval(1), 1e-9)
	assert.InDelta(t, 2.0, b.ActionInterval(2), 1e-9)
	assert.Equal(t, 20.0, b.DashSpeedFor(1))
	assert.Equal(t, 24.0, b.DashSpeedFor(2))
	assert.Equal(t, 4.0, b.DriftSpeedFor(1))
	assert.Equal(t, 20.0, b.ProjectileSpeedFor(2))

	b.PhaseThresholds = []int{18, 9}
	assert.Equal(t, 3, b.Phase(9))
	assert.Equal(t, b.MinInterval, b.ActionInterval(10))
}

func TestBurdenMultiplier(t *testing.T) {
	p := DefaultConfig().Physics

	assert.Equal(t, 1.0, p.BurdenMultiplier(0))
	assert.InDelta(t, 0.64, p.BurdenMultiplier(3), 1e-9)
	assert.Equal(t, p.BurdenFloor, p.BurdenMultiplier(50))
}
