package config

import (
	_ "embed"
)

//go:embed defaults/procne.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded tuning. It mirrors defaults/procne.yaml.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			GroundY:       500,
			Height:        600,
			ViewportWidth: 800,
		},
		Player: PlayerConfig{
			Width:  40,
			Height: 80,
			MaxHP:  3,
		},
		Physics: PhysicsConfig{
			Gravity:            0.8,
			JumpImpulse:        -14,
			MoveSpeed:          5,
			Acceleration:       0.5,
			Friction:           0.85,
			MaxSpeed:           12,
			DragMaxSpeed:       2,
			ShieldMaxSpeed:     3,
			MaxFallSpeed:       0,
			BurdenPenalty:      0.12,
			BurdenFloor:        0.25,
			SandTrapMultiplier: 0.35,
			FeetHeight:         10,
		},
		Juice: JuiceConfig{
			ShakeDecay:    0.9,
			ShakeFloor:    0.1,
			ParticleSpeed: 14,
			ParticleLife:  0.8,
			LandingShake:  0.5,
		},
		Combat: CombatConfig{
			SlashOffset:         40,
			SlashBackOffset:     120,
			SlashWidth:          140,
			SlashHeight:         80,
			InteractPadX:        40,
			InteractPadY:        30,
			InteractWidth:       120,
			InteractHeight:      140,
			DragOffset:          50,
			DragBackOffset:      70,
			MoundHits:           4,
			PillarStep:          12,
			PillarEpsilon:       5,
			ProjectileKnockback: 22,
			ProjectileRange:     1500,
		},
		Boss: BossConfig{
			HP:                 20,
			PhaseThresholds:    []int{10},
			BaseInterval:       3.2,
			IntervalPerPhase:   0.6,
			MinInterval:        0.5,
			ThrowDistance:      350,
			CloseDistance:      50,
			DashSpeed:          16,
			DashPerPhase:       4,
			DriftSpeed:         3,
			DriftPerPhase:      1,
			ProjectileSpeed:    16,
			ProjectilePerPhase: 2,
			Invulnerability:    0.4,
			StaggerHits:        4,
			StaggerWindow:      2.5,
			StunDuration:       2.0,
			ContactKnockback:   18,
			ContactDamage:      ContactContinuous,
		},
		Camera: CameraConfig{
			Lead: 400,
			Lerp: 0.14,
		},
		Timestep: TimestepConfig{
			Mode:             TimestepFixed,
			MaxDT:            0.1,
			FallbackDT:       0.016,
			MaxTicksPerFrame: 5,
			TimeScale:        1,
		},
		Whisper: WhisperConfig{
			Enabled:           true,
			Offline:           false,
			Model:             "gemini-2.5-flash",
			APIKeyEnv:         "GEMINI_API_KEY",
			SystemInstruction: "You are the haunting voice of the Sands. Speak in short, poetic, dark whispers. Max 10 words.",
			TimeoutSeconds:    8,
			QueueSize:         8,
		},
	}
}
