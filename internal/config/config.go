// Package config provides YAML-based tuning for the simulation: physics,
// juice, combat, boss behaviour, camera, timestep and the narrator.
package config

// Config contains every tunable of a session.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Juice    JuiceConfig    `yaml:"juice"`
	Combat   CombatConfig   `yaml:"combat"`
	Boss     BossConfig     `yaml:"boss"`
	Camera   CameraConfig   `yaml:"camera"`
	Timestep TimestepConfig `yaml:"timestep"`
	Whisper  WhisperConfig  `yaml:"whisper"`
}

// WorldConfig defines the fixed world frame.
type WorldConfig struct {
	GroundY       float64 `yaml:"ground_y"`
	Height        float64 `yaml:"height"`
	ViewportWidth float64 `yaml:"viewport_width"`
}

// PlayerConfig defines the avatar body.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MaxHP  int     `yaml:"max_hp"`
}

// PhysicsConfig defines per-frame kinematics. Velocities are world units per
// logical tick, not per second.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	JumpImpulse        float64 `yaml:"jump_impulse"`
	MoveSpeed          float64 `yaml:"move_speed"`
	Acceleration       float64 `yaml:"acceleration"` // Fraction of move speed added per tick
	Friction           float64 `yaml:"friction"`
	MaxSpeed           float64 `yaml:"max_speed"`
	DragMaxSpeed       float64 `yaml:"drag_max_speed"`
	ShieldMaxSpeed     float64 `yaml:"shield_max_speed"`
	MaxFallSpeed       float64 `yaml:"max_fall_speed"` // 0 = uncapped
	BurdenPenalty      float64 `yaml:"burden_penalty"`
	BurdenFloor        float64 `yaml:"burden_floor"`
	SandTrapMultiplier float64 `yaml:"sand_trap_multiplier"`
	FeetHeight         float64 `yaml:"feet_height"`
}

// JuiceConfig defines feedback decay and particle bursts.
type JuiceConfig struct {
	ShakeDecay    float64 `yaml:"shake_decay"`
	ShakeFloor    float64 `yaml:"shake_floor"`
	ParticleSpeed float64 `yaml:"particle_speed"`
	ParticleLife  float64 `yaml:"particle_life"`
	LandingShake  float64 `yaml:"landing_shake"` // Multiplier on impact velocity
}

// CombatConfig defines hitboxes and puzzle thresholds.
type CombatConfig struct {
	SlashOffset         float64 `yaml:"slash_offset"`
	SlashBackOffset     float64 `yaml:"slash_back_offset"`
	SlashWidth          float64 `yaml:"slash_width"`
	SlashHeight         float64 `yaml:"slash_height"`
	InteractPadX        float64 `yaml:"interact_pad_x"`
	InteractPadY        float64 `yaml:"interact_pad_y"`
	InteractWidth       float64 `yaml:"interact_width"`
	InteractHeight      float64 `yaml:"interact_height"`
	DragOffset          float64 `yaml:"drag_offset"`
	DragBackOffset      float64 `yaml:"drag_back_offset"`
	MoundHits           int     `yaml:"mound_hits"`
	PillarStep          float64 `yaml:"pillar_step"`
	PillarEpsilon       float64 `yaml:"pillar_epsilon"`
	ProjectileKnockback float64 `yaml:"projectile_knockback"`
	ProjectileRange     float64 `yaml:"projectile_range"`
}

// ContactDamage selects how boss body contact hurts the player.
type ContactDamage string

const (
	ContactContinuous ContactDamage = "continuous" // Every frame the overlap holds
	ContactOnEntry    ContactDamage = "on_entry"   // Once per overlap entry
)

// BossConfig defines the adversary's repertoire and difficulty ramp.
type BossConfig struct {
	HP                 int           `yaml:"hp"`
	PhaseThresholds    []int         `yaml:"phase_thresholds"` // HP at or below each value enters the next phase
	BaseInterval       float64       `yaml:"base_interval"`
	IntervalPerPhase   float64       `yaml:"interval_per_phase"`
	MinInterval        float64       `yaml:"min_interval"`
	ThrowDistance      float64       `yaml:"throw_distance"`
	CloseDistance      float64       `yaml:"close_distance"`
	DashSpeed          float64       `yaml:"dash_speed"`
	DashPerPhase       float64       `yaml:"dash_per_phase"`
	DriftSpeed         float64       `yaml:"drift_speed"`
	DriftPerPhase      float64       `yaml:"drift_per_phase"`
	ProjectileSpeed    float64       `yaml:"projectile_speed"`
	ProjectilePerPhase float64       `yaml:"projectile_per_phase"`
	Invulnerability    float64       `yaml:"invulnerability"`
	StaggerHits        int           `yaml:"stagger_hits"`
	StaggerWindow      float64       `yaml:"stagger_window"`
	StunDuration       float64       `yaml:"stun_duration"`
	ContactKnockback   float64       `yaml:"contact_knockback"`
	ContactDamage      ContactDamage `yaml:"contact_damage"`
}

// CameraConfig defines follow behaviour.
type CameraConfig struct {
	Lead float64 `yaml:"lead"` // Player is kept this far from the left edge
	Lerp float64 `yaml:"lerp"`
}

// TimestepMode selects how wall-clock time becomes logical ticks.
type TimestepMode string

const (
	TimestepFixed    TimestepMode = "fixed"
	TimestepVariable TimestepMode = "variable"
)

// TimestepConfig defines the frame driver.
type TimestepConfig struct {
	Mode             TimestepMode `yaml:"mode"`
	MaxDT            float64      `yaml:"max_dt"`      // Larger frame gaps are replaced by FallbackDT
	FallbackDT       float64      `yaml:"fallback_dt"` // Used when a gap exceeds MaxDT
	MaxTicksPerFrame int          `yaml:"max_ticks_per_frame"`
	TimeScale        float64      `yaml:"time_scale"`
}

// WhisperConfig defines the optional narrator backend.
type WhisperConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Offline           bool   `yaml:"offline"` // Show prompts as written when no key is set
	Model             string `yaml:"model"`
	APIKeyEnv         string `yaml:"api_key_env"`
	SystemInstruction string `yaml:"system_instruction"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	QueueSize         int    `yaml:"queue_size"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyStory  DifficultyPreset = "story"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty maps a flag value to a preset. Unknown values return "".
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyStory, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
