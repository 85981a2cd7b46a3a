package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the tuning file looked up in the user and local config dirs.
const FileName = "procne.yaml"

// Load loads the tuning configuration.
// Search order: customPath -> ~/.procne/configs/procne.yaml -> ./configs/procne.yaml -> embedded default.
// Files only need to name the fields they override; everything else keeps its default.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.Player.MaxHP <= 0:
		return fmt.Errorf("%w: player.max_hp must be positive", ErrInvalid)
	case c.Physics.Friction < 0 || c.Physics.Friction > 1:
		return fmt.Errorf("%w: physics.friction must be within [0, 1]", ErrInvalid)
	case c.Physics.MaxSpeed <= 0:
		return fmt.Errorf("%w: physics.max_speed must be positive", ErrInvalid)
	case c.Combat.MoundHits <= 0:
		return fmt.Errorf("%w: combat.mound_hits must be positive", ErrInvalid)
	case c.Boss.HP <= 0:
		return fmt.Errorf("%w: boss.hp must be positive", ErrInvalid)
	case c.Boss.ContactDamage != ContactContinuous && c.Boss.ContactDamage != ContactOnEntry:
		return fmt.Errorf("%w: boss.contact_damage %q", ErrInvalid, c.Boss.ContactDamage)
	case c.Timestep.Mode != TimestepFixed && c.Timestep.Mode != TimestepVariable:
		return fmt.Errorf("%w: timestep.mode %q", ErrInvalid, c.Timestep.Mode)
	case c.Timestep.TimeScale < 0:
		return fmt.Errorf("%w: timestep.time_scale must not be negative", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".procne", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyStory:
		cfg.Player.MaxHP = 5
		cfg.Boss.HP = 14
		cfg.Boss.PhaseThresholds = []int{7}
		cfg.Boss.ContactDamage = ContactOnEntry
	case DifficultyHard:
		cfg.Player.MaxHP = 2
		cfg.Boss.HP = 26
		cfg.Boss.PhaseThresholds = []int{18, 9}
		cfg.Boss.StaggerHits = 5
		cfg.Boss.ContactDamage = ContactContinuous
	}
}
