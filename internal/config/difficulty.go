package config

import "math"

// Phase returns the boss phase for the remaining health, starting at 1.
// Each threshold at or above hp advances one phase.
func (b BossConfig) Phase(hp int) int {
	phase := 1
	for _, t := range b.PhaseThresholds {
		if hp <= t {
			phase++
		}
	}
	return phase
}

// ActionInterval returns seconds between action picks in the given phase.
func (b BossConfig) ActionInterval(phase int) float64 {
	return math.Max(b.MinInterval, b.BaseInterval-float64(phase)*b.IntervalPerPhase)
}

// DashSpeedFor returns the dash velocity per tick in the given phase.
func (b BossConfig) DashSpeedFor(phase int) float64 {
	return b.DashSpeed + float64(phase)*b.DashPerPhase
}

// DriftSpeedFor returns the approach velocity per tick while waiting.
func (b BossConfig) DriftSpeedFor(phase int) float64 {
	return b.DriftSpeed + float64(phase)*b.DriftPerPhase
}

// ProjectileSpeedFor returns the thrown projectile velocity per tick.
func (b BossConfig) ProjectileSpeedFor(phase int) float64 {
	return b.ProjectileSpeed + float64(phase)*b.ProjectilePerPhase
}

// BurdenMultiplier returns the movement-speed factor after tasks completed tasks.
func (p PhysicsConfig) BurdenMultiplier(tasks int) float64 {
	return clampF(1-float64(tasks)*p.BurdenPenalty, p.BurdenFloor, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
