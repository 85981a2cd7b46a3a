package world

// BossAction is the current state of the boss machine.
type BossAction int

const (
	BossWait BossAction = iota
	BossDash
	BossThrow
)

// String returns the action name.
func (a BossAction) String() string {
	switch a {
	case BossWait:
		return "WAIT"
	case BossDash:
		return "DASH"
	case BossThrow:
		return "THROW"
	default:
		return "UNKNOWN"
	}
}

// BossState holds the encounter timers. Phase is not stored: it is derived
// from the boss entity's remaining HP.
type BossState struct {
	Action    BossAction
	Timer     float64 // Seconds since the last action pick
	Invuln    float64 // Seconds of invulnerability left
	HitsTaken int     // Hits inside the current stagger window
	SinceHit  float64 // Seconds since the last landed hit
	Stun      float64 // Seconds of stun left
	Touching  bool    // Body overlap on the previous tick
}

// Stunned reports whether the boss is frozen.
func (b BossState) Stunned() bool {
	return b.Stun > 0
}
