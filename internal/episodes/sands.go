package episodes

import (
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
)

func init() {
	registry.Register("sands", Sands)
}

// Sands is episode 1: mounds, two tilted pillars and a stone for the altar.
func Sands() level.Manifest {
	return level.Manifest{
		Episode:     1,
		ID:          "sands",
		Title:       "Episode I",
		Zone:        "The Barren Sands",
		Intro:       "A watcher returns to the cycle. Episode 1.",
		PlayerStart: 100,
		Door:        level.DoorRule{Tasks: 3},
		Spawns: []level.Spawn{
			{ID: "m1", Kind: "mound", X: 1500, W: 50, H: 60},
			{ID: "m2", Kind: "mound", X: 2800, W: 40, H: 70, Task: "mound_m2"},
			{ID: "ledge1", Kind: "platform", X: 3200, Lift: 90, W: 200, H: 14},
			{ID: "ledge2", Kind: "platform", X: 3450, Lift: 170, W: 160, H: 14, Invisible: true},
			{ID: "p1", Kind: "pillar", X: 4000, W: 40, H: 180, Tilt: -24},
			{ID: "p2", Kind: "pillar", X: 4400, W: 40, H: 180, Tilt: 24},
			{ID: "trap1", Kind: "sand_trap", X: 5000, W: 320, H: 14},
			{ID: "stone", Kind: "stone", X: 5600, W: 60, H: 60},
			{ID: "pedestal", Kind: "pedestal", X: 6800, W: 100, H: 20, Target: "stone", Task: "altar"},
			{ID: "door", Kind: "door", X: 8200, W: 100, H: 140},
		},
		Hints: []level.Hint{
			{X: 1400, Radius: 120, Text: "Leap. Strike the mound as you fall."},
			{X: 3900, Radius: 120, Text: "The monoliths lean. Press E beside them."},
			{X: 5500, Radius: 120, Text: "Hold E to drag the stone home."},
		},
	}
}
