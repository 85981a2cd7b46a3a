package episodes

import (
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/world"
)

func init() {
	registry.Register("weaver", Weaver)
}

// Weaver is episode 2: a wind tunnel held open by a turbine that needs a gear.
func Weaver() level.Manifest {
	return level.Manifest{
		Episode:     2,
		ID:          "weaver",
		Title:       "Episode II",
		Zone:        "The Weaver's Tongue",
		Intro:       "A watcher returns to the cycle. Episode 2.",
		PlayerStart: 100,
		Door:        level.DoorRule{Item: world.ItemKey},
		Spawns: []level.Spawn{
			{ID: "m3", Kind: "mound", X: 800, W: 40, H: 80, Task: "mound_m3", Reward: world.ItemGear},
			{ID: "turbine", Kind: "turbine", X: 1000, W: 70, H: 110, Item: world.ItemGear, Threshold: 1, Target: "w1", Task: "turbine"},
			{ID: "w1", Kind: "wind_tunnel", X: 1200, W: 1200, H: 250, Force: -0.7},
			{ID: "key", Kind: "collectible", X: 2900, W: 24, H: 24, Item: world.ItemKey},
			{ID: "door", Kind: "door", X: 4800, W: 100, H: 140},
		},
		Hints: []level.Hint{
			{X: 700, Radius: 120, Text: "Something turns beneath the sand."},
			{X: 1100, Radius: 80, Text: "The turbine hungers for a gear."},
		},
	}
}
