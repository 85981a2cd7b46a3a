package episodes

import (
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/world"
)

func init() {
	registry.Register("feast", Feast)
}

// Feast is episode 3: a bone for the offering bowl and two ingredients for
// the cauldron, which brews the key.
func Feast() level.Manifest {
	return level.Manifest{
		Episode:     3,
		ID:          "feast",
		Title:       "Episode III",
		Zone:        "The Feast of Ash",
		Intro:       "A watcher returns to the cycle. Episode 3.",
		PlayerStart: 100,
		Door:        level.DoorRule{Item: world.ItemKey},
		Spawns: []level.Spawn{
			{ID: "b1", Kind: "collectible", X: 1800, W: 30, H: 30, Item: world.ItemBone, Task: "bone_collect"},
			{ID: "trap1", Kind: "sand_trap", X: 2000, W: 300, H: 14},
			{ID: "i1", Kind: "collectible", X: 2600, W: 24, H: 24, Item: world.ItemIngredient},
			{ID: "bowl1", Kind: "offering_bowl", X: 3600, W: 80, H: 40, Item: world.ItemBone, Task: "bowl_fill"},
			{ID: "trap2", Kind: "sand_trap", X: 3900, W: 260, H: 14, Factor: 0.5},
			{ID: "m4", Kind: "mound", X: 4200, W: 40, H: 60, Reward: world.ItemIngredient},
			{ID: "cauldron", Kind: "cauldron", X: 4600, W: 90, H: 70, Item: world.ItemIngredient, Threshold: 2, Reward: world.ItemKey, Task: "cauldron"},
			{ID: "door", Kind: "door", X: 5500, W: 100, H: 140},
		},
		Hints: []level.Hint{
			{X: 3500, Radius: 120, Text: "The bowl waits for marrow."},
			{X: 4500, Radius: 120, Text: "Two offerings for the cauldron."},
		},
	}
}
