package episodes

import (
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/world"
)

func init() {
	registry.Register("recurrence", Recurrence)
}

// Recurrence is episode 4: the boss arena. The camera stays put and the
// shield is available.
func Recurrence() level.Manifest {
	return level.Manifest{
		Episode:      4,
		ID:           "recurrence",
		Title:        "Episode IV",
		Zone:         "The Recurrence",
		Intro:        "A watcher returns to the cycle. Episode 4.",
		PlayerStart:  200,
		CameraLocked: true,
		Shield:       true,
		Door:         level.DoorRule{BossDefeated: true},
		Spawns: []level.Spawn{
			{ID: "h1", Kind: "collectible", X: 40, W: 24, H: 24, Item: world.ItemHeart},
			{ID: "boss", Kind: "boss", X: 600, Lift: 20, W: 40, H: 80},
			{ID: "door", Kind: "door", X: 680, W: 100, H: 140},
			{ID: "h2", Kind: "collectible", X: 740, W: 24, H: 24, Item: world.ItemHeart},
		},
		Hints: []level.Hint{
			{X: 200, Radius: 60, Text: "Hold S to raise your shield."},
		},
	}
}
