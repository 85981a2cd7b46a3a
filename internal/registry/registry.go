// Package registry provides a global registry for episode factories.
// Episodes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/procne/internal/level"
)

// EpisodeInfo contains metadata about a registered episode.
type EpisodeInfo struct {
	ID      string
	Episode int
	Title   string
	Zone    string
}

// Factory is a function that creates a fresh episode manifest.
type Factory func() level.Manifest

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]EpisodeInfo)
	mu        sync.RWMutex
)

// Register adds an episode factory to the registry.
// Typically called from an episode's init() function.
// Panics if an episode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: episode %q already registered", id))
	}

	factories[id] = f

	// Get metadata by building a temporary manifest
	m := f()
	infos[id] = EpisodeInfo{ID: id, Episode: m.Episode, Title: m.Title, Zone: m.Zone}
}

// List returns information about all registered episodes, in play order.
func List() []EpisodeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EpisodeInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Episode != result[j].Episode {
			return result[i].Episode < result[j].Episode
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a manifest by its ID.
// Returns an error if the episode ID is not registered.
func Create(id string) (level.Manifest, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return level.Manifest{}, fmt.Errorf("registry: unknown episode %q", id)
	}

	return f(), nil
}

// ByNumber builds the manifest registered for the given episode number.
func ByNumber(n int) (level.Manifest, error) {
	for _, info := range List() {
		if info.Episode == n {
			return Create(info.ID)
		}
	}
	return level.Manifest{}, fmt.Errorf("registry: no episode %d", n)
}

// Campaign builds every registered manifest in play order.
func Campaign() []level.Manifest {
	list := List()
	out := make([]level.Manifest, 0, len(list))
	for _, info := range list {
		if m, err := Create(info.ID); err == nil {
			out = append(out, m)
		}
	}
	return out
}

// Exists checks if an episode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
