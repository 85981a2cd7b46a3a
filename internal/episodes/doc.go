// Package episodes registers the four built-in episodes. Each file builds one
// manifest and registers it from init(); importing the package for side
// effects makes them available through the registry.
package episodes
