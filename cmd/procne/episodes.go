package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
)

var flagExportDir string

var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "List built-in episodes",
	Long: `Shows the episodes of the campaign in play order.

With --export the manifests are written as YAML files that can be edited
and played back with 'procne play --episode-file'.

Examples:
  procne episodes
  procne episodes --export ./episodes`,
	RunE: runEpisodes,
}

func init() {
	episodesCmd.Flags().StringVar(&flagExportDir, "export", "", "Directory to write episode manifests to")
}

func runEpisodes(_ *cobra.Command, _ []string) error {
	episodes := registry.List()
	if len(episodes) == 0 {
		fmt.Println("No episodes available.")
		return nil
	}

	if flagExportDir != "" {
		return exportEpisodes(flagExportDir)
	}

	maxIDLen := 2
	for _, e := range episodes {
		maxIDLen = max(maxIDLen, len(e.ID))
	}

	fmt.Println("Episodes:")
	fmt.Println()
	fmt.Printf("  %-2s  %-*s  %-24s  %s\n", "#", maxIDLen, "ID", "Title", "Zone")
	fmt.Printf("  %-2s  %-*s  %-24s  %s\n", "-", maxIDLen, "--", "-----", "----")
	for _, e := range episodes {
		fmt.Printf("  %-2d  %-*s  %-24s  %s\n", e.Episode, maxIDLen, e.ID, e.Title, e.Zone)
	}
	fmt.Println()
	fmt.Println("Run 'procne play --episode <id>' to start from an episode.")
	return nil
}

func exportEpisodes(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, m := range registry.Campaign() {
		data, err := level.Marshal(m)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", m.ID, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%d-%s.yaml", m.Episode, m.ID))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("wrote", path)
	}
	return nil
}
