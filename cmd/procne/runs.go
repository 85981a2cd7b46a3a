package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procne/internal/platform/tui"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/storage"
)

var (
	flagRunsEpisode string
	flagRunsTUI     bool
	flagRunsLimit   int
	flagRunsClear   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display per-episode statistics and the fastest finished runs.

Examples:
  procne runs
  procne runs --episode sands
  procne runs --tui
  procne runs --episode 2 --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsEpisode, "episode", "", "Only show this episode (id or number)")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Runs to list per episode")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs of --episode")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagRunsTUI {
		width, height := terminalSize()
		_, err := tui.RunRunsBoard(store, width, height)
		return err
	}

	episodes := registry.List()
	if flagRunsEpisode != "" {
		m, err := resolveEpisode(flagRunsEpisode)
		if err != nil {
			return err
		}
		if flagRunsClear {
			if err := store.ClearRuns(m.Episode); err != nil {
				return err
			}
			fmt.Printf("Cleared runs of episode %d.\n", m.Episode)
			return nil
		}
		episodes = []registry.EpisodeInfo{{ID: m.ID, Episode: m.Episode, Title: m.Title, Zone: m.Zone}}
	} else if flagRunsClear {
		return fmt.Errorf("--clear needs --episode")
	}

	for _, ep := range episodes {
		if err := printEpisodeRuns(store, ep); err != nil {
			return err
		}
	}
	return nil
}

func printEpisodeRuns(store *storage.Store, ep registry.EpisodeInfo) error {
	stats, err := store.GetEpisodeStats(ep.Episode)
	if err != nil {
		return err
	}
	fmt.Printf("Episode %d - %s\n", ep.Episode, ep.Title)
	if stats.Runs == 0 {
		fmt.Println("  No runs recorded yet.")
		fmt.Println()
		return nil
	}
	fmt.Printf("  runs %d, finished %d, avg resets %.1f, last played %s\n",
		stats.Runs, stats.Finished, stats.AvgDeaths, stats.LastPlayed.Format("2006-01-02 15:04"))

	best, err := store.BestRuns(ep.Episode, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(best) > 0 {
		fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %s\n", "Rank", "Time", "Resets", "Tasks", "Date")
		for i, r := range best {
			fmt.Printf("  %-4d  %-9s  %-6d  %-5d  %s\n",
				i+1, fmt.Sprintf("%.2fs", r.Duration), r.Deaths, r.Tasks, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	fmt.Println()
	return nil
}
