// procne is a terminal platformer: four episodes of a watcher's cycle,
// ending in a boss encounter.
//
// Usage:
//
//	procne episodes          - List built-in episodes
//	procne play              - Play the campaign
//	procne sim               - Run a scripted headless session
//	procne trace <file>      - Summarize a recorded trace
//	procne runs              - Show recorded runs
//	procne serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set frame rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible particle bursts
//	--db <path>     - Set database path (default: ~/.procne/runs.db)
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/procne/internal/config"
	_ "github.com/vovakirdan/procne/internal/episodes"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/registry"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "procne",
	Short: "Procne - a platformer of sand, looms and feasts",
	Long: `Procne is a terminal platformer. A watcher walks four episodes of a
cycle: the sands, the weaver's hall, the feast and the recurrence, where
the boss waits.

Available commands:
  episodes - Show the built-in episodes
  play     - Play the campaign
  sim      - Run a scripted headless session
  trace    - Summarize a recorded trace
  runs     - View recorded runs
  serve    - Start SSH server for remote play

Examples:
  procne play
  procne play --episode 4 --difficulty hard
  procne sim --script ./walk.yaml --trace ./walk.trace
  procne serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.procne/runs.db", "Path to runs database")

	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads tuning from path (or the default search order) and
// applies the difficulty preset.
func loadConfig(path, difficulty string) (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	preset := config.ParseDifficulty(difficulty)
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// resolveEpisode finds a built-in episode by id or number.
func resolveEpisode(name string) (level.Manifest, error) {
	if registry.Exists(name) {
		return registry.Create(name)
	}
	if n, err := strconv.Atoi(name); err == nil {
		return registry.ByNumber(n)
	}
	return level.Manifest{}, fmt.Errorf("unknown episode %q (run 'procne episodes')", name)
}

// newLogger writes to path, or discards when path is empty. The terminal
// belongs to the game, so logs never go to stderr while playing.
func newLogger(path, prefix string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
