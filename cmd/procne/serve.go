package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/procne/internal/platform/tui"
	"github.com/vovakirdan/procne/internal/sim"
	"github.com/vovakirdan/procne/internal/whisper"
)

var (
	flagSSHAddr         string
	flagHostKey         string
	flagIdleTimeout     int
	flagServeConfig     string
	flagServeDifficulty string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the procne SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own campaign with an episode picker.
Runs are stored per-server in the database given by --db.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.procne/host_key

Examples:
  procne serve                           # Listen on :23234 with auto-generated key
  procne serve --ssh :2222               # Listen on port 2222
  procne serve --host-key ./my_host_key  # Use specific host key
  procne serve --difficulty story

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom tuning YAML")
	serveCmd.Flags().StringVar(&flagServeDifficulty, "difficulty", "", "Difficulty preset for every session")
}

func runServe(_ *cobra.Command, _ []string) error {
	game, preset, err := loadConfig(flagServeConfig, flagServeDifficulty)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.FPS = flagFPS
	cfg.Game = game
	cfg.Difficulty = string(preset)

	// Sessions share one generator; each gets its own line queue.
	if game.Whisper.Enabled {
		logger := log.WithPrefix("procne-whisper")
		gen, closeGen := newGenerator(game.Whisper, logger)
		defer closeGen()
		if gen != nil {
			opts := narratorOptions(game.Whisper, logger)
			cfg.NewNarrator = func() sim.Narrator {
				return whisper.NewNarrator(gen, opts...)
			}
		}
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting procne SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
