package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/procne/internal/campaign"
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/platform/sfx"
	"github.com/vovakirdan/procne/internal/platform/tui"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/storage"
	"github.com/vovakirdan/procne/internal/whisper"
)

var (
	flagConfig      string
	flagDifficulty  string
	flagEpisode     string
	flagEpisodeFile string
	flagSound       bool
	flagVolume      float64
	flagLogFile     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start the campaign. Without --episode an episode picker is shown first.

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Jump; hold in the air to slash
  E/Enter          - Interact, drag, dismiss dialogue
  Down/S           - Shield (final episode)
  P/Esc            - Pause
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  story  - More health, slower boss
  normal - Default tuning
  hard   - Less health, faster boss, damage on contact

Narration uses the Gemini API when the key named by whisper.api_key_env is
set (a .env file in the working directory is read). Without a key there is
no narration, unless whisper.offline shows the episode prompts as written.

Examples:
  procne play
  procne play --episode recurrence --difficulty hard
  procne play --episode-file ./episodes/1-sands.yaml
  procne play --sound --log-file ./procne.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: story, normal, hard")
	playCmd.Flags().StringVar(&flagEpisode, "episode", "", "Episode id or number to start from")
	playCmd.Flags().StringVar(&flagEpisodeFile, "episode-file", "", "Play a single episode manifest from YAML")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume (0..1)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(flagLogFile, "procne")
	if err != nil {
		return err
	}
	defer closer.Close()

	episodes, start, err := chooseEpisodes()
	if err != nil || episodes == nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []campaign.Option{
		campaign.WithLogger(logger),
		campaign.WithSeed(seed),
		campaign.WithDifficulty(string(preset)),
		campaign.WithStartIndex(start),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
	} else {
		defer store.Close()
		opts = append(opts, campaign.WithRunSink(store))
	}

	if n, release := newNarrator(cfg.Whisper, logger); n != nil {
		opts = append(opts, campaign.WithNarrator(n))
		defer release()
	}

	if flagSound {
		player := sfx.NewPlayer(flagVolume)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts = append(opts, campaign.WithCueHandler(player.Play))
		}
	}

	c, err := campaign.New(cfg, episodes, opts...)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	rt := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: flagFPS, Seed: seed}
	if err := tui.Run(c, cfg, rt, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if c.State() == campaign.StateFinished {
		elapsed, deaths := c.Totals()
		fmt.Printf("The cycle closes after %.1fs and %d resets.\n", elapsed, deaths)
	}
	return nil
}

// chooseEpisodes returns the episode list and the start index. A nil list
// with a nil error means the player quit the picker.
func chooseEpisodes() ([]level.Manifest, int, error) {
	if flagEpisodeFile != "" {
		m, err := level.LoadFile(flagEpisodeFile)
		if err != nil {
			return nil, 0, err
		}
		return []level.Manifest{m}, 0, nil
	}

	episodes := registry.Campaign()
	if flagEpisode != "" {
		m, err := resolveEpisode(flagEpisode)
		if err != nil {
			return nil, 0, err
		}
		for i := range episodes {
			if episodes[i].ID == m.ID {
				return episodes, i, nil
			}
		}
	}

	for {
		width, height := terminalSize()
		res, err := tui.RunMenu(width, height)
		if err != nil {
			return nil, 0, err
		}
		switch {
		case res.Quit:
			return nil, 0, nil
		case res.WantsRuns:
			if err := showRunsBoard(width, height); err != nil {
				return nil, 0, err
			}
			continue
		}
		return episodes, res.StartIndex, nil
	}
}

func showRunsBoard(width, height int) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()
	_, err = tui.RunRunsBoard(store, width, height)
	return err
}

// newNarrator builds the narrator. It returns nil when narration is disabled
// or no generator is available, and the game runs without flavor text.
// release waits for in-flight requests and closes the client.
func newNarrator(cfg config.WhisperConfig, logger *log.Logger) (n *whisper.Narrator, release func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}
	gen, closeGen := newGenerator(cfg, logger)
	if gen == nil {
		return nil, func() {}
	}
	n = whisper.NewNarrator(gen, narratorOptions(cfg, logger)...)
	return n, func() {
		n.Wait()
		closeGen()
	}
}

// newGenerator opens the line generator, or returns nil when there is none.
func newGenerator(cfg config.WhisperConfig, logger *log.Logger) (whisper.Generator, func()) {
	if err := whisper.LoadEnv(); err != nil {
		logger.Warn("env file ignored", "err", err)
	}

	gen, closeGen, err := whisper.Open(context.Background(), cfg)
	switch {
	case err == nil:
		if _, echo := gen.(whisper.Echo); echo {
			logger.Info("narrator offline, showing prompts")
		} else {
			logger.Info("narrator online", "model", cfg.Model)
		}
		return gen, func() {
			if err := closeGen(); err != nil {
				logger.Warn("closing narrator", "err", err)
			}
		}
	case errors.Is(err, whisper.ErrNoCredential):
		logger.Info("narrator offline", "env", cfg.APIKeyEnv)
	default:
		logger.Warn("narrator offline", "err", err)
	}
	return nil, func() {}
}

func narratorOptions(cfg config.WhisperConfig, logger *log.Logger) []whisper.Option {
	opts := []whisper.Option{whisper.WithLogger(logger), whisper.WithQueueSize(cfg.QueueSize)}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, whisper.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	return opts
}
