package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/trace"
)

var (
	flagScript    string
	flagFrames    int
	flagTraceOut  string
	flagSimConfig string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted headless session",
	Long: `Steps one episode at a fixed 60 Hz tick with input from a YAML script.
No terminal, narrator or sound is involved, so the same script and seed
always produce the same run.

Script format:
  episode: sands        # id or number, or use --episode-file
  seed: 7
  frames: 600
  difficulty: normal
  stop_on_finish: true
  input:
    - {frame: 0, down: right}
    - {frame: 40, tap: jump}
    - {frame: 90, up: right}

Examples:
  procne sim --script ./walk.yaml
  procne sim --script ./walk.yaml --frames 1200 --trace ./walk.trace`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagScript, "script", "", "Input script YAML (required)")
	simCmd.Flags().IntVar(&flagFrames, "frames", 0, "Override the script's frame count")
	simCmd.Flags().StringVar(&flagTraceOut, "trace", "", "Write a msgpack frame trace to this file")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom tuning YAML")
	simCmd.Flags().StringVar(&flagEpisodeFile, "episode-file", "", "Episode manifest YAML to run instead of the script's episode")
	_ = simCmd.MarkFlagRequired("script")
}

func runSim(_ *cobra.Command, _ []string) error {
	script, err := trace.LoadScript(flagScript)
	if err != nil {
		return err
	}
	if flagFrames > 0 {
		script.Frames = flagFrames
		if err := script.Validate(); err != nil {
			return err
		}
	}

	cfg, _, err := loadConfig(flagSimConfig, script.Difficulty)
	if err != nil {
		return err
	}

	var m level.Manifest
	if flagEpisodeFile != "" {
		m, err = level.LoadFile(flagEpisodeFile)
	} else {
		m, err = resolveEpisode(script.Episode)
	}
	if err != nil {
		return err
	}

	var w *trace.Writer
	if flagTraceOut != "" {
		f, err := os.Create(flagTraceOut)
		if err != nil {
			return fmt.Errorf("creating trace: %w", err)
		}
		defer f.Close()
		w, err = trace.NewWriter(f, trace.Header{Version: trace.Version, Episode: m.ID, Seed: script.Seed, TickRate: 60})
		if err != nil {
			return err
		}
	}

	res, err := trace.Run(cfg, m, script, w)
	if err != nil {
		return err
	}
	printResult(m, cfg, res)
	if w != nil {
		fmt.Printf("trace: %d frames written to %s\n", w.Frames(), flagTraceOut)
	}
	return nil
}

func printResult(m level.Manifest, cfg config.Config, res trace.Result) {
	snap := res.Final
	fmt.Printf("Episode %d - %s (%s)\n", m.Episode, m.Title, m.ID)
	fmt.Printf("  frames    %d\n", res.Frames)
	if res.Finished {
		fmt.Printf("  finished  tick %d (%.2fs)\n", res.FinishTick, float64(res.FinishTick)/60)
	} else {
		fmt.Println("  finished  no")
	}
	fmt.Printf("  position  x=%.1f y=%.1f\n", snap.Player.Pos.X, snap.Player.Pos.Y)
	fmt.Printf("  hp        %d/%d\n", snap.Player.HP, cfg.Player.MaxHP)
	fmt.Printf("  tasks     %d\n", snap.Player.Tasks)
	fmt.Printf("  resets    %d\n", snap.Deaths)
	if hp, maxHP := snap.BossHP(); maxHP > 0 {
		fmt.Printf("  boss      %d/%d\n", hp, maxHP)
	}

	if len(res.Cues) == 0 {
		return
	}
	names := make([]string, 0, len(res.Cues))
	counts := make(map[string]int, len(res.Cues))
	for c, n := range res.Cues {
		names = append(names, c.String())
		counts[c.String()] = n
	}
	sort.Strings(names)
	fmt.Print("  cues     ")
	for _, name := range names {
		fmt.Printf(" %s=%d", name, counts[name])
	}
	fmt.Println()
}
