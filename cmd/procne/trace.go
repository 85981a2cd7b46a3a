package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/procne/internal/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Summarize a recorded trace",
	Long: `Reads a msgpack trace written by 'procne sim --trace' and prints a
summary of the run.

Examples:
  procne trace ./walk.trace`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func runTrace(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	r, err := trace.NewReader(f)
	if err != nil {
		return err
	}
	s, err := trace.Summarize(r)
	if err != nil {
		return err
	}

	fmt.Printf("Trace v%d - episode %s, seed %d, %d Hz\n", s.Header.Version, s.Header.Episode, s.Header.Seed, s.Header.TickRate)
	fmt.Printf("  frames     %d (last tick %d)\n", s.Frames, s.LastTick)
	if s.FinishTick > 0 {
		fmt.Printf("  finished   tick %d\n", s.FinishTick)
	} else {
		fmt.Println("  finished   no")
	}
	fmt.Printf("  min hp     %d\n", s.MinHP)
	fmt.Printf("  max shake  %.2f\n", s.MaxShake)
	fmt.Printf("  max x      %.1f\n", s.MaxX)
	fmt.Printf("  tasks      %d\n", s.Tasks)
	fmt.Printf("  resets     %d\n", s.Deaths)
	return nil
}
