package trace

import (
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/level"
	"github.com/vovakirdan/procne/internal/sim"
)

// Result is the outcome of a headless run.
type Result struct {
	Frames     int
	Finished   bool
	FinishTick uint64
	Final      sim.Snapshot
	Cues       map[sim.Cue]int
}

// Run steps a session for the script's frames at a fixed tick, applying
// scripted input and writing one record per frame when w is not nil.
// No narrator is attached, so the run is fully deterministic.
func Run(cfg config.Config, m level.Manifest, s Script, w *Writer) (Result, error) {
	res := Result{Cues: make(map[sim.Cue]int)}
	ev := sim.Events{
		OnCue: func(c sim.Cue) { res.Cues[c]++ },
	}
	session := sim.New(cfg, m, sim.WithSeed(s.Seed), sim.WithEvents(ev))
	session.Start()
	dt := 1.0 / 60.0

	next := 0
	var taps []core.Key
	for frame := 0; frame < s.Frames; frame++ {
		taps = taps[:0]
		for next < len(s.Input) && s.Input[next].Frame == frame {
			in := s.Input[next]
			switch {
			case in.Down != "":
				session.KeyDown(ParseKey(in.Down))
			case in.Up != "":
				session.KeyUp(ParseKey(in.Up))
			case in.Tap != "":
				k := ParseKey(in.Tap)
				session.KeyDown(k)
				taps = append(taps, k)
			}
			next++
		}

		session.Step(dt)
		for _, k := range taps {
			session.KeyUp(k)
		}
		res.Frames++

		snap := session.Snapshot()
		if w != nil {
			if err := w.Write(FromSnapshot(snap)); err != nil {
				return res, err
			}
		}
		if snap.Finished && !res.Finished {
			res.Finished = true
			res.FinishTick = snap.Tick
		}
		if res.Finished && s.StopOnEnd {
			break
		}
	}
	res.Final = session.Snapshot()
	return res, nil
}
