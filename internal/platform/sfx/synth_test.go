package sfx

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/procne/internal/sim"
)

const testRate = beep.SampleRate(8000)

// drain streams s to the end and returns every sample of the left channel.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 256)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			out = append(out, buf[j][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestEveryCueHasAFiniteSound(t *testing.T) {
	for c := sim.CueLand; c <= sim.CueFinish; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s := Streamer(c, testRate, 1)
			require.NotNil(t, s)

			samples := drain(t, s)
			assert.Equal(t, testRate.N(Patches[c].Duration), len(samples))
			for _, v := range samples {
				require.LessOrEqual(t, math.Abs(v), 1.0+1e-9)
			}
		})
	}
}

func TestUnknownCueIsSilent(t *testing.T) {
	assert.Nil(t, Streamer(sim.Cue(99), testRate, 1))
}

func TestMutedMasterStillEnds(t *testing.T) {
	s := Streamer(sim.CueTask, testRate, 0)
	require.NotNil(t, s)
	for _, v := range drain(t, s) {
		assert.Zero(t, v)
	}
}

func TestSquareWaveLevels(t *testing.T) {
	osc := newOscillator(Patch{Wave: WaveSquare, Freq: 440, Duration: Patches[sim.CueBlocked].Duration}, testRate)
	for _, v := range drain(t, osc) {
		assert.Contains(t, []float64{-1, 1}, v)
	}
}

func TestEnvelopeShape(t *testing.T) {
	p := Patch{Wave: WaveSquare, Freq: 100, Duration: Patches[sim.CueTask].Duration, Attack: Patches[sim.CueTask].Attack, Release: Patches[sim.CueTask].Release}
	samples := drain(t, newEnvelope(newOscillator(p, testRate), p, testRate))

	require.NotEmpty(t, samples)
	assert.Zero(t, samples[0], "attack starts silent")
	assert.Less(t, math.Abs(samples[len(samples)-1]), 0.01, "release ends near silence")
}

func TestPlayerIgnoresCuesBeforeInit(t *testing.T) {
	p := NewPlayer(1)
	p.Play(sim.CueTask)
	p.Close()
}
