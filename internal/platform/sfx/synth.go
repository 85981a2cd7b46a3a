// Package sfx turns simulation cues into short synthesized sounds.
package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/procne/internal/sim"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Patch describes the sound of one cue: a pitch sweep from Freq to SweepTo
// with a linear attack and release.
type Patch struct {
	Wave     Wave
	Freq     float64
	SweepTo  float64 // 0 keeps the pitch constant
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Volume   float64 // 0..1
}

// Patches maps each cue to its sound. Cues without a patch are silent.
var Patches = map[sim.Cue]Patch{
	sim.CueLand:    {Wave: WaveNoise, Duration: 60 * time.Millisecond, Release: 50 * time.Millisecond, Volume: 0.25},
	sim.CueSlash:   {Wave: WaveSaw, Freq: 900, SweepTo: 300, Duration: 70 * time.Millisecond, Release: 40 * time.Millisecond, Volume: 0.3},
	sim.CueTask:    {Wave: WaveSine, Freq: 660, SweepTo: 990, Duration: 350 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 250 * time.Millisecond, Volume: 0.5},
	sim.CueBossHit: {Wave: WaveSquare, Freq: 160, SweepTo: 80, Duration: 180 * time.Millisecond, Release: 120 * time.Millisecond, Volume: 0.45},
	sim.CueHurt:    {Wave: WaveSaw, Freq: 120, Duration: 200 * time.Millisecond, Release: 150 * time.Millisecond, Volume: 0.5},
	sim.CueBlocked: {Wave: WaveSquare, Freq: 1200, Duration: 50 * time.Millisecond, Release: 30 * time.Millisecond, Volume: 0.25},
	sim.CueLocked:  {Wave: WaveSquare, Freq: 90, Duration: 150 * time.Millisecond, Release: 60 * time.Millisecond, Volume: 0.35},
	sim.CueStun:    {Wave: WaveSine, Freq: 300, SweepTo: 1500, Duration: 400 * time.Millisecond, Release: 200 * time.Millisecond, Volume: 0.4},
	sim.CueHeal:    {Wave: WaveSine, Freq: 523.25, SweepTo: 783.99, Duration: 250 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 150 * time.Millisecond, Volume: 0.4},
	sim.CuePickup:  {Wave: WaveSine, Freq: 880, Duration: 120 * time.Millisecond, Release: 90 * time.Millisecond, Volume: 0.35},
	sim.CueReset:   {Wave: WaveSaw, Freq: 220, SweepTo: 55, Duration: 900 * time.Millisecond, Release: 600 * time.Millisecond, Volume: 0.4},
	sim.CueFinish:  {Wave: WaveSine, Freq: 440, SweepTo: 880, Duration: 1200 * time.Millisecond, Attack: 100 * time.Millisecond, Release: 800 * time.Millisecond, Volume: 0.45},
}

// oscillator generates a swept wave for a fixed number of samples.
type oscillator struct {
	wave     Wave
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(p Patch, rate beep.SampleRate) *oscillator {
	to := p.SweepTo
	if to == 0 {
		to = p.Freq
	}
	return &oscillator{
		wave:     p.Wave,
		from:     p.Freq,
		to:       to,
		duration: rate.N(p.Duration),
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(p.Freq) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, p Patch, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(p.Attack),
		release:  rate.N(p.Release),
		total:    rate.N(p.Duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Streamer builds the finite sound for a cue, or nil when the cue is silent.
func Streamer(c sim.Cue, rate beep.SampleRate, master float64) beep.Streamer {
	p, ok := Patches[c]
	if !ok {
		return nil
	}
	shaped := newEnvelope(newOscillator(p, rate), p, rate)
	vol := p.Volume * master
	if vol <= 0 {
		return &effects.Volume{Streamer: shaped, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: math.Log2(vol)}
}
